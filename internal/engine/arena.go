package engine

import "github.com/piwi3910/cento/internal/model"

// TileID indexes a tile slot in a plane's arena.
type TileID int32

// None is the absent stitch.
const None TileID = -1

// Tile is a corner-stitched node. Stitches follow the usual convention:
// Below holds the tile under the lower-left corner, Left the tile beside the
// lower-left corner, Above the tile over the upper-right corner and Right the
// tile beside the upper-right corner.
type Tile struct {
	rect  model.Rect
	body  model.Body
	below TileID
	left  TileID
	above TileID
	right TileID
}

func (t *Tile) isSpace() bool { return t.body.IsSpace() }

type slot struct {
	tile Tile
	gen  uint32
	live bool
}

// arena owns every tile of a plane. Freed slots are recycled through a free
// list; each recycle bumps the slot generation so older Refs stop resolving.
type arena struct {
	slots []slot
	free  []TileID
	live  int
}

func (a *arena) get() TileID {
	var id TileID
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		id = TileID(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[id]
	if s.gen == 0 {
		s.gen = 1
	}
	s.live = true
	s.tile = Tile{below: None, left: None, above: None, right: None}
	a.live++
	return id
}

func (a *arena) put(id TileID) {
	s := &a.slots[id]
	if !s.live {
		panic("engine: double free of tile slot")
	}
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.tile = Tile{below: None, left: None, above: None, right: None}
	a.free = append(a.free, id)
	a.live--
}

func (a *arena) at(id TileID) *Tile {
	return &a.slots[id].tile
}

func (a *arena) alive(id TileID) bool {
	return id >= 0 && int(id) < len(a.slots) && a.slots[id].live
}

// reset drops every tile. Generations survive so Refs from before the reset
// stay stale.
func (a *arena) reset() {
	a.free = a.free[:0]
	for i := len(a.slots) - 1; i >= 0; i-- {
		s := &a.slots[i]
		if s.live {
			s.live = false
			s.gen++
			if s.gen == 0 {
				s.gen = 1
			}
		}
		s.tile = Tile{below: None, left: None, above: None, right: None}
		a.free = append(a.free, TileID(i))
	}
	a.live = 0
}

// Ref is a checked handle on a tile. The zero Ref refers to nothing. A Ref
// goes stale once its tile is absorbed by a merge or the plane is reset.
type Ref struct {
	id  TileID
	gen uint32
}

// IsZero reports whether r is the zero Ref.
func (r Ref) IsZero() bool { return r.gen == 0 }

// ID returns the arena slot r points at.
func (r Ref) ID() TileID { return r.id }

func (a *arena) ref(id TileID) Ref {
	if id == None {
		return Ref{}
	}
	return Ref{id: id, gen: a.slots[id].gen}
}

func (a *arena) resolve(r Ref) (TileID, bool) {
	if r.gen == 0 || !a.alive(r.id) || a.slots[r.id].gen != r.gen {
		return None, false
	}
	return r.id, true
}
