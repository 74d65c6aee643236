// Package engine implements a corner-stitched tiling of the 32-bit integer
// plane. Every point belongs to exactly one tile; tiles are either space or
// solid, and space tiles are kept as maximal horizontal strips.
//
// A Plane is not safe for concurrent use. Lookups update an internal locality
// cache, so even read-only calls need exclusive access.
package engine

import (
	"errors"

	"github.com/piwi3910/cento/internal/model"
)

var (
	// ErrStaleTile is returned for a Ref whose tile has been recycled.
	ErrStaleTile = errors.New("stale tile reference")
	// ErrNotSolid is returned when removing a space tile.
	ErrNotSolid = errors.New("tile is not solid")
)

// MergeFunc decides whether two solid bodies may share one tile.
type MergeFunc func(a, b model.Body) bool

// SameBody is the default MergeFunc.
func SameBody(a, b model.Body) bool { return a == b }

// Option configures a Plane.
type Option func(*Plane)

// WithMergeFunc replaces the solid merge policy.
func WithMergeFunc(f MergeFunc) Option {
	return func(p *Plane) {
		if f != nil {
			p.mergeable = f
		}
	}
}

// Stats counts plane operations since the last CreateUniverse.
type Stats struct {
	Inserts       int `json:"inserts"`
	InsertRejects int `json:"insert_rejects"`
	Removes       int `json:"removes"`
	Splits        int `json:"splits"`
	Joins         int `json:"joins"`
	Finds         int `json:"finds"`
	FindSteps     int `json:"find_steps"`
}

// Plane is a corner-stitched tiling.
type Plane struct {
	tiles     arena
	start     TileID
	hint      TileID
	mergeable MergeFunc
	stats     Stats
}

// New returns a plane holding the universe tile.
func New(opts ...Option) *Plane {
	p := &Plane{mergeable: SameBody, start: None, hint: None}
	for _, opt := range opts {
		opt(p)
	}
	p.CreateUniverse()
	return p
}

// CreateUniverse discards every tile and starts over with a single space
// tile spanning the whole plane.
func (p *Plane) CreateUniverse() Ref {
	p.tiles.reset()
	id := p.tiles.get()
	t := p.t(id)
	t.rect = model.Universe()
	t.body = model.Space
	p.start = id
	p.hint = None
	p.stats = Stats{}
	return p.tiles.ref(id)
}

// Stats returns the operation counters.
func (p *Plane) Stats() Stats { return p.stats }

// Len returns the number of live tiles.
func (p *Plane) Len() int { return p.tiles.live }

// Live reports whether ref still resolves to a tile.
func (p *Plane) Live(ref Ref) bool {
	_, ok := p.tiles.resolve(ref)
	return ok
}

// Rect returns the rectangle of ref, or the zero Rect for a stale ref.
func (p *Plane) Rect(ref Ref) model.Rect {
	id, ok := p.tiles.resolve(ref)
	if !ok {
		return model.Rect{}
	}
	return p.t(id).rect
}

// Body returns the body of ref, or Space for a stale ref.
func (p *Plane) Body(ref Ref) model.Body {
	id, ok := p.tiles.resolve(ref)
	if !ok {
		return model.Space
	}
	return p.t(id).body
}

// Stitches returns the four stored neighbors of ref.
func (p *Plane) Stitches(ref Ref) (below, left, above, right Ref) {
	id, ok := p.tiles.resolve(ref)
	if !ok {
		return
	}
	t := p.t(id)
	return p.tiles.ref(t.below), p.tiles.ref(t.left), p.tiles.ref(t.above), p.tiles.ref(t.right)
}

// Record returns a detached copy of ref and its neighbors' rectangles.
func (p *Plane) Record(ref Ref) (model.TileRecord, bool) {
	id, ok := p.tiles.resolve(ref)
	if !ok {
		return model.TileRecord{}, false
	}
	return p.record(id), true
}

func (p *Plane) record(id TileID) model.TileRecord {
	t := p.t(id)
	rec := model.TileRecord{Rect: t.rect, Body: t.body}
	rec.Below = p.rectPtr(t.below)
	rec.Left = p.rectPtr(t.left)
	rec.Above = p.rectPtr(t.above)
	rec.Right = p.rectPtr(t.right)
	return rec
}

func (p *Plane) rectPtr(id TileID) *model.Rect {
	if id == None {
		return nil
	}
	r := p.t(id).rect
	return &r
}

func (p *Plane) t(id TileID) *Tile { return p.tiles.at(id) }

func (p *Plane) ref(id TileID) Ref { return p.tiles.ref(id) }

// canMerge applies the merge policy. Space merges only with space.
func (p *Plane) canMerge(a, b model.Body) bool {
	if a.IsSpace() || b.IsSpace() {
		return a == b
	}
	return p.mergeable(a, b)
}

// retire recycles absorbed after pointing the entry and cache at survivor.
func (p *Plane) retire(absorbed, survivor TileID) {
	if p.hint == absorbed {
		p.hint = survivor
	}
	if p.start == absorbed {
		p.start = survivor
	}
	p.tiles.put(absorbed)
	p.stats.Joins++
}
