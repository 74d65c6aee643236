package model

import "sort"

// TileRecord is a detached copy of one tile and the rectangles of its four
// stitched neighbors. A nil neighbor means the stitch is unset.
type TileRecord struct {
	Rect  Rect  `json:"rect"`
	Body  Body  `json:"body"`
	Below *Rect `json:"below,omitempty"`
	Left  *Rect `json:"left,omitempty"`
	Above *Rect `json:"above,omitempty"`
	Right *Rect `json:"right,omitempty"`
}

// Snapshot is every tile of a plane, sorted by rectangle.
type Snapshot []TileRecord

// Sort orders the records by rectangle.
func (s Snapshot) Sort() {
	sort.Slice(s, func(i, j int) bool { return s[i].Rect.Less(s[j].Rect) })
}

// Solids returns only the records with a solid body.
func (s Snapshot) Solids() Snapshot {
	var out Snapshot
	for _, rec := range s {
		if !rec.Body.IsSpace() {
			out = append(out, rec)
		}
	}
	return out
}

// CountSpace returns the number of space records.
func (s Snapshot) CountSpace() int {
	n := 0
	for _, rec := range s {
		if rec.Body.IsSpace() {
			n++
		}
	}
	return n
}

// Bounds returns the box around every solid tile, grown by margin on each
// side. With no solid tiles it returns a margin-sized box around the origin.
func (s Snapshot) Bounds(margin int32) Rect {
	b := Rect{
		LL: Point{PosInfinity, PosInfinity},
		UR: Point{NegInfinity, NegInfinity},
	}
	found := false
	for _, rec := range s {
		if rec.Body.IsSpace() {
			continue
		}
		found = true
		b.LL.X = min(b.LL.X, rec.Rect.LL.X)
		b.LL.Y = min(b.LL.Y, rec.Rect.LL.Y)
		b.UR.X = max(b.UR.X, rec.Rect.UR.X)
		b.UR.Y = max(b.UR.Y, rec.Rect.UR.Y)
	}
	if !found {
		return R(-margin, -margin, margin, margin)
	}
	return Rect{
		LL: Point{saturate(int64(b.LL.X) - int64(margin)), saturate(int64(b.LL.Y) - int64(margin))},
		UR: Point{saturate(int64(b.UR.X) + int64(margin)), saturate(int64(b.UR.Y) + int64(margin))},
	}
}

func saturate(v int64) int32 {
	switch {
	case v < int64(NegInfinity):
		return NegInfinity
	case v > int64(PosInfinity):
		return PosInfinity
	}
	return int32(v)
}

// Clip limits r to bounds.
func (r Rect) Clip(bounds Rect) Rect {
	return Rect{
		LL: Point{max(r.LL.X, bounds.LL.X), max(r.LL.Y, bounds.LL.Y)},
		UR: Point{min(r.UR.X, bounds.UR.X), min(r.UR.Y, bounds.UR.Y)},
	}
}
