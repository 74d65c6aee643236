package model

import (
	"fmt"
	"math"
)

// Sentinel coordinates for the unbounded edges of the universe. They are only
// ever compared, never used in arithmetic.
const (
	NegInfinity int32 = math.MinInt32
	PosInfinity int32 = math.MaxInt32
)

// Body identifies the owner of a tile. Space marks an unoccupied tile; every
// other value is a solid body.
type Body uint64

// Space is the body of every unoccupied tile.
const Space Body = math.MaxUint64

// IsSpace reports whether b is the space body.
func (b Body) IsSpace() bool { return b == Space }

func (b Body) String() string {
	if b == Space {
		return "space"
	}
	return fmt.Sprintf("%d", uint64(b))
}

// Point is an integer coordinate pair ordered lexicographically on (X, Y).
type Point struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// Compare returns -1, 0 or 1 as p sorts before, equal to or after q.
func (p Point) Compare(q Point) int {
	switch {
	case p.X < q.X:
		return -1
	case p.X > q.X:
		return 1
	case p.Y < q.Y:
		return -1
	case p.Y > q.Y:
		return 1
	}
	return 0
}

// Less reports whether p sorts before q.
func (p Point) Less(q Point) bool { return p.Compare(q) < 0 }

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", coord(p.X), coord(p.Y))
}

// Rect is an axis-aligned rectangle given by its lower-left and upper-right
// corners. LL <= UR holds componentwise for every well-formed Rect.
type Rect struct {
	LL Point `json:"ll"`
	UR Point `json:"ur"`
}

// R builds a Rect from two corner coordinates, normalizing their order.
func R(x0, y0, x1, y1 int32) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{LL: Point{x0, y0}, UR: Point{x1, y1}}
}

// Universe returns the rectangle spanning the whole representable plane.
func Universe() Rect {
	return Rect{
		LL: Point{NegInfinity, NegInfinity},
		UR: Point{PosInfinity, PosInfinity},
	}
}

// Left, Bottom, Right and Top return the rectangle's edges.
func (r Rect) Left() int32   { return r.LL.X }
func (r Rect) Bottom() int32 { return r.LL.Y }
func (r Rect) Right() int32  { return r.UR.X }
func (r Rect) Top() int32    { return r.UR.Y }

// Width and Height are widened to int64 so sentinel spans do not overflow.
func (r Rect) Width() int64  { return int64(r.UR.X) - int64(r.LL.X) }
func (r Rect) Height() int64 { return int64(r.UR.Y) - int64(r.LL.Y) }

// Empty reports whether r covers no area.
func (r Rect) Empty() bool { return r.LL.X >= r.UR.X || r.LL.Y >= r.UR.Y }

// Valid reports whether LL <= UR componentwise.
func (r Rect) Valid() bool { return r.LL.X <= r.UR.X && r.LL.Y <= r.UR.Y }

// Compare orders rectangles lexicographically on (LL, UR).
func (r Rect) Compare(s Rect) int {
	if c := r.LL.Compare(s.LL); c != 0 {
		return c
	}
	return r.UR.Compare(s.UR)
}

// Less reports whether r sorts before s.
func (r Rect) Less(s Rect) bool { return r.Compare(s) < 0 }

// Contains reports whether p lies in r. Ranges are half-open, except that an
// edge at PosInfinity is inclusive so the universe covers every point.
func (r Rect) Contains(p Point) bool {
	return InSpan(r.LL.X, r.UR.X, p.X) && InSpan(r.LL.Y, r.UR.Y, p.Y)
}

// ContainsRect reports whether s lies entirely within r.
func (r Rect) ContainsRect(s Rect) bool {
	return r.LL.X <= s.LL.X && r.LL.Y <= s.LL.Y && s.UR.X <= r.UR.X && s.UR.Y <= r.UR.Y
}

// Overlaps reports whether r and s share interior area.
func (r Rect) Overlaps(s Rect) bool {
	return r.LL.X < s.UR.X && s.LL.X < r.UR.X && r.LL.Y < s.UR.Y && s.LL.Y < r.UR.Y
}

// Translate shifts r by (dx, dy). It reports false, with the zero Rect, when
// an edge would land on or beyond a sentinel coordinate.
func (r Rect) Translate(dx, dy int32) (Rect, bool) {
	var c [4]int32
	for i, v := range [4]int64{
		int64(r.LL.X) + int64(dx), int64(r.LL.Y) + int64(dy),
		int64(r.UR.X) + int64(dx), int64(r.UR.Y) + int64(dy),
	} {
		if v <= int64(NegInfinity) || v >= int64(PosInfinity) {
			return Rect{}, false
		}
		c[i] = int32(v)
	}
	return Rect{LL: Point{c[0], c[1]}, UR: Point{c[2], c[3]}}, true
}

func (r Rect) String() string {
	return fmt.Sprintf("%s - %s", r.LL, r.UR)
}

// InSpan reports whether v lies in [lo, hi), treating hi == PosInfinity as inclusive.
func InSpan(lo, hi, v int32) bool {
	if v < lo {
		return false
	}
	return v < hi || (hi == PosInfinity && v == hi)
}

func coord(v int32) string {
	switch v {
	case NegInfinity:
		return "-inf"
	case PosInfinity:
		return "+inf"
	}
	return fmt.Sprintf("%d", v)
}

// Plan is a request to place body Body over Rect.
type Plan struct {
	Body Body `json:"body"`
	Rect Rect `json:"rect"`
}

func (p Plan) String() string {
	return fmt.Sprintf("%s %s", p.Body, p.Rect)
}
