package engine

import "github.com/piwi3910/cento/internal/model"

// Placeable reports whether r can be carved out of the plane at all: it
// must have area and stay clear of the sentinel coordinates.
func Placeable(r model.Rect) bool {
	return !r.Empty() &&
		r.Left() > model.NegInfinity && r.Bottom() > model.NegInfinity &&
		r.Right() < model.PosInfinity && r.Top() < model.PosInfinity
}

// InsertTile places plan.Body over plan.Rect. It fails without touching the
// plane when the area is not entirely space, when the rect cannot be placed,
// or when the body is Space. The new tile is fused with fully aligned solid
// neighbors the merge policy accepts.
func (p *Plane) InsertTile(plan model.Plan) (Ref, bool) {
	r := plan.Rect
	if plan.Body.IsSpace() || !Placeable(r) || !p.IsEmpty(r) {
		p.stats.InsertRejects++
		return Ref{}, false
	}
	left, bottom, right, top := r.Left(), r.Bottom(), r.Right(), r.Top()

	// Empty space is a stack of full-width strips, so one tile spans each
	// of the top and bottom edges.
	p.splitHorz(p.find(model.Point{X: left, Y: top - 1}), top)
	cur := p.find(model.Point{X: left, Y: bottom})
	if up := p.splitHorz(cur, bottom); up != None {
		cur = up
	}

	mid := None
	for {
		if rest := p.splitVert(cur, left); rest != None {
			side := tryMerge(cur, p.mergeDown)
			cur = rest
			if p.t(cur).rect.Top() == top {
				p.mergeUp(side)
			}
		}
		if rt := p.splitVert(cur, right); rt != None {
			side := tryMerge(rt, p.mergeDown)
			if p.t(cur).rect.Top() == top {
				p.mergeUp(side)
			}
		}

		rowTop := p.t(cur).rect.Top()
		next := p.t(cur).above
		if mid == None {
			mid = cur
		} else {
			mid = p.joinVert(mid, cur)
		}
		if rowTop >= top {
			break
		}
		cur = next
	}

	p.t(mid).body = plan.Body
	mid = p.fuseSolid(mid)
	p.hint = mid
	p.stats.Inserts++
	return p.ref(mid), true
}

// fuseSolid merges id with fully aligned solid neighbors until none is left.
func (p *Plane) fuseSolid(id TileID) TileID {
	for {
		merged := false
		for _, merge := range []func(TileID) TileID{p.mergeLeft, p.mergeRight, p.mergeDown, p.mergeUp} {
			if m := merge(id); m != None {
				id = m
				merged = true
			}
		}
		if !merged {
			return id
		}
	}
}
