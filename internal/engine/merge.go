package engine

// MergeUp fuses ref with the tile above it when both share the same x-span
// and the bodies may merge. It returns the surviving tile, or the zero Ref
// when nothing changed.
func (p *Plane) MergeUp(ref Ref) Ref { return p.mergeRef(ref, p.mergeUp) }

// MergeDown fuses ref with the tile below it. See MergeUp.
func (p *Plane) MergeDown(ref Ref) Ref { return p.mergeRef(ref, p.mergeDown) }

// MergeLeft fuses ref with the tile to its left when both share the same
// y-span. See MergeUp.
func (p *Plane) MergeLeft(ref Ref) Ref { return p.mergeRef(ref, p.mergeLeft) }

// MergeRight fuses ref with the tile to its right. See MergeLeft.
func (p *Plane) MergeRight(ref Ref) Ref { return p.mergeRef(ref, p.mergeRight) }

func (p *Plane) mergeRef(ref Ref, merge func(TileID) TileID) Ref {
	id, ok := p.tiles.resolve(ref)
	if !ok {
		return Ref{}
	}
	return p.ref(merge(id))
}

func (p *Plane) mergeUp(id TileID) TileID {
	t := p.t(id)
	n := t.above
	if n == None || !p.alignedX(id, n) || !p.canMerge(t.body, p.t(n).body) {
		return None
	}
	return p.joinVert(id, n)
}

func (p *Plane) mergeDown(id TileID) TileID {
	t := p.t(id)
	n := t.below
	if n == None || !p.alignedX(id, n) || !p.canMerge(t.body, p.t(n).body) {
		return None
	}
	return p.joinVert(n, id)
}

func (p *Plane) mergeLeft(id TileID) TileID {
	t := p.t(id)
	n := t.left
	if n == None || !p.alignedY(id, n) || !p.canMerge(t.body, p.t(n).body) {
		return None
	}
	return p.joinHorz(n, id)
}

func (p *Plane) mergeRight(id TileID) TileID {
	t := p.t(id)
	n := t.right
	if n == None || !p.alignedY(id, n) || !p.canMerge(t.body, p.t(n).body) {
		return None
	}
	return p.joinHorz(id, n)
}

// tryMerge runs merge and returns the survivor, or id when nothing merged.
func tryMerge(id TileID, merge func(TileID) TileID) TileID {
	if m := merge(id); m != None {
		return m
	}
	return id
}

func (p *Plane) alignedX(a, b TileID) bool {
	ra, rb := p.t(a).rect, p.t(b).rect
	return ra.Left() == rb.Left() && ra.Right() == rb.Right()
}

func (p *Plane) alignedY(a, b TileID) bool {
	ra, rb := p.t(a).rect, p.t(b).rect
	return ra.Bottom() == rb.Bottom() && ra.Top() == rb.Top()
}

// joinHorz absorbs r into l. l must sit directly left of r with the same
// y-span. l survives.
func (p *Plane) joinHorz(l, r TileID) TileID {
	lt, rt := p.t(l), p.t(r)
	rr := rt.rect

	for n := rt.above; n != None && p.t(n).rect.Right() > rr.Left(); n = p.t(n).left {
		if p.t(n).below == r {
			p.t(n).below = l
		}
	}
	for n := rt.below; n != None && p.t(n).rect.Left() < rr.Right(); n = p.t(n).right {
		if p.t(n).above == r {
			p.t(n).above = l
		}
	}
	for n := rt.right; n != None && p.t(n).rect.Top() > rr.Bottom(); n = p.t(n).below {
		if p.t(n).left == r {
			p.t(n).left = l
		}
	}

	lt.rect.UR.X = rr.Right()
	lt.above = rt.above
	lt.right = rt.right
	p.retire(r, l)
	return l
}

// joinVert absorbs upper into lower. lower must sit directly below upper
// with the same x-span. lower survives.
func (p *Plane) joinVert(lower, upper TileID) TileID {
	lt, ut := p.t(lower), p.t(upper)
	ur := ut.rect

	for n := ut.above; n != None && p.t(n).rect.Right() > ur.Left(); n = p.t(n).left {
		if p.t(n).below == upper {
			p.t(n).below = lower
		}
	}
	for n := ut.right; n != None && p.t(n).rect.Top() > ur.Bottom(); n = p.t(n).below {
		if p.t(n).left == upper {
			p.t(n).left = lower
		}
	}
	for n := ut.left; n != None && p.t(n).rect.Bottom() < ur.Top(); n = p.t(n).above {
		if p.t(n).right == upper {
			p.t(n).right = lower
		}
	}

	lt.rect.UR.Y = ur.Top()
	lt.above = ut.above
	lt.right = ut.right
	p.retire(upper, lower)
	return lower
}
