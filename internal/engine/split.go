package engine

// HorzSplit is the result of cutting a tile along a horizontal line. The zero
// value means no cut was made.
type HorzSplit struct {
	Lower Ref
	Upper Ref
}

// OK reports whether the split happened.
func (s HorzSplit) OK() bool { return !s.Upper.IsZero() }

// VertSplit is the result of cutting a tile along a vertical line. The zero
// value means no cut was made.
type VertSplit struct {
	Left  Ref
	Right Ref
}

// OK reports whether the split happened.
func (s VertSplit) OK() bool { return !s.Right.IsZero() }

// SplitHorz cuts ref at y. The existing tile keeps the lower half and a new
// tile takes the upper half. y must lie strictly inside the tile.
func (p *Plane) SplitHorz(ref Ref, y int32) HorzSplit {
	id, ok := p.tiles.resolve(ref)
	if !ok {
		return HorzSplit{}
	}
	up := p.splitHorz(id, y)
	if up == None {
		return HorzSplit{}
	}
	return HorzSplit{Lower: p.ref(id), Upper: p.ref(up)}
}

// SplitVert cuts ref at x. The existing tile keeps the left half and a new
// tile takes the right half. x must lie strictly inside the tile.
func (p *Plane) SplitVert(ref Ref, x int32) VertSplit {
	id, ok := p.tiles.resolve(ref)
	if !ok {
		return VertSplit{}
	}
	right := p.splitVert(id, x)
	if right == None {
		return VertSplit{}
	}
	return VertSplit{Left: p.ref(id), Right: p.ref(right)}
}

// splitHorz returns the new upper tile, or None when y is not interior.
func (p *Plane) splitHorz(id TileID, y int32) TileID {
	if r := p.t(id).rect; y <= r.Bottom() || y >= r.Top() {
		return None
	}
	up := p.tiles.get()
	t, u := p.t(id), p.t(up)
	p.stats.Splits++

	u.rect = t.rect
	u.rect.LL.Y = y
	u.body = t.body
	u.below = id
	u.above = t.above
	u.right = t.right

	// Tiles above used to stand on t.
	for n := u.above; n != None && p.t(n).rect.Right() > t.rect.Left(); n = p.t(n).left {
		if p.t(n).below == id {
			p.t(n).below = up
		}
	}
	t.above = up

	// Right neighbors at or above the cut now face the upper half.
	n := t.right
	for n != None && p.t(n).rect.Bottom() >= y {
		if p.t(n).left == id {
			p.t(n).left = up
		}
		n = p.t(n).below
	}
	t.right = n

	// Left neighbors crossing or above the cut point right at the upper half.
	n = t.left
	for n != None && p.t(n).rect.Top() <= y {
		n = p.t(n).above
	}
	u.left = n
	for n != None && p.t(n).right == id {
		p.t(n).right = up
		n = p.t(n).above
	}

	t.rect.UR.Y = y
	return up
}

// splitVert returns the new right tile, or None when x is not interior.
func (p *Plane) splitVert(id TileID, x int32) TileID {
	if r := p.t(id).rect; x <= r.Left() || x >= r.Right() {
		return None
	}
	rt := p.tiles.get()
	t, r := p.t(id), p.t(rt)
	p.stats.Splits++

	r.rect = t.rect
	r.rect.LL.X = x
	r.body = t.body
	r.left = id
	r.right = t.right
	r.above = t.above

	// Right neighbors now face the right half.
	for n := r.right; n != None && p.t(n).rect.Top() > t.rect.Bottom(); n = p.t(n).below {
		if p.t(n).left == id {
			p.t(n).left = rt
		}
	}
	t.right = rt

	// Tiles above, right of the cut, stand on the right half.
	n := t.above
	for n != None && p.t(n).rect.Left() >= x {
		p.t(n).below = rt
		n = p.t(n).left
	}
	t.above = n

	// Tiles below, from the cut onward, carry the right half above them.
	n = t.below
	for n != None && p.t(n).rect.Right() <= x {
		n = p.t(n).right
	}
	r.below = n
	for n != None && p.t(n).above == id {
		p.t(n).above = rt
		n = p.t(n).right
	}

	t.rect.UR.X = x
	return rt
}
