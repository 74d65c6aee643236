package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/cento/internal/model"
)

// RemoveTile reverts a solid tile to space and restores maximal space strips
// around it. The tile is cut into bands at every side-neighbor boundary, each
// band absorbs its side space and then merges into the band below, and the
// top band finally merges upward. ref is stale afterwards unless it survives
// as the merged tile.
func (p *Plane) RemoveTile(ref Ref) error {
	id, ok := p.tiles.resolve(ref)
	if !ok {
		return ErrStaleTile
	}
	if p.t(id).isSpace() {
		return fmt.Errorf("remove %s: %w", p.t(id).rect, ErrNotSolid)
	}
	p.t(id).body = model.Space
	p.stats.Removes++

	// Cut the region into bands with exactly one neighbor on each side.
	bands := []TileID{id}
	for _, y := range p.bandBreaks(id) {
		up := p.splitHorz(bands[len(bands)-1], y)
		bands = append(bands, up)
	}

	var b TileID
	for _, b = range bands {
		b = p.absorbLeft(b)
		b = p.absorbRight(b)
		b = tryMerge(b, p.mergeDown)
	}
	b = tryMerge(b, p.mergeUp)
	p.hint = b
	return nil
}

// bandBreaks returns, bottom to top, every neighbor boundary strictly inside
// the vertical span of id on either side.
func (p *Plane) bandBreaks(id TileID) []int32 {
	r := p.t(id).rect
	seen := map[int32]bool{}
	var ys []int32
	for _, s := range []side{sideLeft, sideRight} {
		for _, n := range p.neighbors(id, s) {
			if y := p.t(n).rect.Bottom(); y > r.Bottom() && y < r.Top() && !seen[y] {
				seen[y] = true
				ys = append(ys, y)
			}
		}
	}
	sort.Slice(ys, func(i, j int) bool { return ys[i] < ys[j] })
	return ys
}

// absorbLeft joins the space tile left of band b into it, trimming that tile
// to the band's span first. It returns the tile now covering b.
func (p *Plane) absorbLeft(b TileID) TileID {
	l := p.t(b).left
	if l == None || !p.t(l).isSpace() {
		return b
	}
	br := p.t(b).rect
	if up := p.splitHorz(l, br.Bottom()); up != None {
		l = up
	}
	p.splitHorz(l, br.Top())
	return p.joinHorz(l, b)
}

// absorbRight joins the space tile right of band b into it, trimming that
// tile to the band's span first.
func (p *Plane) absorbRight(b TileID) TileID {
	r := p.t(b).right
	if r == None || !p.t(r).isSpace() {
		return b
	}
	br := p.t(b).rect
	p.splitHorz(r, br.Top())
	if up := p.splitHorz(r, br.Bottom()); up != None {
		r = up
	}
	return p.joinHorz(b, r)
}
