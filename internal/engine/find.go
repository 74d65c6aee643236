package engine

import "github.com/piwi3910/cento/internal/model"

// FindTileAt returns the tile containing pt. The search starts from the tile
// found last, so nearby lookups are cheap.
func (p *Plane) FindTileAt(pt model.Point) Ref {
	return p.ref(p.find(pt))
}

func (p *Plane) find(pt model.Point) TileID {
	cur := p.hint
	if cur == None || !p.tiles.alive(cur) {
		cur = p.start
	}
	p.stats.Finds++

	for {
		t := p.t(cur)
		for !model.InSpan(t.rect.Bottom(), t.rect.Top(), pt.Y) {
			if pt.Y < t.rect.Bottom() {
				cur = t.below
			} else {
				cur = t.above
			}
			t = p.t(cur)
			p.stats.FindSteps++
		}
		for !model.InSpan(t.rect.Left(), t.rect.Right(), pt.X) {
			if pt.X < t.rect.Left() {
				cur = t.left
			} else {
				cur = t.right
			}
			t = p.t(cur)
			p.stats.FindSteps++
		}
		if t.rect.Contains(pt) {
			break
		}
	}

	p.hint = cur
	return cur
}
