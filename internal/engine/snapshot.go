package engine

import "github.com/piwi3910/cento/internal/model"

// Snapshot copies every tile of the plane, sorted by rectangle.
func (p *Plane) Snapshot() model.Snapshot {
	snap := make(model.Snapshot, 0, p.Len())
	p.QueryAll(func(ref Ref) Step {
		snap = append(snap, p.record(ref.id))
		return Continue
	})
	snap.Sort()
	return snap
}

// Overlapping returns the solid tiles overlapping r.
func (p *Plane) Overlapping(r model.Rect) model.Snapshot {
	var out model.Snapshot
	p.Query(r, func(ref Ref) Step {
		if t := p.t(ref.id); !t.isSpace() {
			out = append(out, p.record(ref.id))
		}
		return Continue
	})
	out.Sort()
	return out
}

// IsUniverse reports whether the plane is back to its single space tile.
func (p *Plane) IsUniverse() bool {
	if p.Len() != 1 {
		return false
	}
	t := p.t(p.start)
	return t.isSpace() && t.rect == model.Universe()
}
