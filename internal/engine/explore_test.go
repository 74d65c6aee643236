package engine

import (
	"testing"

	"github.com/piwi3910/cento/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridPlane(t *testing.T) *Plane {
	t.Helper()
	p := New()
	body := model.Body(0)
	for x := int32(0); x < 40; x += 10 {
		for y := int32(0); y < 40; y += 10 {
			if (x/10+y/10)%2 == 0 {
				insert(t, p, body, model.R(x, y, x+10, y+10))
				body++
			}
		}
	}
	requireValid(t, p)
	return p
}

// ─── Query Tests ───

func TestQuery_VisitsOverlappingTilesOnce(t *testing.T) {
	p := gridPlane(t)
	area := model.R(5, 5, 35, 25)

	seen := map[Ref]int{}
	p.Query(area, func(ref Ref) Step {
		seen[ref]++
		return Continue
	})

	for ref, n := range seen {
		assert.Equal(t, 1, n, "tile %s visited %d times", p.Rect(ref), n)
		assert.True(t, p.Rect(ref).Overlaps(area), "tile %s outside area", p.Rect(ref))
	}
	// Every overlapping tile was reached.
	overlapping := 0
	for _, rec := range p.Snapshot() {
		if !rec.Rect.Overlaps(area) {
			continue
		}
		overlapping++
		inside := model.Point{X: max(rec.Rect.LL.X, area.LL.X), Y: max(rec.Rect.LL.Y, area.LL.Y)}
		assert.Contains(t, seen, p.FindTileAt(inside), "tile %s not visited", rec.Rect)
	}
	assert.Equal(t, overlapping, len(seen))
}

func TestQuery_TopDownThenRightward(t *testing.T) {
	p := New()
	insert(t, p, 1, model.R(0, 0, 10, 10))

	var order []model.Rect
	p.Query(model.R(-5, -5, 15, 15), func(ref Ref) Step {
		order = append(order, p.Rect(ref))
		return Continue
	})

	assert.Equal(t, []model.Rect{
		{LL: model.Point{X: model.NegInfinity, Y: 10}, UR: model.Point{X: model.PosInfinity, Y: model.PosInfinity}},
		{LL: model.Point{X: model.NegInfinity, Y: 0}, UR: model.Point{X: 0, Y: 10}},
		model.R(0, 0, 10, 10),
		{LL: model.Point{X: 10, Y: 0}, UR: model.Point{X: model.PosInfinity, Y: 10}},
		{LL: model.Point{X: model.NegInfinity, Y: model.NegInfinity}, UR: model.Point{X: model.PosInfinity, Y: 0}},
	}, order)
}

func TestQueryAll_CountsEveryTile(t *testing.T) {
	p := gridPlane(t)
	n := 0
	p.QueryAll(func(Ref) Step {
		n++
		return Continue
	})
	assert.Equal(t, p.Len(), n)
}

func TestQuery_StopEndsEarly(t *testing.T) {
	p := gridPlane(t)
	n := 0
	p.QueryAll(func(Ref) Step {
		n++
		if n == 3 {
			return Stop
		}
		return Continue
	})
	assert.Equal(t, 3, n)
}

func TestQuery_EmptyAreaVisitsNothing(t *testing.T) {
	p := gridPlane(t)
	p.Query(model.R(5, 5, 5, 10), func(Ref) Step {
		t.Fatal("visitor called for an empty area")
		return Stop
	})
}

func TestQuery_VisitorMayRemoveTiles(t *testing.T) {
	p := gridPlane(t)
	removed := map[model.Rect]bool{}
	p.QueryAll(func(ref Ref) Step {
		if !p.Body(ref).IsSpace() {
			r := p.Rect(ref)
			assert.False(t, removed[r], "solid %s handed out twice", r)
			removed[r] = true
			require.NoError(t, p.RemoveTile(ref))
		}
		return Continue
	})
	requireValid(t, p)
	assert.NotEmpty(t, removed)

	for _, rec := range p.Snapshot().Solids() {
		require.NoError(t, p.RemoveTile(p.FindTileAt(rec.Rect.LL)))
	}
	assert.True(t, p.IsUniverse())
}

// ─── IsEmpty Tests ───

func TestIsEmpty(t *testing.T) {
	p := gridPlane(t)

	tests := []struct {
		name string
		rect model.Rect
		want bool
	}{
		{"white square", model.R(10, 0, 20, 10), true},
		{"black square", model.R(0, 0, 10, 10), false},
		{"straddles corner", model.R(9, 9, 11, 11), false},
		{"outside grid", model.R(100, 100, 200, 200), true},
		{"left of grid", model.R(-50, 0, 0, 40), true},
		{"touches edge only", model.R(-10, 0, 0, 10), true},
		{"spans the grid row", model.R(-10, 12, 50, 13), false},
		{"degenerate", model.R(0, 0, 0, 0), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, p.IsEmpty(tc.rect))
		})
	}
}

// ─── Edge Walk Tests ───

func TestEdgeWalks(t *testing.T) {
	p := New()
	center := insert(t, p, 0, model.R(10, 10, 40, 40))
	insert(t, p, 1, model.R(15, 40, 20, 45))
	insert(t, p, 2, model.R(25, 40, 30, 45))
	insert(t, p, 3, model.R(40, 20, 45, 30))

	collect := func(walk func(Ref, Visitor)) []model.Rect {
		var out []model.Rect
		walk(center, func(ref Ref) Step {
			out = append(out, p.Rect(ref))
			return Continue
		})
		return out
	}

	top := collect(p.TopTiles)
	require.Len(t, top, 5)
	assert.Equal(t, model.R(30, 40, 40, 45), top[0].Clip(model.R(0, 0, 40, 45)), "right to left")
	assert.Equal(t, model.R(25, 40, 30, 45), top[1])
	assert.Equal(t, model.R(15, 40, 20, 45), top[3])

	right := collect(p.RightTiles)
	require.Len(t, right, 3)
	assert.Equal(t, model.R(40, 20, 45, 30), right[1])
	assert.Greater(t, right[0].Bottom(), right[2].Bottom(), "top to bottom")

	assert.Len(t, collect(p.BottomTiles), 1)
	assert.Len(t, collect(p.LeftTiles), 1)
}

func TestEdgeWalk_ResumeFrom(t *testing.T) {
	p := New()
	center := insert(t, p, 0, model.R(0, 0, 50, 10))
	for i := int32(0); i < 5; i++ {
		insert(t, p, model.Body(i+1), model.R(i*10, 10, i*10+5, 15))
	}

	var all []Ref
	p.TopTiles(center, func(ref Ref) Step {
		all = append(all, ref)
		return Continue
	})
	require.Len(t, all, 10)

	// Skip straight from the first tile to the last one.
	var visited []Ref
	p.TopTiles(center, func(ref Ref) Step {
		visited = append(visited, ref)
		if len(visited) == 1 {
			return ResumeFrom(all[len(all)-1])
		}
		return Continue
	})
	assert.Equal(t, []Ref{all[0], all[len(all)-1]}, visited)
}
