package engine

import (
	"testing"

	"github.com/piwi3910/cento/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Insert Tests ───

func TestInsertTile_CarvesFourStrips(t *testing.T) {
	p := New()
	r := model.R(-256, -256, 256, 256)

	ref := insert(t, p, 0, r)

	assert.Equal(t, r, p.Rect(ref))
	assert.Equal(t, model.Body(0), p.Body(ref))
	assert.Equal(t, 5, p.Len())
	requireValid(t, p)

	inf, ninf := model.PosInfinity, model.NegInfinity
	want := []model.Rect{
		{LL: model.Point{X: ninf, Y: ninf}, UR: model.Point{X: inf, Y: -256}},
		{LL: model.Point{X: ninf, Y: -256}, UR: model.Point{X: -256, Y: 256}},
		{LL: model.Point{X: 256, Y: -256}, UR: model.Point{X: inf, Y: 256}},
		{LL: model.Point{X: ninf, Y: 256}, UR: model.Point{X: inf, Y: inf}},
	}
	var spaces []model.Rect
	for _, rec := range p.Snapshot() {
		if rec.Body.IsSpace() {
			spaces = append(spaces, rec.Rect)
		}
	}
	assert.ElementsMatch(t, want, spaces)

	// The solid tile stitches to all four strips, and each strip reaches
	// the solid tile walking its shared edge.
	below, left, above, right := p.Stitches(ref)
	assert.ElementsMatch(t, want, []model.Rect{p.Rect(below), p.Rect(left), p.Rect(above), p.Rect(right)})
	for _, s := range []Ref{below, left, above, right} {
		found := false
		visit := func(n Ref) Step {
			if n == ref {
				found = true
				return Stop
			}
			return Continue
		}
		p.TopTiles(s, visit)
		p.BottomTiles(s, visit)
		p.LeftTiles(s, visit)
		p.RightTiles(s, visit)
		assert.True(t, found, "strip %s does not reach the solid tile", p.Rect(s))
	}
}

func TestInsertTile_OverlapIsRejected(t *testing.T) {
	p := New()
	insert(t, p, 0, model.R(-256, -256, 256, 256))
	before := p.Snapshot()

	ref, ok := p.InsertTile(model.Plan{Body: 1, Rect: model.R(0, 0, 512, 512)})

	assert.False(t, ok)
	assert.True(t, ref.IsZero())
	assert.Equal(t, 5, p.Len())
	assert.Equal(t, before, p.Snapshot())
	assert.Equal(t, 1, p.Stats().InsertRejects)
}

func TestInsertTile_RejectsInvalidPlans(t *testing.T) {
	tests := []struct {
		name string
		plan model.Plan
	}{
		{"space body", model.Plan{Body: model.Space, Rect: model.R(0, 0, 1, 1)}},
		{"zero width", model.Plan{Body: 1, Rect: model.R(0, 0, 0, 10)}},
		{"zero height", model.Plan{Body: 1, Rect: model.R(0, 5, 10, 5)}},
		{"touches +inf", model.Plan{Body: 1, Rect: model.Rect{UR: model.Point{X: model.PosInfinity, Y: 1}}}},
		{"touches -inf", model.Plan{Body: 1, Rect: model.Rect{LL: model.Point{X: model.NegInfinity}, UR: model.Point{X: 1, Y: 1}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := New()
			_, ok := p.InsertTile(tc.plan)
			assert.False(t, ok)
			assert.True(t, p.IsUniverse())
		})
	}
}

func TestInsertTile_SucceedsExactlyWhenEmpty(t *testing.T) {
	p := New()
	insert(t, p, 0, model.R(0, 0, 10, 10))
	insert(t, p, 1, model.R(20, 0, 30, 10))

	candidates := []model.Rect{
		model.R(10, 0, 20, 10), // the gap
		model.R(5, 5, 15, 15),  // clips the first
		model.R(-5, 10, 40, 20),
		model.R(9, -5, 21, 1),
		model.R(29, 9, 31, 11),
	}
	for i, r := range candidates {
		empty := p.IsEmpty(r)
		before := p.Snapshot()
		ref, ok := p.InsertTile(model.Plan{Body: model.Body(10 + i), Rect: r})
		assert.Equal(t, empty, ok, "rect %s", r)
		if ok {
			require.NoError(t, p.RemoveTile(ref))
		} else {
			assert.Equal(t, before, p.Snapshot())
		}
		requireValid(t, p)
	}
}

func TestInsertTile_AdjacentRectangles(t *testing.T) {
	p := New()

	// A ring of tiles around a hole, then the hole itself.
	insert(t, p, 0, model.R(0, 0, 30, 10))
	insert(t, p, 1, model.R(0, 20, 30, 30))
	insert(t, p, 2, model.R(0, 10, 10, 20))
	insert(t, p, 3, model.R(20, 10, 30, 20))
	requireValid(t, p)

	hole := p.FindTileAt(model.Point{X: 15, Y: 15})
	assert.Equal(t, model.R(10, 10, 20, 20), p.Rect(hole))
	assert.True(t, p.Body(hole).IsSpace())

	insert(t, p, 4, model.R(10, 10, 20, 20))
	requireValid(t, p)
	assert.Len(t, p.Snapshot().Solids(), 5)
}

func TestInsertTile_StaircaseKeepsStrips(t *testing.T) {
	p := New()
	for i := int32(0); i < 8; i++ {
		insert(t, p, model.Body(i), model.R(i*10, i*5, i*10+7, i*5+12))
		requireValid(t, p)
	}
}
