package engine

import (
	"testing"

	"github.com/piwi3910/cento/internal/model"
	"github.com/stretchr/testify/assert"
)

// ─── Find Tests ───

func TestFindTileAt_CoversEveryPoint(t *testing.T) {
	p := gridPlane(t)

	for x := int32(-15); x < 55; x += 3 {
		for y := int32(-15); y < 55; y += 3 {
			pt := model.Point{X: x, Y: y}
			ref := p.FindTileAt(pt)
			assert.True(t, p.Rect(ref).Contains(pt), "point %s in %s", pt, p.Rect(ref))
		}
	}
}

func TestFindTileAt_Extremes(t *testing.T) {
	p := gridPlane(t)
	corners := []model.Point{
		{X: model.NegInfinity, Y: model.NegInfinity},
		{X: model.PosInfinity, Y: model.PosInfinity},
		{X: model.NegInfinity, Y: model.PosInfinity},
		{X: model.PosInfinity, Y: model.NegInfinity},
		{X: model.PosInfinity, Y: 5},
	}
	for _, pt := range corners {
		ref := p.FindTileAt(pt)
		assert.True(t, p.Rect(ref).Contains(pt), "point %s", pt)
		assert.True(t, p.Body(ref).IsSpace())
	}
}

func TestFindTileAt_HalfOpenEdges(t *testing.T) {
	p := New()
	ref := insert(t, p, 9, model.R(0, 0, 10, 10))

	assert.Equal(t, ref, p.FindTileAt(model.Point{X: 0, Y: 0}))
	assert.Equal(t, ref, p.FindTileAt(model.Point{X: 9, Y: 9}))
	assert.NotEqual(t, ref, p.FindTileAt(model.Point{X: 10, Y: 5}))
	assert.NotEqual(t, ref, p.FindTileAt(model.Point{X: 5, Y: 10}))
}

func TestFindTileAt_UsesHint(t *testing.T) {
	p := gridPlane(t)
	p.FindTileAt(model.Point{X: 15, Y: 15})
	before := p.Stats().FindSteps

	p.FindTileAt(model.Point{X: 16, Y: 16})

	assert.Equal(t, before, p.Stats().FindSteps, "lookup inside the cached tile takes no steps")
}
