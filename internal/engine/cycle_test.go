package engine

import (
	"testing"

	"github.com/piwi3910/cento/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Cycle Tests ───

func TestRunCycle_Clean(t *testing.T) {
	rects := []model.Rect{
		model.R(0, 0, 10, 10),
		model.R(10, 0, 20, 5),
		model.R(-5, 10, 25, 12),
		model.R(3, 3, 6, 6), // overlaps the first
	}
	var steps []Stage
	result := RunCycle(rects, CycleOptions{
		Validate: true,
		OnStep: func(stage Stage, _ model.Plan, _ *Plane) {
			steps = append(steps, stage)
		},
	})

	assert.True(t, result.Clean())
	assert.Nil(t, result.Failure)
	assert.Len(t, result.Inserted, 3)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, model.Body(3), result.Rejected[0].Plan.Body)
	require.Len(t, result.Rejected[0].Overlaps, 1)
	assert.Equal(t, model.R(0, 0, 10, 10), result.Rejected[0].Overlaps[0].Rect)
	assert.Len(t, steps, 6)
	assert.Equal(t, 3, result.Stats.Inserts)
	assert.Equal(t, 3, result.Stats.Removes)
}

func TestRunCycle_FirstBody(t *testing.T) {
	result := RunCycle([]model.Rect{model.R(0, 0, 1, 1), model.R(2, 2, 3, 3)}, CycleOptions{FirstBody: 100})

	require.Len(t, result.Inserted, 2)
	assert.Equal(t, model.Body(100), result.Inserted[0].Body)
	assert.Equal(t, model.Body(101), result.Inserted[1].Body)
	assert.True(t, result.Clean())
}

func TestRunCycle_FusedTilesStillRemoved(t *testing.T) {
	everything := func(a, b model.Body) bool { return true }
	rects := []model.Rect{model.R(0, 0, 10, 10), model.R(10, 0, 20, 10)}

	result := RunCycle(rects, CycleOptions{Validate: true, PlaneOptions: []Option{WithMergeFunc(everything)}})

	assert.True(t, result.Clean())
}

func TestBuild(t *testing.T) {
	p, rejected := Build([]model.Rect{model.R(0, 0, 4, 4), model.R(2, 2, 6, 6), model.R(4, 0, 8, 2)})

	assert.Len(t, rejected, 1)
	assert.Len(t, p.Snapshot().Solids(), 2)
	assert.NoError(t, p.Validate())
}

func TestRunCycle_BrokenStepIsReported(t *testing.T) {
	split := false
	rects := []model.Rect{model.R(0, 0, 10, 10), model.R(20, 0, 30, 10), model.R(40, 0, 50, 10)}

	result := RunCycle(rects, CycleOptions{
		Validate: true,
		OnStep: func(stage Stage, _ model.Plan, p *Plane) {
			if split {
				return
			}
			// Cut the space strip under the solids in two.
			require.True(t, p.SplitVert(p.FindTileAt(model.Point{X: 0, Y: -100}), 0).OK())
			split = true
		},
	})

	require.NotNil(t, result.Failure)
	f := result.Failure
	assert.Equal(t, StageInsert, f.Stage)
	assert.Equal(t, model.Plan{Body: 1, Rect: model.R(20, 0, 30, 10)}, f.Plan)
	assert.Len(t, result.Inserted, 1, "the cycle stops at the broken step")
	assert.False(t, result.Clean())

	got := kinds(f.Violations)
	assert.Equal(t, 1, got[ViolationUnmergedLeft])
	assert.Equal(t, 1, got[ViolationUnmergedRight])
	assert.Len(t, f.Before.Solids(), 1)
	assert.Len(t, f.After.Solids(), 2)
	assert.Equal(t, f.After, result.Final)
}

func TestRunCycle_LeftoverTilesFailFinalCheck(t *testing.T) {
	rects := []model.Rect{model.R(0, 0, 10, 10), model.R(20, 0, 30, 10)}

	result := RunCycle(rects, CycleOptions{
		OnStep: func(stage Stage, plan model.Plan, p *Plane) {
			if stage == StageRemove && plan.Body == 1 {
				p.SplitVert(p.FindTileAt(model.Point{}), 0)
			}
		},
	})

	require.NotNil(t, result.Failure)
	assert.Equal(t, StageFinal, result.Failure.Stage)
	assert.Empty(t, result.Failure.Violations)
	assert.Len(t, result.Final, 2)
	assert.Equal(t, result.Final, result.Failure.After)
	assert.False(t, result.Clean())
}
