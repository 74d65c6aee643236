package engine

import "github.com/piwi3910/cento/internal/model"

// Stage names where in a cycle a failure happened.
type Stage string

const (
	StageInsert Stage = "insert"
	StageRemove Stage = "remove"
	StageFinal  Stage = "final"
)

// CycleOptions controls RunCycle.
type CycleOptions struct {
	// Validate checks the tiling after every insert and remove.
	Validate bool
	// FirstBody is the body given to the first rectangle; later ones count up.
	FirstBody model.Body
	// Plane options, such as WithMergeFunc.
	PlaneOptions []Option
	// OnStep, when set, is called after every successful mutation.
	OnStep func(stage Stage, plan model.Plan, p *Plane)
}

// Rejection is a rectangle that could not be inserted, with the solid tiles
// standing in its way.
type Rejection struct {
	Plan     model.Plan
	Overlaps model.Snapshot
}

// CycleFailure records the first mutation that left the tiling broken.
type CycleFailure struct {
	Stage      Stage
	Plan       model.Plan
	Violations []Violation
	Before     model.Snapshot
	After      model.Snapshot
}

// CycleResult holds the outcome of inserting and then removing a sequence of
// rectangles.
type CycleResult struct {
	Inserted []model.Plan
	Rejected []Rejection
	Failure  *CycleFailure
	Final    model.Snapshot
	Stats    Stats
}

// Clean reports whether the cycle passed every check and ended with the
// universe tile alone.
func (r CycleResult) Clean() bool {
	return r.Failure == nil && len(r.Final) == 1 && r.Final[0].Body.IsSpace() && r.Final[0].Rect == model.Universe()
}

// RunCycle inserts each rectangle with increasing body ids, then removes the
// inserted tiles in insertion order. It stops at the first mutation that
// breaks the tiling when validation is enabled.
func RunCycle(rects []model.Rect, opts CycleOptions) CycleResult {
	p := New(opts.PlaneOptions...)
	result := CycleResult{}

	type placed struct {
		plan model.Plan
		ref  Ref
	}
	var tiles []placed

	body := opts.FirstBody
	for _, r := range rects {
		plan := model.Plan{Body: body, Rect: r}
		body++

		var before model.Snapshot
		if opts.Validate {
			before = p.Snapshot()
		}
		ref, ok := p.InsertTile(plan)
		if !ok {
			result.Rejected = append(result.Rejected, Rejection{Plan: plan, Overlaps: p.Overlapping(r)})
			continue
		}
		if f := checkStep(p, opts.Validate, StageInsert, plan, before); f != nil {
			result.Failure = f
			return finish(p, result)
		}
		if opts.OnStep != nil {
			opts.OnStep(StageInsert, plan, p)
		}
		result.Inserted = append(result.Inserted, plan)
		tiles = append(tiles, placed{plan: plan, ref: ref})
	}

	for _, tile := range tiles {
		var before model.Snapshot
		if opts.Validate {
			before = p.Snapshot()
		}
		if err := p.RemoveTile(tile.ref); err != nil {
			// A fused tile takes its neighbors' Refs with it.
			ref := p.FindTileAt(tile.plan.Rect.LL)
			if p.Body(ref).IsSpace() {
				continue
			}
			if err := p.RemoveTile(ref); err != nil {
				continue
			}
		}
		if f := checkStep(p, opts.Validate, StageRemove, tile.plan, before); f != nil {
			result.Failure = f
			return finish(p, result)
		}
		if opts.OnStep != nil {
			opts.OnStep(StageRemove, tile.plan, p)
		}
	}

	result = finish(p, result)
	if result.Failure == nil && !p.IsUniverse() {
		result.Failure = &CycleFailure{Stage: StageFinal, After: result.Final}
	}
	return result
}

func checkStep(p *Plane, validate bool, stage Stage, plan model.Plan, before model.Snapshot) *CycleFailure {
	if !validate {
		return nil
	}
	vs := p.Violations()
	if len(vs) == 0 {
		return nil
	}
	return &CycleFailure{
		Stage:      stage,
		Plan:       plan,
		Violations: vs,
		Before:     before,
		After:      p.Snapshot(),
	}
}

func finish(p *Plane, result CycleResult) CycleResult {
	result.Final = p.Snapshot()
	result.Stats = p.Stats()
	return result
}

// Build inserts every rectangle into a fresh plane and returns it along with
// the rectangles that were rejected.
func Build(rects []model.Rect, opts ...Option) (*Plane, []Rejection) {
	p := New(opts...)
	var rejected []Rejection
	for i, r := range rects {
		plan := model.Plan{Body: model.Body(i), Rect: r}
		if _, ok := p.InsertTile(plan); !ok {
			rejected = append(rejected, Rejection{Plan: plan, Overlaps: p.Overlapping(r)})
		}
	}
	return p, rejected
}
