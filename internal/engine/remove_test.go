package engine

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/piwi3910/cento/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Remove Tests ───

func TestRemoveTile_RoundTrip(t *testing.T) {
	p := New()
	ref := insert(t, p, 0, model.R(-256, -256, 256, 256))

	require.NoError(t, p.RemoveTile(ref))

	var tiles []model.TileRecord
	p.QueryAll(func(r Ref) Step {
		rec, ok := p.Record(r)
		require.True(t, ok)
		tiles = append(tiles, rec)
		return Continue
	})
	require.Len(t, tiles, 1)
	assert.Equal(t, model.Space, tiles[0].Body)
	assert.Equal(t, model.Universe(), tiles[0].Rect)
	requireValid(t, p)
}

func TestRemoveTile_SpaceTile(t *testing.T) {
	p := New()
	err := p.RemoveTile(p.FindTileAt(model.Point{}))

	assert.True(t, errors.Is(err, ErrNotSolid))
	assert.True(t, p.IsUniverse())
}

func TestRemoveTile_StaleRef(t *testing.T) {
	p := New()
	ref := insert(t, p, 0, model.R(0, 0, 10, 10))
	require.NoError(t, p.RemoveTile(ref))

	assert.ErrorIs(t, p.RemoveTile(ref), ErrStaleTile)
}

func TestRemoveTile_ThreeRectanglesAnyOrder(t *testing.T) {
	rects := []model.Rect{
		model.R(0, 0, 10, 10),
		model.R(15, 5, 25, 30),
		model.R(-20, 12, 12, 18),
	}

	for _, ins := range permutations(3) {
		for _, rem := range permutations(3) {
			p := New()
			refs := make([]Ref, 3)
			for _, i := range ins {
				refs[i] = insert(t, p, model.Body(i), rects[i])
				requireValid(t, p)
			}
			for _, i := range rem {
				require.NoError(t, p.RemoveTile(refs[i]))
				requireValid(t, p)
			}
			assert.True(t, p.IsUniverse(), "insert %v remove %v", ins, rem)
		}
	}
}

func TestRemoveTile_NeighborsOnBothSides(t *testing.T) {
	p := New()
	center := insert(t, p, 0, model.R(10, 0, 20, 40))
	// Staggered neighbors cut the reverted region into several bands.
	insert(t, p, 1, model.R(0, 5, 10, 15))
	insert(t, p, 2, model.R(0, 25, 10, 35))
	insert(t, p, 3, model.R(20, -5, 30, 8))
	insert(t, p, 4, model.R(20, 12, 30, 30))
	insert(t, p, 5, model.R(20, 33, 30, 45))
	requireValid(t, p)

	require.NoError(t, p.RemoveTile(center))
	requireValid(t, p)
	assert.True(t, p.IsEmpty(model.R(10, 0, 20, 40)))
}

func TestRemoveTile_TouchingSolidsAbove(t *testing.T) {
	p := New()
	low := insert(t, p, 0, model.R(0, 0, 30, 10))
	insert(t, p, 1, model.R(5, 10, 12, 20))
	insert(t, p, 2, model.R(18, 10, 25, 20))
	requireValid(t, p)

	require.NoError(t, p.RemoveTile(low))
	requireValid(t, p)
}

func TestRandomInsertRemoveKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	p := New()
	live := map[model.Body]Ref{}
	var next model.Body

	for step := 0; step < 400; step++ {
		if len(live) > 0 && rng.Intn(3) == 0 {
			for body, ref := range live {
				require.NoError(t, p.RemoveTile(ref), "step %d", step)
				delete(live, body)
				break
			}
		} else {
			x, y := int32(rng.Intn(60)), int32(rng.Intn(60))
			r := model.R(x, y, x+1+int32(rng.Intn(15)), y+1+int32(rng.Intn(15)))
			empty := p.IsEmpty(r)
			ref, ok := p.InsertTile(model.Plan{Body: next, Rect: r})
			require.Equal(t, empty, ok, "step %d rect %s", step, r)
			if ok {
				live[next] = ref
			}
			next++
		}
		requireValid(t, p)
		checkCoverage(t, p, rng)
	}

	for _, ref := range live {
		require.NoError(t, p.RemoveTile(ref))
		requireValid(t, p)
	}
	assert.True(t, p.IsUniverse())
}

func checkCoverage(t *testing.T, p *Plane, rng *rand.Rand) {
	t.Helper()
	for i := 0; i < 20; i++ {
		pt := model.Point{X: int32(rng.Intn(100) - 20), Y: int32(rng.Intn(100) - 20)}
		assert.True(t, p.Rect(p.FindTileAt(pt)).Contains(pt), "point %s", pt)
	}
}

func permutations(n int) [][]int {
	if n == 1 {
		return [][]int{{0}}
	}
	var out [][]int
	for _, perm := range permutations(n - 1) {
		for i := 0; i <= len(perm); i++ {
			next := append([]int{}, perm[:i]...)
			next = append(next, n-1)
			next = append(next, perm[i:]...)
			out = append(out, next)
		}
	}
	return out
}
