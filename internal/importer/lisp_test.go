package importer

import (
	"strings"
	"testing"

	"github.com/piwi3910/cento/internal/model"
)

// ─── Lisp Placement Tests ──────────────────────────────────

const placement = `; pads of a two-pin part
(symbol "res" ((0 0 2 4) (6 0 8 4)))
(symbol "via" ((0 0 1 1)))

(inst "res" (10 10))
(inst "via" (-5 -5))
(inst "res" (10 20)) ; second copy
`

func TestParseLisp_ExpandsInstances(t *testing.T) {
	result := ParseLisp([]byte(placement))

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	assertRects(t, result.Rects,
		model.R(10, 10, 12, 14), model.R(16, 10, 18, 14),
		model.R(-5, -5, -4, -4),
		model.R(10, 20, 12, 24), model.R(16, 20, 18, 24),
	)
}

func TestParseLisp_UnknownSymbolWarns(t *testing.T) {
	result := ParseLisp([]byte(`(symbol "a" ((0 0 1 1))) (inst "b" (0 0)) (inst "a" (1 1))`))

	assertRects(t, result.Rects, model.R(1, 1, 2, 2))
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `"b"`) {
		t.Errorf("expected a warning about symbol b, got %v", result.Warnings)
	}
}

func TestParseLisp_DegeneratePadWarns(t *testing.T) {
	result := ParseLisp([]byte(`(symbol "a" ((0 0 0 5) (0 0 3 3))) (inst "a" (0 0))`))

	assertRects(t, result.Rects, model.R(0, 0, 3, 3))
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "Skipped invalid rectangle") {
		t.Errorf("expected a skip warning, got %v", result.Warnings)
	}
}

func TestParseLisp_OffsetOutsidePlaneWarns(t *testing.T) {
	result := ParseLisp([]byte(`(symbol "a" ((10 0 20 10) (0 0 1 1))) (inst "a" (2147483640 0))`))

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	assertRects(t, result.Rects, model.R(2147483640, 0, 2147483641, 1))
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "Skipped pad (10, 0) - (20, 10)") {
		t.Errorf("expected a skip warning for the wrapped pad, got %v", result.Warnings)
	}
}

func TestParseLisp_SyntaxErrors(t *testing.T) {
	tests := map[string]string{
		"unknown form":     `(group "a" ())`,
		"missing name":     `(symbol ((0 0 1 1)))`,
		"short rect":       `(symbol "a" ((0 0 1)))`,
		"unclosed":         `(symbol "a" ((0 0 1 1))`,
		"bare atom":        `symbol`,
		"unterminated str": `(inst "a (0 0))`,
		"bad point":        `(inst "a" (0))`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			result := ParseLisp([]byte(data))
			if len(result.Errors) != 1 {
				t.Fatalf("expected 1 error, got %v", result.Errors)
			}
			if len(result.Rects) != 0 {
				t.Errorf("expected no rects, got %v", result.Rects)
			}
		})
	}
}

func TestPlacement_Rects(t *testing.T) {
	p := Placement{
		Symbols:   []Symbol{{Name: "s", Pads: []model.Rect{model.R(0, 0, 1, 2)}}},
		Instances: []Instance{{Symbol: "s", Origin: model.Point{X: 3, Y: 4}}},
	}
	rects, warnings := p.Rects()
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	assertRects(t, rects, model.R(3, 4, 4, 6))
}
