package model

import (
	"fmt"
	"testing"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	if !SupportedFormat(cfg.ExportFormat) {
		t.Errorf("default format %q is not supported", cfg.ExportFormat)
	}
	if cfg.RecentInputs == nil {
		t.Error("RecentInputs should be empty, not nil")
	}
	if !cfg.ValidateEach {
		t.Error("ValidateEach should default to true")
	}
}

func TestAddRecentInput(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentInput("a.midi")
	cfg.AddRecentInput("b.midi")
	cfg.AddRecentInput("a.midi")

	if len(cfg.RecentInputs) != 2 {
		t.Fatalf("expected 2 recent inputs, got %v", cfg.RecentInputs)
	}
	if cfg.RecentInputs[0] != "a.midi" || cfg.RecentInputs[1] != "b.midi" {
		t.Errorf("unexpected order %v", cfg.RecentInputs)
	}

	for i := 0; i < MaxRecentInputs+5; i++ {
		cfg.AddRecentInput(fmt.Sprintf("%d.lisp", i))
	}
	if len(cfg.RecentInputs) != MaxRecentInputs {
		t.Errorf("expected %d recent inputs, got %d", MaxRecentInputs, len(cfg.RecentInputs))
	}
	last := fmt.Sprintf("%d.lisp", MaxRecentInputs+4)
	if cfg.RecentInputs[0] != last {
		t.Errorf("expected %s first, got %s", last, cfg.RecentInputs[0])
	}
}

func TestSupportedFormat(t *testing.T) {
	for _, f := range []string{FormatOBJ, FormatDXF, FormatPDF, FormatXLSX} {
		if !SupportedFormat(f) {
			t.Errorf("%s should be supported", f)
		}
	}
	for _, f := range []string{"", "svg", "OBJ"} {
		if SupportedFormat(f) {
			t.Errorf("%q should not be supported", f)
		}
	}
}
