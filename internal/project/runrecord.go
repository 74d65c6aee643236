package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/cento/internal/engine"
	"github.com/piwi3910/cento/internal/model"
	"github.com/segmentio/encoding/json"
)

// RunRecordVersion is written into every record.
const RunRecordVersion = "1.0.0"

// RunRecord summarizes one insert/remove cycle for later inspection.
type RunRecord struct {
	Version   string          `json:"version"`
	RunID     string          `json:"run_id"`
	CreatedAt string          `json:"created_at"`
	Source    string          `json:"source"`
	Config    model.AppConfig `json:"config"`
	Rects     int             `json:"rects"`
	Inserted  int             `json:"inserted"`
	Rejected  []RejectRecord  `json:"rejected"`
	Stats     engine.Stats    `json:"stats"`
	Failure   *FailureRecord  `json:"failure,omitempty"`
	ExitCode  int             `json:"exit_code"`
}

// RejectRecord is a rectangle that could not be inserted.
type RejectRecord struct {
	Plan     model.Plan   `json:"plan"`
	Overlaps []model.Plan `json:"overlaps"`
}

// FailureRecord describes the mutation that broke the tiling.
type FailureRecord struct {
	Stage      string     `json:"stage"`
	Plan       model.Plan `json:"plan"`
	Violations []string   `json:"violations"`
	// Paths of the before/after snapshots, when they were written.
	Files []string `json:"files,omitempty"`
}

// NewRunRecord builds a record from a finished cycle.
func NewRunRecord(runID, source string, config model.AppConfig, rects int, res engine.CycleResult) RunRecord {
	rec := RunRecord{
		Version:   RunRecordVersion,
		RunID:     runID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Source:    source,
		Config:    config,
		Rects:     rects,
		Inserted:  len(res.Inserted),
		Rejected:  []RejectRecord{},
		Stats:     res.Stats,
	}
	for _, rej := range res.Rejected {
		r := RejectRecord{Plan: rej.Plan, Overlaps: []model.Plan{}}
		for _, o := range rej.Overlaps {
			r.Overlaps = append(r.Overlaps, model.Plan{Body: o.Body, Rect: o.Rect})
		}
		rec.Rejected = append(rec.Rejected, r)
	}
	if f := res.Failure; f != nil {
		fr := &FailureRecord{Stage: string(f.Stage), Plan: f.Plan, Violations: []string{}}
		for _, v := range f.Violations {
			fr.Violations = append(fr.Violations, v.String())
		}
		rec.Failure = fr
	}
	return rec
}

// SaveRunRecord writes rec to path, creating parent directories.
func SaveRunRecord(path string, rec RunRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create record directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run record: %w", err)
	}
	return nil
}

// LoadRunRecord reads a record written by SaveRunRecord.
func LoadRunRecord(path string) (RunRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to read run record: %w", err)
	}
	var rec RunRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return RunRecord{}, fmt.Errorf("failed to parse run record: %w", err)
	}
	if rec.Version == "" {
		return RunRecord{}, fmt.Errorf("invalid run record: missing version field")
	}
	if rec.Rejected == nil {
		rec.Rejected = []RejectRecord{}
	}
	return rec, nil
}
