package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/google/uuid"
	"github.com/piwi3910/cento/internal/engine"
	"github.com/piwi3910/cento/internal/export"
	"github.com/piwi3910/cento/internal/importer"
	"github.com/piwi3910/cento/internal/metrics"
	"github.com/piwi3910/cento/internal/model"
	"github.com/piwi3910/cento/internal/project"
	"github.com/segmentio/encoding/json"
	"github.com/tdewolff/argp"
)

// Run is the insert/remove cycle.
type Run struct {
	Out        string `short:"o" desc:"Directory for failure snapshots"`
	Format     string `short:"f" desc:"Snapshot format: obj, dxf, pdf or xlsx"`
	Margin     int    `default:"-1" desc:"Padding around solids in snapshots"`
	Metrics    string `desc:"Write Prometheus metrics to this textfile"`
	Record     string `desc:"Write a JSON run record to this file"`
	LogLevel   string `name:"log-level" desc:"Log level: debug, info, warning or error"`
	Config     string `desc:"Config file, ~/.cento/config.json by default"`
	NoValidate bool   `name:"no-validate" desc:"Only check the final plane"`
	Input      string `index:"0" desc:"Rectangle file"`
}

func (cmd *Run) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	return exit(cmd.execute(os.Stdout))
}

func (cmd *Run) execute(w io.Writer) (code int, err error) {
	start := time.Now()
	s, err := loadSettings(cmd.Config, overrides{
		Out:      cmd.Out,
		Format:   cmd.Format,
		Margin:   cmd.Margin,
		Metrics:  cmd.Metrics,
		LogLevel: cmd.LogLevel,
	})
	if err != nil {
		metrics.InstrumentCommand("run", start, err)
		return exitUsage, err
	}
	defer func() { s.finish("run", start, err) }()

	rects, err := readRects(cmd.Input)
	if err != nil {
		return exitUsage, err
	}
	s.remember(cmd.Input)
	printRects(w, rects)

	runID := uuid.NewString()
	logs.WithTag("run", runID).
		WithTag("file", cmd.Input).
		WithTag("rects", len(rects)).
		Info("cycle started")

	res := engine.RunCycle(rects, engine.CycleOptions{
		Validate: s.config.ValidateEach && !cmd.NoValidate,
		OnStep: func(stage engine.Stage, plan model.Plan, p *engine.Plane) {
			if stage == engine.StageRemove {
				fmt.Fprintf(w, "removing %s\n", plan)
			}
			logs.WithTag("run", runID).
				WithTag("stage", string(stage)).
				WithTag("tiles", p.Len()).
				Debug(plan.String())
		},
	})
	for _, rej := range res.Rejected {
		printRejection(w, rej)
		logs.Warn(errors.New("rectangle overlaps solid tiles").
			WithType(errTypeOverlap).
			WithTag("run", runID).
			WithTag("plan", rej.Plan.String()).
			WithTag("overlaps", len(rej.Overlaps)))
	}
	metrics.InstrumentCycle(res)

	rec := project.NewRunRecord(runID, cmd.Input, s.config, len(rects), res)
	code, err = s.reportFailure(w, runID, cmd.Input, res, &rec)
	rec.ExitCode = code
	if cmd.Record != "" {
		if werr := project.SaveRunRecord(cmd.Record, rec); werr != nil {
			logs.Warn(errors.New("saving run record failed").
				WithTag("path", cmd.Record).
				Wrap(werr))
		}
	}
	if err != nil {
		return code, err
	}

	logs.WithTag("run", runID).
		WithTag("inserted", len(res.Inserted)).
		WithTag("rejected", len(res.Rejected)).
		WithTag("joins", res.Stats.Joins).
		Info("cycle finished")
	return exitOK, nil
}

// reportFailure prints the cycle failure, writes its snapshots and returns
// the matching exit code.
func (s settings) reportFailure(w io.Writer, runID, source string, res engine.CycleResult, rec *project.RunRecord) (int, error) {
	f := res.Failure
	if f == nil {
		return exitOK, nil
	}

	if f.Stage == engine.StageFinal {
		fmt.Fprintln(w, "failed to delete tiles")
		for _, t := range res.Final {
			fmt.Fprintf(w, "tile %s %s\n", t.Body, t.Rect)
		}
		return exitNotEmpty, errors.New("plane not empty after removing every tile").
			WithType(errTypeInvariant).
			WithTag("run", runID).
			WithTag("tiles", len(res.Final))
	}

	fmt.Fprintf(w, "failed to %s tile %s\n", f.Stage, f.Plan)
	for _, v := range f.Violations {
		fmt.Fprintf(w, "  %s\n", v)
	}
	files, err := s.writeSnapshots(runID, source, f)
	if err != nil {
		logs.Warn(err)
	}
	if rec.Failure != nil {
		rec.Failure.Files = files
	}
	return exitInvariant, errors.New("tiling broken").
		WithType(errTypeInvariant).
		WithTag("run", runID).
		WithTag("stage", string(f.Stage)).
		WithTag("plan", f.Plan.String()).
		WithTag("violations", len(f.Violations))
}

// writeSnapshots exports the planes around a failed step as before.* and
// after.* in the output directory.
func (s settings) writeSnapshots(runID, source string, f *engine.CycleFailure) ([]string, error) {
	dir := s.config.OutputDir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("creating output directory failed").
			WithType(errTypeExport).
			WithTag("dir", dir).
			Wrap(err)
	}

	var files []string
	for _, snap := range []struct {
		name string
		snap model.Snapshot
	}{
		{"before", f.Before},
		{"after", f.After},
	} {
		path := filepath.Join(dir, snap.name+export.Extension(s.config.ExportFormat))
		rep := export.Report{
			RunID:    runID,
			Title:    fmt.Sprintf("%s %s %s", snap.name, f.Stage, f.Plan),
			Source:   source,
			Snapshot: snap.snap,
			Margin:   s.config.BoundsMargin,
		}
		if err := export.Export(path, s.config.ExportFormat, rep); err != nil {
			return files, errors.New("writing snapshot failed").
				WithType(errTypeExport).
				WithTag("path", path).
				Wrap(err)
		}
		files = append(files, path)
		fmt.Fprintf(os.Stderr, "wrote %s\n", path)
	}
	return files, nil
}

// Parse prints the rectangles of a file.
type Parse struct {
	JSON     bool   `short:"j" desc:"Print the rectangles as JSON"`
	LogLevel string `name:"log-level" default:"info" desc:"Log level: debug, info, warning or error"`
	Input    string `index:"0" desc:"Rectangle file"`
}

func (cmd *Parse) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	return exit(cmd.execute(os.Stdout))
}

func (cmd *Parse) execute(w io.Writer) (int, error) {
	start := time.Now()
	setupLogging(cmd.LogLevel)

	rects, err := readRects(cmd.Input)
	metrics.InstrumentCommand("parse", start, err)
	if err != nil {
		return exitUsage, err
	}

	if cmd.JSON {
		data, err := json.MarshalIndent(rects, "", "  ")
		if err != nil {
			return exitUsage, err
		}
		fmt.Fprintln(w, string(data))
		return exitOK, nil
	}
	printRects(w, rects)
	return exitOK, nil
}

// Render tiles every rectangle and exports the result.
type Render struct {
	Out      string `short:"o" desc:"Output directory"`
	Format   string `short:"f" desc:"Output format: obj, dxf, pdf or xlsx"`
	Margin   int    `default:"-1" desc:"Padding around solids"`
	Labels   string `desc:"Also write QR tile labels to this PDF"`
	Metrics  string `desc:"Write Prometheus metrics to this textfile"`
	LogLevel string `name:"log-level" desc:"Log level: debug, info, warning or error"`
	Config   string `desc:"Config file, ~/.cento/config.json by default"`
	Input    string `index:"0" desc:"Rectangle file"`
}

func (cmd *Render) Run() error {
	if cmd.Input == "" {
		return argp.ShowUsage
	}
	return exit(cmd.execute(os.Stdout))
}

func (cmd *Render) execute(w io.Writer) (code int, err error) {
	start := time.Now()
	s, err := loadSettings(cmd.Config, overrides{
		Out:      cmd.Out,
		Format:   cmd.Format,
		Margin:   cmd.Margin,
		Metrics:  cmd.Metrics,
		LogLevel: cmd.LogLevel,
	})
	if err != nil {
		metrics.InstrumentCommand("render", start, err)
		return exitUsage, err
	}
	defer func() { s.finish("render", start, err) }()

	rects, err := readRects(cmd.Input)
	if err != nil {
		return exitUsage, err
	}
	s.remember(cmd.Input)

	p, rejected := engine.Build(rects)
	for _, rej := range rejected {
		printRejection(w, rej)
	}
	snap := p.Snapshot()
	metrics.InstrumentStats(p.Stats())
	metrics.InstrumentTiles(snap.CountSpace(), len(snap)-snap.CountSpace())

	if verr := p.Validate(); verr != nil {
		return exitInvariant, errors.New("tiling broken").
			WithType(errTypeInvariant).
			WithTag("file", cmd.Input).
			Wrap(verr)
	}

	rep := export.Report{
		RunID:    uuid.NewString(),
		Title:    filepath.Base(cmd.Input),
		Source:   cmd.Input,
		Snapshot: snap,
		Margin:   s.config.BoundsMargin,
	}
	if err := os.MkdirAll(s.config.OutputDir, 0755); err != nil {
		return exitUsage, errors.New("creating output directory failed").
			WithType(errTypeExport).
			Wrap(err)
	}
	stem := strings.TrimSuffix(filepath.Base(cmd.Input), filepath.Ext(cmd.Input))
	path := filepath.Join(s.config.OutputDir, stem+export.Extension(s.config.ExportFormat))
	if err := export.Export(path, s.config.ExportFormat, rep); err != nil {
		return exitUsage, errors.New("export failed").
			WithType(errTypeExport).
			WithTag("path", path).
			Wrap(err)
	}
	fmt.Fprintf(w, "wrote %s (%d tiles)\n", path, len(snap))

	if cmd.Labels != "" {
		if err := export.ExportLabels(cmd.Labels, rep); err != nil {
			return exitUsage, errors.New("label export failed").
				WithType(errTypeExport).
				WithTag("path", cmd.Labels).
				Wrap(err)
		}
		fmt.Fprintf(w, "wrote %s\n", cmd.Labels)
	}

	logs.WithTag("run", rep.RunID).
		WithTag("path", path).
		WithTag("tiles", len(snap)).
		Info("tiling rendered")
	return exitOK, nil
}

// readRects imports path, logging warnings. A file without rectangles is an
// error.
func readRects(path string) ([]model.Rect, error) {
	res := importer.ImportFile(path)
	for _, warning := range res.Warnings {
		logs.WithTag("file", path).Warn(warning)
	}
	if len(res.Errors) > 0 {
		return nil, errors.New("reading rectangles failed").
			WithType(errTypeParse).
			WithTag("file", path).
			WithTag("errors", res.Errors)
	}
	if len(res.Rects) == 0 {
		return nil, errors.Newf("%s contains no valid rectangles", path).
			WithType(errTypeParse)
	}
	return res.Rects, nil
}

func printRects(w io.Writer, rects []model.Rect) {
	fmt.Fprintf(w, "Rect count %d:\n", len(rects))
	for _, r := range rects {
		fmt.Fprintln(w, r)
	}
}

func printRejection(w io.Writer, rej engine.Rejection) {
	fmt.Fprintf(w, "failed to insert tile %s\n", rej.Plan)
	for _, o := range rej.Overlaps {
		fmt.Fprintf(w, "overlaps with tile %s %s\n", o.Body, o.Rect)
	}
}
