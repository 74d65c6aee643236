package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/piwi3910/cento/internal/metrics"
	"github.com/piwi3910/cento/internal/model"
	"github.com/piwi3910/cento/internal/project"
	"github.com/segmentio/encoding/json"
)

// overrides are the command-line values that replace config file settings.
// Zero values leave the config untouched; a negative Margin means unset.
type overrides struct {
	Out      string
	Format   string
	Margin   int
	Metrics  string
	LogLevel string
}

// settings is the effective configuration of one command.
type settings struct {
	path   string
	stored model.AppConfig
	config model.AppConfig
}

func loadSettings(path string, o overrides) (settings, error) {
	if path == "" {
		path = project.DefaultConfigPath()
	}
	stored, err := project.LoadAppConfig(path)
	if err != nil {
		return settings{}, errors.New("loading config failed").
			WithType(errTypeConfig).
			WithTag("path", path).
			Wrap(err)
	}

	cfg := stored
	if o.Out != "" {
		cfg.OutputDir = o.Out
	}
	if o.Format != "" {
		cfg.ExportFormat = strings.ToLower(o.Format)
	}
	if o.Margin >= 0 {
		cfg.BoundsMargin = int32(o.Margin)
	}
	if o.Metrics != "" {
		cfg.MetricsFile = o.Metrics
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if !model.SupportedFormat(cfg.ExportFormat) {
		return settings{}, errors.Newf("unsupported export format %q", cfg.ExportFormat).
			WithType(errTypeConfig)
	}

	setupLogging(cfg.LogLevel)
	return settings{path: path, stored: stored, config: cfg}, nil
}

func setupLogging(level string) {
	logs.SetLevel(logs.ParseLevel(level))
	logs.Encoder = json.Marshal
	errors.Encoder = json.Marshal
}

// remember adds input to the stored config's recent inputs. Command-line
// overrides are not persisted.
func (s *settings) remember(input string) {
	if abs, err := filepath.Abs(input); err == nil {
		input = abs
	}
	s.stored.AddRecentInput(input)
	if err := project.SaveAppConfig(s.path, s.stored); err != nil {
		logs.Warn(errors.New("saving config failed").
			WithTag("path", s.path).
			Wrap(err))
	}
}

// finish records the command in the metrics and writes the textfile.
func (s settings) finish(command string, start time.Time, err error) {
	metrics.InstrumentCommand(command, start, err)
	if s.config.MetricsFile == "" {
		return
	}
	if werr := metrics.WriteTextfile(s.config.MetricsFile); werr != nil {
		logs.Warn(errors.New("writing metrics failed").
			WithTag("path", s.config.MetricsFile).
			Wrap(werr))
	}
}
