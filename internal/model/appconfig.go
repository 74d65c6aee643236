package model

// AppConfig holds application-wide preferences and defaults for the CLI.
type AppConfig struct {
	// Output defaults applied to run and render commands
	OutputDir    string `json:"output_dir"`
	ExportFormat string `json:"export_format"` // "obj", "dxf", "pdf", "xlsx"
	BoundsMargin int32  `json:"bounds_margin"` // padding around solids in debug exports

	// Runtime preferences
	LogLevel     string   `json:"log_level"` // "debug", "info", "warning", "error"
	MetricsFile  string   `json:"metrics_file"`
	ValidateEach bool     `json:"validate_each"` // validate after every mutation
	RecentInputs []string `json:"recent_inputs"`
}

// Export formats understood by the CLI.
const (
	FormatOBJ  = "obj"
	FormatDXF  = "dxf"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

// MaxRecentInputs bounds AppConfig.RecentInputs.
const MaxRecentInputs = 10

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		OutputDir:    ".",
		ExportFormat: FormatOBJ,
		BoundsMargin: 100,
		LogLevel:     "info",
		ValidateEach: true,
		RecentInputs: []string{},
	}
}

// AddRecentInput moves path to the front of RecentInputs, dropping duplicates
// and trimming the list to MaxRecentInputs.
func (c *AppConfig) AddRecentInput(path string) {
	recent := []string{path}
	for _, p := range c.RecentInputs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > MaxRecentInputs {
		recent = recent[:MaxRecentInputs]
	}
	c.RecentInputs = recent
}

// SupportedFormat reports whether f names an export format.
func SupportedFormat(f string) bool {
	switch f {
	case FormatOBJ, FormatDXF, FormatPDF, FormatXLSX:
		return true
	}
	return false
}
