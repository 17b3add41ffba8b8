// Package config loads the pwscripts configuration from file,
// environment variables and command-line flags.
package config

import "fmt"

// Defaults applied before any config source is read. Picture scales
// match the proportions used throughout the original thesis figures.
const (
	DefaultXScale         = "0.65"
	DefaultYScale         = "0.4"
	DefaultSubfigureLeft  = "0.27"
	DefaultSubfigureRight = "0.63"
	DefaultOutputType     = "all"
	DefaultHistBuckets    = 100
)

// Config holds all settings of the command-line tools. Document-level
// config directives override these per input file.
type Config struct {
	// XScale and YScale are the tikzpicture scaling factors, emitted
	// verbatim into the picture options.
	XScale string `koanf:"xscale"`
	YScale string `koanf:"yscale"`

	// SubfigureLeft and SubfigureRight are the subfigure widths of the
	// side-by-side output, as fractions of the text width.
	SubfigureLeft  string `koanf:"subfigure_left"`
	SubfigureRight string `koanf:"subfigure_right"`

	// OutputType selects the render form: all, top, table, figure or
	// standalone.
	OutputType string `koanf:"type"`

	// HistBuckets is the bucket count of the histogram tools.
	HistBuckets int `koanf:"buckets"`

	Verbose bool `koanf:"verbose"`
}

// OutputTypes lists the accepted values of OutputType.
var OutputTypes = []string{"all", "top", "table", "figure", "standalone"}

// Validate checks choice fields against their accepted values.
func (c *Config) Validate() error {
	valid := false
	for _, t := range OutputTypes {
		if c.OutputType == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output type %q (expected one of: all, top, table, figure, standalone)", c.OutputType)
	}
	if c.HistBuckets < 1 {
		return fmt.Errorf("bucket count must be positive, got %d", c.HistBuckets)
	}
	return nil
}
