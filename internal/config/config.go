// Package config declares the closed set of tags that shape a report: which
// categories form the rows, which implementations form the columns and which
// measurement types get a chart. Defaults mirror the harness layout; a YAML
// file may override any of them.
package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/benchplot/internal/ir"
)

// Supported image formats.
const (
	ImagePNG  = "png"
	ImageJPEG = "jpg"
	ImageSVG  = "svg"
	ImageHTML = "html"
)

// ValidImages lists the accepted values of Config.Image.
var ValidImages = []string{ImagePNG, ImageJPEG, ImageSVG, ImageHTML}

// Config is the declared shape of a report.
type Config struct {
	// Marker is the directory-name prefix selecting relevant result directories.
	Marker string `yaml:"marker"`

	// ResultFile is the slash-separated path of the estimates document inside
	// each result directory.
	ResultFile string `yaml:"result_file"`

	// Statistic is the dotted key path of the value to chart.
	Statistic string `yaml:"statistic"`

	// OutputDir receives one image per measurement type.
	OutputDir string `yaml:"output_dir"`

	// Image is the output format: png, jpg, svg or html.
	Image string `yaml:"image"`

	// Categories are the grid rows, in display order.
	Categories []string `yaml:"categories"`

	// Implementations are the grid columns, in display order.
	Implementations []string `yaml:"implementations"`

	// MeasurementTypes are the charts to produce, in output order.
	MeasurementTypes []string `yaml:"measurement_types"`

	Chart Chart `yaml:"chart"`
}

// Chart holds presentation settings for the rendered image.
type Chart struct {
	// Width and Height are in inches.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	DPI    int     `yaml:"dpi"`

	YLabel  string `yaml:"y_label"`
	Palette string `yaml:"palette"`

	// BarFill is the fraction of a category slot covered by its bar group.
	BarFill float64 `yaml:"bar_fill"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Marker:           "cmp",
		ResultFile:       "new/estimates.json",
		Statistic:        "median.point_estimate",
		OutputDir:        "plots",
		Image:            ImagePNG,
		Categories:       []string{"simple", "var", "var&fn", "complex"},
		Implementations:  []string{"fee", "fasteval", "meval", "evalexpr"},
		MeasurementTypes: []string{"parse", "eval"},
		Chart: Chart{
			Width:   14,
			Height:  6,
			DPI:     150,
			YLabel:  "Median (ns)",
			Palette: "Paired",
			BarFill: 0.8,
		},
	}
}

// Load reads a YAML file and layers it over Default.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if len(bytes.TrimSpace(data)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true) // Reject unknown fields
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// normalize NFC-normalises every tag so that comparisons with parsed
// directory names are byte-exact.
func (c *Config) normalize() {
	c.Marker = ir.NormalizeTag(c.Marker)
	c.Image = strings.ToLower(strings.TrimSpace(c.Image))
	for _, list := range [][]string{c.Categories, c.Implementations, c.MeasurementTypes} {
		for i := range list {
			list[i] = ir.NormalizeTag(list[i])
		}
	}
}

var statisticPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Validate checks that the declared tags can form a grid and that every tag
// can appear in a `<marker>_<type>_<impl>_<category>` directory name.
func (c *Config) Validate() error {
	if err := validateTag("marker", c.Marker); err != nil {
		return err
	}
	if c.ResultFile == "" {
		return fmt.Errorf("result_file is required")
	}
	if strings.HasPrefix(c.ResultFile, "/") || slices.Contains(strings.Split(c.ResultFile, "/"), "..") {
		return fmt.Errorf("result_file must be a relative path inside the result directory: %q", c.ResultFile)
	}
	if !statisticPattern.MatchString(c.Statistic) {
		return fmt.Errorf("statistic must be a dotted key path, got %q", c.Statistic)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if !slices.Contains(ValidImages, c.Image) {
		return fmt.Errorf("image %q: must be one of %v", c.Image, ValidImages)
	}

	lists := []struct {
		field string
		tags  []string
	}{
		{"categories", c.Categories},
		{"implementations", c.Implementations},
		{"measurement_types", c.MeasurementTypes},
	}
	for _, l := range lists {
		if len(l.tags) == 0 {
			return fmt.Errorf("%s list is required and must be non-empty", l.field)
		}
		seen := make(map[string]bool, len(l.tags))
		for i, tag := range l.tags {
			if err := validateTag(fmt.Sprintf("%s[%d]", l.field, i), tag); err != nil {
				return err
			}
			if seen[tag] {
				return fmt.Errorf("%s[%d]: duplicate tag %q", l.field, i, tag)
			}
			seen[tag] = true
		}
	}

	return c.Chart.validate()
}

func (ch Chart) validate() error {
	if ch.Width <= 0 || ch.Height <= 0 {
		return fmt.Errorf("chart: width and height must be positive")
	}
	if ch.DPI <= 0 {
		return fmt.Errorf("chart: dpi must be positive")
	}
	if ch.BarFill <= 0 || ch.BarFill > 1 {
		return fmt.Errorf("chart: bar_fill must be in (0, 1], got %v", ch.BarFill)
	}
	if ch.Palette == "" {
		return fmt.Errorf("chart: palette is required")
	}
	return nil
}

// validateTag rejects tags that would break the directory name grammar.
func validateTag(field, tag string) error {
	if tag == "" {
		return fmt.Errorf("%s: tag must not be empty", field)
	}
	if strings.Contains(tag, "_") {
		return fmt.Errorf("%s: tag %q must not contain '_'", field, tag)
	}
	if strings.ContainsAny(tag, `/\`) {
		return fmt.Errorf("%s: tag %q must not contain a path separator", field, tag)
	}
	return nil
}

// OutputName returns the chart file name for a measurement type.
func (c *Config) OutputName(measurementType string) string {
	return fmt.Sprintf("%s_%s_bench.%s", c.Marker, measurementType, c.Image)
}

// HasCategory, HasImplementation and HasMeasurementType report membership in
// the declared lists.
func (c *Config) HasCategory(tag string) bool { return slices.Contains(c.Categories, tag) }

func (c *Config) HasImplementation(tag string) bool {
	return slices.Contains(c.Implementations, tag)
}

func (c *Config) HasMeasurementType(tag string) bool {
	return slices.Contains(c.MeasurementTypes, tag)
}
