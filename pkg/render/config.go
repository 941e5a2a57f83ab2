// Package render turns a parsed query-plan tree into a fully positioned
// diagram document: one rectangle per stage, text labels for operator names
// and properties, arrows for the data flow between stages, and auxiliary
// shapes for special stages such as hash-build structures.
//
// Generation is a single synchronous depth-first pass. Each operator family
// has its own generator strategy; all strategies share the same resolved
// [Config] and append into one [Context].
package render

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/planviz/planviz/pkg/errors"
)

// Config holds the visual knobs every generator strategy consumes. There
// are no per-operator overrides beyond what plan properties encode.
type Config struct {
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	VSpacing   float64 `toml:"v_spacing"`
	HSpacing   float64 `toml:"h_spacing"`

	FontSize       float64 `toml:"font_size"`        // column labels, ellipsis markers
	LabelFontSize  float64 `toml:"label_font_size"`  // operator name
	DetailFontSize float64 `toml:"detail_font_size"` // property detail lines

	NodeStroke  string `toml:"node_stroke"`
	ArrowStroke string `toml:"arrow_stroke"`
}

// DefaultConfig returns the default diagram configuration.
func DefaultConfig() Config {
	return Config{
		NodeWidth:      180,
		NodeHeight:     78,
		VSpacing:       96,
		HSpacing:       64,
		FontSize:       14,
		LabelFontSize:  18,
		DetailFontSize: 12,
		NodeStroke:     "#1e1e1e",
		ArrowStroke:    "#1e1e1e",
	}
}

// ApplyDefaults fills any zero-valued field from DefaultConfig.
func (c *Config) ApplyDefaults() {
	def := DefaultConfig()
	if c.NodeWidth <= 0 {
		c.NodeWidth = def.NodeWidth
	}
	if c.NodeHeight <= 0 {
		c.NodeHeight = def.NodeHeight
	}
	if c.VSpacing <= 0 {
		c.VSpacing = def.VSpacing
	}
	if c.HSpacing <= 0 {
		c.HSpacing = def.HSpacing
	}
	if c.FontSize <= 0 {
		c.FontSize = def.FontSize
	}
	if c.LabelFontSize <= 0 {
		c.LabelFontSize = def.LabelFontSize
	}
	if c.DetailFontSize <= 0 {
		c.DetailFontSize = def.DetailFontSize
	}
	if c.NodeStroke == "" {
		c.NodeStroke = def.NodeStroke
	}
	if c.ArrowStroke == "" {
		c.ArrowStroke = def.ArrowStroke
	}
}

// LoadConfig reads a TOML config file and fills unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	var c Config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return c, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file %s", path)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config file %s", path)
	}
	c.ApplyDefaults()
	return c, nil
}
