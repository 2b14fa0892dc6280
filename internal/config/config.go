package config

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/blang/semver/v4"
	"gopkg.in/yaml.v2"
)

// Version is the tool version checked against the "requires" key. It is
// overridden at build time with -ldflags "-X ...config.Version=x.y.z".
var Version = "1.0.0"

var (
	// LightScalingDefaults matches a 10x6 inch figure at 150 dpi, with a 14x10
	// inch combined panel.
	LightScalingDefaults = ChartConfiguration{
		DPI:         150,
		Width:       10,
		Height:      6,
		PanelWidth:  14,
		PanelHeight: 10,
		HTML:        boolPtr(false),
		Charts:      boolPtr(true),
	}
	NFLComparisonDefaults = ChartConfiguration{
		DPI:         300,
		Width:       14,
		Height:      10,
		PanelWidth:  14,
		PanelHeight: 10,
		HTML:        boolPtr(false),
		Charts:      boolPtr(true),
	}
)

func boolPtr(b bool) *bool {
	return &b
}

// Load reads a YAML configuration file. An empty path yields an empty
// configuration so that only built-in defaults apply.
func Load(path string) (*Configuration, error) {
	c := &Configuration{}
	if path == "" {
		return c, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, fmt.Errorf("unable to parse configuration '%s': %w", path, err)
	}
	if !versionRequired(c.Requires, Version) {
		return nil, fmt.Errorf("configuration requires version '%s', running %s", c.Requires, Version)
	}
	return c, nil
}

// LightScalingConfig returns the light-scaling section with the top-level
// section and the built-in defaults applied.
func (c *Configuration) LightScalingConfig() ChartConfiguration {
	cfg := c.LightScaling
	cfg.applyDefaults(&c.ChartConfiguration).applyDefaults(&LightScalingDefaults)
	return cfg
}

func (c *Configuration) NFLComparisonConfig() ChartConfiguration {
	cfg := c.NFLComparison
	cfg.applyDefaults(&c.ChartConfiguration).applyDefaults(&NFLComparisonDefaults)
	return cfg
}

func (c *ChartConfiguration) applyDefaults(d *ChartConfiguration) *ChartConfiguration {
	if c.DPI == 0 {
		c.DPI = d.DPI
	}
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.PanelWidth == 0 {
		c.PanelWidth = d.PanelWidth
	}
	if c.PanelHeight == 0 {
		c.PanelHeight = d.PanelHeight
	}
	if c.HTML == nil {
		c.HTML = d.HTML
	}
	if c.Charts == nil {
		c.Charts = d.Charts
	}
	return c
}

// WantHTML and WantCharts treat an unset flag as false.
func (c *ChartConfiguration) WantHTML() bool {
	return c.HTML != nil && *c.HTML
}

func (c *ChartConfiguration) WantCharts() bool {
	return c.Charts != nil && *c.Charts
}

// Override forces HTML output or disables charts when the matching command
// line flag was given.
func (c *ChartConfiguration) Override(html, noCharts bool) {
	if html {
		c.HTML = boolPtr(true)
	}
	if noCharts {
		c.Charts = boolPtr(false)
	}
}

func versionRequired(requirement, version string) bool {
	if requirement == "" {
		return true
	}
	r, err := semver.ParseRange(strings.ReplaceAll(requirement, "v", ""))
	if err != nil {
		return false
	}
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return false
	}
	return r(v)
}
