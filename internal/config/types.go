package config

// ChartConfiguration controls how report charts are rendered. Sizes are in
// inches.
type ChartConfiguration struct {
	DPI         int     `yaml:"dpi"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	PanelWidth  float64 `yaml:"panelWidth"`
	PanelHeight float64 `yaml:"panelHeight"`
	HTML        *bool   `yaml:"html,omitempty"`
	Charts      *bool   `yaml:"charts,omitempty"`
}

type Configuration struct {
	ChartConfiguration `yaml:",inline"`
	Requires           string             `yaml:"requires"`
	LightScaling       ChartConfiguration `yaml:"lightScaling"`
	NFLComparison      ChartConfiguration `yaml:"nflComparison"`
}
