package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCompare(t *testing.T) {
	testCases := []struct {
		versionRequirement string
		version            string
		expectResult       bool
	}{
		{
			versionRequirement: ">=1.9.0",
			version:            "1.10.0",
			expectResult:       true,
		},
		{
			versionRequirement: ">=1.3.0",
			version:            "1.3.0",
			expectResult:       true,
		},
		{
			versionRequirement: ">=1.3.0",
			version:            "1.2.0",
			expectResult:       false,
		},
		{
			versionRequirement: ">v1.3.0",
			version:            "v1.4.0",
			expectResult:       true,
		},
		{
			versionRequirement: ">1.3.0",
			version:            "v1.3.0",
			expectResult:       false,
		},
		{
			versionRequirement: "1.3.0",
			version:            "1.3.0",
			expectResult:       true,
		},
		{
			versionRequirement: "",
			version:            "1.3.0",
			expectResult:       true,
		},
	}
	for _, tCase := range testCases {
		assert.Equal(t, tCase.expectResult, versionRequired(tCase.versionRequirement, tCase.version), "version check result not match")
	}
}

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	ls := c.LightScalingConfig()
	assert.Equal(t, 150, ls.DPI)
	assert.Equal(t, 10.0, ls.Width)
	assert.True(t, ls.WantCharts())
	assert.False(t, ls.WantHTML())

	nfl := c.NFLComparisonConfig()
	assert.Equal(t, 300, nfl.DPI)
	assert.Equal(t, 14.0, nfl.Width)
}

func TestLoadLayeredDefaults(t *testing.T) {
	path := writeConfig(t, `
dpi: 72
html: true
lightScaling:
  dpi: 96
  width: 8
nflComparison:
  charts: false
`)
	c, err := Load(path)
	require.NoError(t, err)

	ls := c.LightScalingConfig()
	assert.Equal(t, 96, ls.DPI)
	assert.Equal(t, 8.0, ls.Width)
	assert.Equal(t, 6.0, ls.Height)
	assert.True(t, ls.WantHTML())

	nfl := c.NFLComparisonConfig()
	assert.Equal(t, 72, nfl.DPI)
	assert.False(t, nfl.WantCharts())
	assert.True(t, nfl.WantHTML())
}

func TestLoadRejectsVersion(t *testing.T) {
	path := writeConfig(t, "requires: \">=99.0.0\"\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, "colour: red\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestOverride(t *testing.T) {
	cfg := LightScalingDefaults
	cfg.Override(true, true)
	assert.True(t, cfg.WantHTML())
	assert.False(t, cfg.WantCharts())
	assert.True(t, LightScalingDefaults.WantCharts())
}
