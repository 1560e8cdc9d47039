package mortality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := Default()

	assert.NoError(t, config.Validate())
	assert.Equal(t, []float64{10, 50, 90}, config.Analysis.Percentiles)
	assert.True(t, config.Analysis.Optimistic)
	assert.Equal(t, 100, config.Analysis.TerminalAge)
	assert.Equal(t, "age", config.Data.Columns.Age)
	assert.Equal(t, "dx", config.Data.Columns.Deaths)
}

func TestConfigYAMLOverridesDefaults(t *testing.T) {
	raw := `
data:
  path: ./deaths.csv
  columns: {age: Age Group, deaths: Deaths}
analysis:
  minAge: 30
  percentiles: [90, 10, 50]
  optimistic: false
chart:
  distribution: false
`
	config := Default()
	assert.NoError(t, yaml.Unmarshal([]byte(raw), &config))
	assert.NoError(t, config.Validate())

	assert.Equal(t, "./deaths.csv", config.Data.Path)
	assert.Equal(t, "Age Group", config.Data.Columns.Age)
	assert.Equal(t, 30, config.Analysis.MinAge)
	assert.False(t, config.Analysis.Optimistic)
	assert.False(t, config.Chart.Distribution)
	assert.Equal(t, 100, config.Analysis.TerminalAge, "absent fields keep their defaults")
	assert.Equal(t, []float64{10, 50, 90}, config.Analysis.Percentiles, "validation sorts percentiles")
}

func TestConfigValidate(t *testing.T) {
	config := Default()
	config.Analysis.Percentiles = []float64{110}
	assert.Error(t, config.Validate())

	config = Default()
	config.Analysis.Percentiles = nil
	assert.Error(t, config.Validate())

	config = Default()
	config.Analysis.MinAge = -1
	assert.Error(t, config.Validate())

	config = Default()
	config.Data.Path = ""
	assert.Error(t, config.Validate())

	config = Default()
	config.Chart.Out = ""
	assert.Error(t, config.Validate())
}
