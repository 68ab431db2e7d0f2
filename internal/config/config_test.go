package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MeeraPatel2703/emissions/internal/montecarlo"
)

func TestLoadConfig_DefaultsWhenNoEnvironmentOverridesSet(t *testing.T) {
	d := LoadConfig("/nonexistent/path/to/.env")

	assert.Equal(t, montecarlo.DefaultRuns, d.Runs)
	assert.Equal(t, int64(montecarlo.DefaultSeed), d.Seed)
	assert.Equal(t, montecarlo.DefaultBins, d.Bins)
}

func TestLoadConfig_EnvironmentOverridesWin(t *testing.T) {
	t.Setenv("EMISSIONS_MC_RUNS", "5000")
	t.Setenv("EMISSIONS_MC_SEED", "7")
	t.Setenv("EMISSIONS_MC_BINS", "25")

	d := LoadConfig("/nonexistent/path/to/.env")

	assert.Equal(t, 5000, d.Runs)
	assert.Equal(t, int64(7), d.Seed)
	assert.Equal(t, 25, d.Bins)
}

func TestLoadConfig_MalformedEnvironmentValueIsIgnored(t *testing.T) {
	t.Setenv("EMISSIONS_MC_RUNS", "not-a-number")

	d := LoadConfig("/nonexistent/path/to/.env")

	assert.Equal(t, montecarlo.DefaultRuns, d.Runs)
}

func TestToMonteCarloConfig_CarriesFieldsThrough(t *testing.T) {
	d := MonteCarloDefaults{Runs: 100, Seed: 1, Bins: 10}
	cfg := d.ToMonteCarloConfig()

	assert.Equal(t, 100, cfg.Runs)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Equal(t, 10, cfg.Bins)
}
