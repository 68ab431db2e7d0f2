// Package config provides caller-side, environment-driven defaults for the
// Monte Carlo simulator (SPEC_FULL.md §A.3). Nothing here is read by the
// three public entry points themselves — ComputeAll, RunMonteCarlo, and
// EvaluateScenario always take an explicit MonteCarloConfig/ScenarioParams
// argument. LoadConfig exists for a command-line or batch caller that wants
// its Monte Carlo defaults overridable by an .env file or the shell
// environment, the same LoadConfig/overrideWithEnv split the teacher's own
// config package uses.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/MeeraPatel2703/emissions/internal/montecarlo"
	"github.com/MeeraPatel2703/emissions/pkg/ghgtypes"
)

// MonteCarloDefaults mirrors ghgtypes.MonteCarloConfig with the documented
// defaults already applied.
type MonteCarloDefaults struct {
	Runs int
	Seed int64
	Bins int
}

// LoadConfig loads an optional .env file (silently ignored if absent, since
// it is a developer convenience, not a deployment requirement) and layers
// EMISSIONS_MC_RUNS, EMISSIONS_MC_SEED, and EMISSIONS_MC_BINS environment
// overrides on top of the package's documented Monte Carlo defaults.
func LoadConfig(envPath string) MonteCarloDefaults {
	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	defaults := MonteCarloDefaults{
		Runs: montecarlo.DefaultRuns,
		Seed: montecarlo.DefaultSeed,
		Bins: montecarlo.DefaultBins,
	}

	overrideWithEnv(&defaults)

	return defaults
}

func overrideWithEnv(d *MonteCarloDefaults) {
	if runs := os.Getenv("EMISSIONS_MC_RUNS"); runs != "" {
		if v, err := strconv.Atoi(runs); err == nil {
			d.Runs = v
		}
	}
	if seed := os.Getenv("EMISSIONS_MC_SEED"); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			d.Seed = v
		}
	}
	if bins := os.Getenv("EMISSIONS_MC_BINS"); bins != "" {
		if v, err := strconv.Atoi(bins); err == nil {
			d.Bins = v
		}
	}
}

// ToMonteCarloConfig converts the resolved defaults into a
// ghgtypes.MonteCarloConfig ready to pass to RunMonteCarlo.
func (d MonteCarloDefaults) ToMonteCarloConfig() ghgtypes.MonteCarloConfig {
	return ghgtypes.MonteCarloConfig{Runs: d.Runs, Seed: d.Seed, Bins: d.Bins}
}
