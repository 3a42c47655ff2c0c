package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Experiment describes one full sweep: the arrival rates to visit, the fixed
// service parameters, and how many runs to average per rate.
type Experiment struct {
	ArrivalRates []float64 `yaml:"arrival_rates"`
	ServiceRate  float64   `yaml:"service_rate"`
	Duration     float64   `yaml:"duration_minutes"`
	RunsPerRate  int       `yaml:"runs_per_rate"`
	Seed         int64     `yaml:"seed"`
	PlotPath     string    `yaml:"plot_path"`
}

// DefaultExperiment returns the stock eight-hour-day experiment: a cashier
// serving one customer a minute, swept from a half-loaded to an overloaded
// line.
func DefaultExperiment() Experiment {
	return Experiment{
		ArrivalRates: []float64{0.5, 0.7, 0.9, 1.0, 1.1, 1.3, 1.5},
		ServiceRate:  1.0,
		Duration:     480,
		RunsPerRate:  5,
		Seed:         42,
		PlotPath:     "simulation_results.png",
	}
}

// LoadExperiment reads an Experiment from a YAML file. Fields absent from the
// file keep their DefaultExperiment values.
func LoadExperiment(path string) (Experiment, error) {
	exp := DefaultExperiment()

	data, err := os.ReadFile(path)
	if err != nil {
		return exp, fmt.Errorf("reading experiment config: %w", err)
	}
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return exp, fmt.Errorf("parsing experiment config: %w", err)
	}

	if len(exp.ArrivalRates) == 0 {
		return exp, fmt.Errorf("experiment config %s lists no arrival rates", path)
	}
	if exp.RunsPerRate <= 0 {
		return exp, fmt.Errorf("runs_per_rate must be positive, got %d", exp.RunsPerRate)
	}
	return exp, nil
}
