// sim/simulation.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// ErrInvalidDuration reports a non-positive simulation duration.
var ErrInvalidDuration = errors.New("invalid duration")

// ErrInvalidRunCount reports a non-positive number of runs per rate.
var ErrInvalidRunCount = errors.New("invalid run count")

// Config holds the parameters of a single simulation run.
type Config struct {
	ArrivalRate float64 // customers per minute; 0 means no customers ever arrive
	ServiceRate float64 // customers per minute; must be positive
	Duration    float64 // simulated minutes; must be positive

	// Variates overrides the random source. When nil a fresh exponential
	// source seeded with Seed is used.
	Variates VariateSource
	Seed     int64
}

func (cfg *Config) validate() error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidDuration, cfg.Duration)
	}
	if cfg.ArrivalRate < 0 {
		return fmt.Errorf("%w: arrival rate must be non-negative, got %f", ErrInvalidRate, cfg.ArrivalRate)
	}
	if cfg.ServiceRate <= 0 {
		return fmt.Errorf("%w: service rate must be positive, got %f", ErrInvalidRate, cfg.ServiceRate)
	}
	return nil
}

// RunSimulation runs one checkout-line simulation from t=0 to cfg.Duration
// and returns its Summary. Every run builds an entirely independent
// scheduler, resource, and collector; repeated runs share nothing.
func RunSimulation(cfg Config) (Summary, error) {
	if err := cfg.validate(); err != nil {
		return Summary{}, err
	}
	variates := cfg.Variates
	if variates == nil {
		variates = NewExpSource(cfg.Seed)
	}

	sched := NewScheduler()
	stats := NewCollector()
	checkout := NewCheckout(sched, NewResource(sched), stats, variates,
		cfg.ArrivalRate, cfg.ServiceRate, cfg.Duration)

	checkout.Start()
	sched.RunUntil(cfg.Duration)
	if err := checkout.Err(); err != nil {
		return Summary{}, err
	}

	summary := stats.Summarize(sched.Now(), cfg.Duration)
	logrus.Debugf("run finished at t=%.3f: %d customers, utilization %.3f",
		sched.Now(), summary.TotalCustomers, summary.Utilization)
	return summary, nil
}

// RateSummary is the arithmetic average of several runs at one arrival rate.
// MaxQueueLen and TotalCustomers become fractional under averaging.
type RateSummary struct {
	ArrivalRate    float64
	ServiceRate    float64
	AvgWait        float64
	Utilization    float64
	MaxQueueLen    float64
	AvgQueueLen    float64
	TotalCustomers float64
}

// RunMultipleSimulations runs numRuns independent simulations for each
// arrival rate and averages every summary field. The result preserves the
// order of arrivalRates. Each run draws from its own source seeded
// deterministically from seed, so the whole batch is reproducible. The first
// failing run aborts the batch: an invalid parameter set is a validation
// problem, not a transient fault.
func RunMultipleSimulations(arrivalRates []float64, serviceRate, duration float64, numRuns int, seed int64) ([]RateSummary, error) {
	if numRuns <= 0 {
		return nil, fmt.Errorf("%w: number of runs must be positive, got %d", ErrInvalidRunCount, numRuns)
	}

	results := make([]RateSummary, 0, len(arrivalRates))
	for _, rate := range arrivalRates {
		avgWait := make([]float64, numRuns)
		utilization := make([]float64, numRuns)
		maxQueueLen := make([]float64, numRuns)
		avgQueueLen := make([]float64, numRuns)
		totalCustomers := make([]float64, numRuns)

		for run := 0; run < numRuns; run++ {
			summary, err := RunSimulation(Config{
				ArrivalRate: rate,
				ServiceRate: serviceRate,
				Duration:    duration,
				Seed:        DeriveSeed(seed, fmt.Sprintf("rate_%g_run_%d", rate, run)),
			})
			if err != nil {
				return nil, fmt.Errorf("arrival rate %g, run %d: %w", rate, run, err)
			}
			avgWait[run] = summary.AvgWait
			utilization[run] = summary.Utilization
			maxQueueLen[run] = float64(summary.MaxQueueLen)
			avgQueueLen[run] = summary.AvgQueueLen
			totalCustomers[run] = float64(summary.TotalCustomers)
		}

		results = append(results, RateSummary{
			ArrivalRate:    rate,
			ServiceRate:    serviceRate,
			AvgWait:        stat.Mean(avgWait, nil),
			Utilization:    stat.Mean(utilization, nil),
			MaxQueueLen:    stat.Mean(maxQueueLen, nil),
			AvgQueueLen:    stat.Mean(avgQueueLen, nil),
			TotalCustomers: stat.Mean(totalCustomers, nil),
		})
		logrus.Infof("arrival rate %g: averaged %d runs", rate, numRuns)
	}
	return results, nil
}
