package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSimulation_Validation(t *testing.T) {
	// Non-positive duration
	_, err := RunSimulation(Config{ArrivalRate: 1, ServiceRate: 1, Duration: 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	// Negative arrival rate (zero is allowed, negative is not)
	_, err = RunSimulation(Config{ArrivalRate: -1, ServiceRate: 1, Duration: 480})
	assert.ErrorIs(t, err, ErrInvalidRate)

	// Non-positive service rate
	_, err = RunSimulation(Config{ArrivalRate: 1, ServiceRate: 0, Duration: 480})
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestRunSimulation_BalancedLine(t *testing.T) {
	// Arrival and service both at one customer per minute over an
	// eight-hour day.
	got, err := RunSimulation(Config{ArrivalRate: 1.0, ServiceRate: 1.0, Duration: 480, Seed: 42})
	require.NoError(t, err)

	assert.Greater(t, got.TotalCustomers, 0)
	assert.GreaterOrEqual(t, got.Utilization, 0.0)
	assert.LessOrEqual(t, got.Utilization, 1.0)
	assert.GreaterOrEqual(t, got.AvgWait, 0.0)
	assert.GreaterOrEqual(t, got.MaxQueueLen, 0)
	assert.GreaterOrEqual(t, got.AvgQueueLen, 0.0)
}

func TestRunSimulation_NoArrivals_AllZero(t *testing.T) {
	// Arrival rate zero is the explicit no-customers policy, not an error.
	got, err := RunSimulation(Config{ArrivalRate: 0, ServiceRate: 1.0, Duration: 480, Seed: 42})
	require.NoError(t, err)

	assert.Equal(t, 0, got.TotalCustomers)
	assert.Zero(t, got.AvgWait)
	assert.Zero(t, got.Utilization)
	assert.Zero(t, got.MaxQueueLen)
	assert.Zero(t, got.AvgQueueLen)
}

func TestRunSimulation_OverloadedLine(t *testing.T) {
	// Five arrivals per minute against one service per minute: the queue
	// must build and customers must wait.
	got, err := RunSimulation(Config{ArrivalRate: 5.0, ServiceRate: 1.0, Duration: 480, Seed: 42})
	require.NoError(t, err)

	assert.Greater(t, got.AvgWait, 0.0)
	assert.Greater(t, got.MaxQueueLen, 1)
	assert.LessOrEqual(t, got.Utilization, 1.0)
}

func TestRunSimulation_NearStalledServer(t *testing.T) {
	// A cashier serving 0.001 customers per minute is busy essentially the
	// whole day while the queue grows unbounded.
	got, err := RunSimulation(Config{ArrivalRate: 1.0, ServiceRate: 0.001, Duration: 480, Seed: 42})
	require.NoError(t, err)

	assert.Greater(t, got.MaxQueueLen, 10)
	assert.Greater(t, got.Utilization, 0.9)
	assert.LessOrEqual(t, got.Utilization, 1.0)
}

func TestRunSimulation_UtilizationBounds_AcrossSeedsAndRates(t *testing.T) {
	// Busy time can never exceed elapsed time, whatever the load. Durations
	// off the 0.1 monitor grid matter: there the clock can stop short of the
	// horizon while busy credit extends to it.
	for _, duration := range []float64{120, 0.15, 480.05} {
		for _, rate := range []float64{0, 0.5, 1.0, 2.0, 10.0} {
			for seed := int64(0); seed < 5; seed++ {
				got, err := RunSimulation(Config{ArrivalRate: rate, ServiceRate: 1.0, Duration: duration, Seed: seed})
				require.NoError(t, err)
				assert.GreaterOrEqual(t, got.Utilization, 0.0, "duration %g rate %g seed %d", duration, rate, seed)
				assert.LessOrEqual(t, got.Utilization, 1.0, "duration %g rate %g seed %d", duration, rate, seed)
			}
		}
	}
}

func TestRunSimulation_SameSeed_BitIdenticalSummaries(t *testing.T) {
	cfg := Config{ArrivalRate: 1.2, ServiceRate: 1.0, Duration: 480, Seed: 7}

	a, err := RunSimulation(cfg)
	require.NoError(t, err)
	b, err := RunSimulation(cfg)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRunSimulation_DifferentSeeds_DifferentRuns(t *testing.T) {
	a, err := RunSimulation(Config{ArrivalRate: 1.0, ServiceRate: 1.0, Duration: 480, Seed: 1})
	require.NoError(t, err)
	b, err := RunSimulation(Config{ArrivalRate: 1.0, ServiceRate: 1.0, Duration: 480, Seed: 2})
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "different seeds produced identical summaries")
}

func TestRunMultipleSimulations_PreservesRateOrder(t *testing.T) {
	rates := []float64{1.5, 0.5, 1.0}

	got, err := RunMultipleSimulations(rates, 1.0, 120, 2, 42)
	require.NoError(t, err)
	require.Len(t, got, len(rates))

	for i, r := range rates {
		assert.Equal(t, r, got[i].ArrivalRate)
		assert.Equal(t, 1.0, got[i].ServiceRate)
	}
}

func TestRunMultipleSimulations_LoadMonotonicity(t *testing.T) {
	// In expectation, more load means longer waits and longer queues. The
	// rates are far enough apart that averaged seeded runs preserve the
	// ordering.
	got, err := RunMultipleSimulations([]float64{0.3, 5.0}, 1.0, 480, 3, 42)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Less(t, got[0].AvgWait, got[1].AvgWait)
	assert.Less(t, got[0].MaxQueueLen, got[1].MaxQueueLen)
}

func TestRunMultipleSimulations_Reproducible(t *testing.T) {
	rates := []float64{0.5, 1.0}

	a, err := RunMultipleSimulations(rates, 1.0, 240, 3, 42)
	require.NoError(t, err)
	b, err := RunMultipleSimulations(rates, 1.0, 240, 3, 42)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRunMultipleSimulations_InvalidParams_AbortBatch(t *testing.T) {
	// A bad service rate fails the whole batch immediately; there are no
	// partial results.
	got, err := RunMultipleSimulations([]float64{0.5, 1.0}, 0, 480, 3, 42)
	assert.ErrorIs(t, err, ErrInvalidRate)
	assert.Nil(t, got)

	got, err = RunMultipleSimulations([]float64{0.5}, 1.0, 480, 0, 42)
	assert.ErrorIs(t, err, ErrInvalidRunCount)
	assert.Nil(t, got)
}
