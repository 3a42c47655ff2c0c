package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/checkout-sim/checkout-sim/sim"
)

var (
	// CLI flags shared by the subcommands
	seed        int64   // Seed for random variate generation
	logLevel    string  // Log verbosity level
	serviceRate float64 // Customers the cashier serves per minute
	duration    float64 // Simulated minutes per run

	// CLI flags for `run`
	arrivalRate float64 // Customers arriving per minute

	// CLI flags for `sweep`
	arrivalRates []float64 // Arrival rates to sweep over
	numRuns      int       // Independent runs averaged per rate
	configPath   string    // Optional YAML experiment config
	plotPath     string    // Output PNG for the result charts
	noPlot       bool      // Skip chart rendering
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "checkout-sim",
	Short: "Discrete-event simulator for a single-server checkout line",
}

// runCmd executes one simulation and prints its summary
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a single checkout-line simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		summary, err := sim.RunSimulation(sim.Config{
			ArrivalRate: arrivalRate,
			ServiceRate: serviceRate,
			Duration:    duration,
			Seed:        seed,
		})
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		WriteSummary(os.Stdout, summary)
	},
}

// sweepCmd runs the full experiment: several runs per arrival rate, averaged,
// printed as a table and rendered as charts
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep arrival rates, averaging several runs per rate",
	Run: func(cmd *cobra.Command, args []string) {
		setUpLogging()

		exp := DefaultExperiment()
		if configPath != "" {
			loaded, err := LoadExperiment(configPath)
			if err != nil {
				logrus.Fatalf("unable to read experiment config: %v", err)
			}
			exp = loaded
		}
		// Flags the user set explicitly override the config file.
		if cmd.Flags().Changed("arrival-rates") {
			exp.ArrivalRates = arrivalRates
		}
		if cmd.Flags().Changed("service-rate") {
			exp.ServiceRate = serviceRate
		}
		if cmd.Flags().Changed("duration") {
			exp.Duration = duration
		}
		if cmd.Flags().Changed("runs") {
			exp.RunsPerRate = numRuns
		}
		if cmd.Flags().Changed("seed") {
			exp.Seed = seed
		}
		if cmd.Flags().Changed("plot") {
			exp.PlotPath = plotPath
		}

		logrus.Infof("sweeping %d arrival rates, %d runs each, duration %.0f min",
			len(exp.ArrivalRates), exp.RunsPerRate, exp.Duration)

		results, err := sim.RunMultipleSimulations(exp.ArrivalRates, exp.ServiceRate,
			exp.Duration, exp.RunsPerRate, exp.Seed)
		if err != nil {
			logrus.Fatalf("sweep failed: %v", err)
		}

		WriteTable(os.Stdout, results)
		if !noPlot {
			if err := PlotResults(results, exp.PlotPath); err != nil {
				logrus.Fatalf("unable to render charts: %v", err)
			}
			logrus.Infof("charts written to %s", exp.PlotPath)
		}
	},
}

func setUpLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	for _, c := range []*cobra.Command{runCmd, sweepCmd} {
		c.Flags().Int64Var(&seed, "seed", 42, "Seed for random variate generation")
		c.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
		c.Flags().Float64Var(&serviceRate, "service-rate", 1.0, "Customers the cashier serves per minute")
		c.Flags().Float64Var(&duration, "duration", 480, "Simulated minutes per run")
	}

	runCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 1.0, "Customers arriving per minute")

	sweepCmd.Flags().Float64SliceVar(&arrivalRates, "arrival-rates",
		[]float64{0.5, 0.7, 0.9, 1.0, 1.1, 1.3, 1.5}, "Arrival rates to sweep over")
	sweepCmd.Flags().IntVar(&numRuns, "runs", 5, "Independent runs averaged per arrival rate")
	sweepCmd.Flags().StringVar(&configPath, "config", "", "YAML experiment config (flags override)")
	sweepCmd.Flags().StringVar(&plotPath, "plot", "simulation_results.png", "Output PNG for result charts")
	sweepCmd.Flags().BoolVar(&noPlot, "no-plot", false, "Skip chart rendering")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
