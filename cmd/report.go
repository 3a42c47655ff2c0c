// Renders sweep results as a stdout table and as a 2x2 grid of charts
// (wait time, utilization, max queue length, avg queue length vs arrival
// rate) saved to a PNG.

package cmd

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	sim "github.com/checkout-sim/checkout-sim/sim"
)

// WriteSummary prints the metrics of a single simulation run.
func WriteSummary(w io.Writer, s sim.Summary) {
	fmt.Fprintln(w, "=== Simulation Summary ===")
	fmt.Fprintf(w, "Total Customers      : %d\n", s.TotalCustomers)
	fmt.Fprintf(w, "Average Waiting Time : %.3f min\n", s.AvgWait)
	fmt.Fprintf(w, "Cashier Utilization  : %.1f%%\n", s.Utilization*100)
	fmt.Fprintf(w, "Maximum Queue Length : %d\n", s.MaxQueueLen)
	fmt.Fprintf(w, "Average Queue Length : %.3f\n", s.AvgQueueLen)
}

// WriteTable prints one row of averaged metrics per arrival rate.
func WriteTable(w io.Writer, results []sim.RateSummary) {
	fmt.Fprintf(w, "%12s %12s %10s %12s %10s %10s %11s\n",
		"arrival_rate", "service_rate", "avg_wait", "utilization",
		"max_queue", "avg_queue", "customers")
	for _, r := range results {
		fmt.Fprintf(w, "%12.2f %12.2f %10.3f %12.3f %10.1f %10.3f %11.1f\n",
			r.ArrivalRate, r.ServiceRate, r.AvgWait, r.Utilization,
			r.MaxQueueLen, r.AvgQueueLen, r.TotalCustomers)
	}
}

// chartPanel describes one of the four metric-vs-arrival-rate charts.
type chartPanel struct {
	title  string
	yLabel string
	value  func(sim.RateSummary) float64
}

var chartPanels = []chartPanel{
	{"Average Waiting Time vs Arrival Rate", "Average Waiting Time (min)",
		func(r sim.RateSummary) float64 { return r.AvgWait }},
	{"Cashier Utilization vs Arrival Rate", "Cashier Utilization (%)",
		func(r sim.RateSummary) float64 { return r.Utilization * 100 }},
	{"Maximum Queue Length vs Arrival Rate", "Maximum Queue Length",
		func(r sim.RateSummary) float64 { return r.MaxQueueLen }},
	{"Average Queue Length vs Arrival Rate", "Average Queue Length",
		func(r sim.RateSummary) float64 { return r.AvgQueueLen }},
}

// PlotResults renders the four metric charts in a 2x2 grid and writes the
// composite PNG to path.
func PlotResults(results []sim.RateSummary, path string) error {
	const rows, cols = 2, 2

	plots := make([][]*plot.Plot, rows)
	for row := 0; row < rows; row++ {
		plots[row] = make([]*plot.Plot, cols)
		for col := 0; col < cols; col++ {
			panel := chartPanels[row*cols+col]
			p, err := panelPlot(results, row*cols+col, panel)
			if err != nil {
				return fmt.Errorf("building %q chart: %w", panel.title, err)
			}
			plots[row][col] = p
		}
	}

	img := vgimg.New(12*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: rows, Cols: cols,
		PadX: vg.Millimeter * 4, PadY: vg.Millimeter * 4,
		PadTop: vg.Millimeter * 2, PadBottom: vg.Millimeter * 2,
		PadLeft: vg.Millimeter * 2, PadRight: vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			plots[row][col].Draw(canvases[row][col])
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("writing chart file: %w", err)
	}
	return nil
}

func panelPlot(results []sim.RateSummary, idx int, panel chartPanel) (*plot.Plot, error) {
	pts := make(plotter.XYs, len(results))
	for i, r := range results {
		pts[i].X = r.ArrivalRate
		pts[i].Y = panel.value(r)
	}

	p := plot.New()
	p.Title.Text = panel.title
	p.X.Label.Text = "Arrival Rate (customers/min)"
	p.Y.Label.Text = panel.yLabel
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(idx)
	points.Color = plotutil.Color(idx)
	points.Shape = draw.CircleGlyph{}
	p.Add(line, points)

	return p, nil
}
