// Package plotting renders a solve's convergence curve to PNG, adapted from
// mathrgo's psokit ResultsArray/NewPlot (gonum.org/v1/plot +
// plotter + vg): one line series of best-fitness-so-far against generation,
// with a log-scaled Y axis since fitness commonly spans several orders of
// magnitude as a run converges.
package plotting

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ConvergenceCurve renders one (generation, bestFitness) trace to filename
// as a PNG. The trace must be in generation order and non-empty.
func ConvergenceCurve(filename string, generations []int, bestFitness []float64) error {
	if len(generations) != len(bestFitness) {
		return fmt.Errorf("plotting: generations and bestFitness have different lengths (%d vs %d)", len(generations), len(bestFitness))
	}
	if len(generations) == 0 {
		return fmt.Errorf("plotting: empty trace")
	}

	p := plot.New()
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(generations))
	for i := range generations {
		pts[i].X = float64(generations[i])
		pts[i].Y = bestFitness[i]
	}
	line, _, err := plotter.NewLinePoints(pts)
	if err != nil {
		return err
	}
	p.Add(line)

	p.Title.Text = "Convergence"
	p.X.Label.Text = "generation"
	p.Y.Label.Text = "best fitness"

	// A log axis only works while every fitness value is strictly positive;
	// a converged run bottoms out at 0 and must stay on a linear axis.
	logY := true
	for _, f := range bestFitness {
		if f <= 0 {
			logY = false
			break
		}
	}
	if logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
