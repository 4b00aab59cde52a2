package viz

import (
	"fmt"
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/perturb/internal/sweep"
)

type PlotOptions struct {
	Width, Height int
	Caption       string
	Unit          string
	Reference     float64
	HasReference  bool
}

func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 80, Height: 15}
}

// PlotSeries renders the valid samples with asciigraph, scaled by a power of
// ten so labels stay readable. The analytical reference, when present, is
// drawn as a second flat series.
func PlotSeries(series sweep.Series, opts PlotOptions) (string, error) {
	ys := series.ValidY()
	if len(ys) == 0 {
		return "", fmt.Errorf("no valid samples to plot")
	}

	peak := 0.0
	for _, y := range ys {
		peak = math.Max(peak, math.Abs(y))
	}
	if opts.HasReference {
		peak = math.Max(peak, math.Abs(opts.Reference))
	}
	exp := DisplayExponent(peak)
	scale := math.Pow(10, -float64(exp))

	data := make([]float64, len(ys))
	for i, y := range ys {
		data[i] = y * scale
	}

	caption := opts.Caption
	unit := opts.Unit
	if exp != 0 {
		unit = fmt.Sprintf("1e%d %s", exp, opts.Unit)
	}
	if unit != "" {
		caption = fmt.Sprintf("%s [%s]", caption, unit)
	}
	if series.Len() > 0 {
		caption += fmt.Sprintf("  r1 %.4g..%.4g nm", series.X[0]*1e9, series.X[series.Len()-1]*1e9)
	}

	plotOpts := []asciigraph.Option{
		asciigraph.Height(opts.Height),
		asciigraph.Width(opts.Width),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	}

	if !opts.HasReference {
		return asciigraph.Plot(data, plotOpts...), nil
	}

	ref := make([]float64, len(data))
	for i := range ref {
		ref[i] = opts.Reference * scale
	}
	plotOpts = append(plotOpts, asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red))
	return asciigraph.PlotMany([][]float64{data, ref}, plotOpts...), nil
}

// DisplayExponent is the power of ten that brings v into [1, 1000).
func DisplayExponent(v float64) int {
	v = math.Abs(v)
	if v == 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	e := int(math.Floor(math.Log10(v)))
	return e - ((e%3)+3)%3
}
