package plot

import (
	"errors"
	"fmt"
	"math"

	"github.com/KaramelBytes/csvexplore-cli/internal/analysis"
	"github.com/wcharczuk/go-chart/v2"
)

// maxBars caps the categories drawn in a bar histogram.
const maxBars = 40

var errNoValues = errors.New("no non-missing values to plot")

// Histogram draws binned counts with a KDE line scaled to the counts.
func Histogram(column string, values []float64, opt Options) (*Image, error) {
	opt = opt.normalized()
	values = analysis.Finite(values)
	if len(values) == 0 {
		return nil, errNoValues
	}
	bins := analysis.HistogramBins(values)
	xs := make([]float64, len(bins.Counts))
	ys := make([]float64, len(bins.Counts))
	for i, c := range bins.Counts {
		xs[i] = (bins.Edges[i] + bins.Edges[i+1]) / 2
		ys[i] = float64(c)
	}
	series := []chart.Series{
		chart.HistogramSeries{
			Name:  column,
			Style: chart.Style{FillColor: barFill.WithAlpha(180), StrokeColor: barFill, StrokeWidth: 1},
			InnerSeries: chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
			},
		},
	}
	if kde := analysis.KDE(values, 200); len(kde.X) > 0 {
		scale := float64(len(values)) * bins.Width()
		ky := make([]float64, len(kde.Y))
		for i, y := range kde.Y {
			ky[i] = y * scale
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "kde",
			Style:   chart.Style{StrokeColor: lineColor, StrokeWidth: 2},
			XValues: kde.X,
			YValues: ky,
		})
	}
	maxY := 0.0
	for _, s := range series {
		if vp, ok := s.(chart.ValuesProvider); ok {
			for i := 0; i < vp.Len(); i++ {
				_, y := vp.GetValues(i)
				maxY = math.Max(maxY, y)
			}
		}
	}
	title := fmt.Sprintf("Histogram of %s", column)
	c := chart.Chart{
		Title:      title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  column,
			Range: &chart.ContinuousRange{Min: bins.Edges[0], Max: bins.Edges[len(bins.Edges)-1]},
		},
		YAxis: chart.YAxis{
			Name:  "Count",
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.05},
		},
		Series: series,
	}
	return renderChart(imageName("histogram", column), title, opt, c)
}

// CategoryHistogram draws one bar per distinct value for non-numeric columns.
func CategoryHistogram(column string, counts []analysis.CategoryCount, opt Options) (*Image, error) {
	opt = opt.normalized()
	if len(counts) == 0 {
		return nil, errNoValues
	}
	if len(counts) > maxBars {
		counts = counts[:maxBars]
	}
	bars := make([]chart.Value, len(counts))
	maxY := 0.0
	for i, kv := range counts {
		bars[i] = chart.Value{
			Label: kv.Value,
			Value: float64(kv.Count),
			Style: chart.Style{FillColor: barFill, StrokeColor: barFill, StrokeWidth: 1},
		}
		maxY = math.Max(maxY, float64(kv.Count))
	}
	title := fmt.Sprintf("Histogram of %s", column)
	bc := chart.BarChart{
		Title:      title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		BarWidth:   maxInt(4, (opt.Width-100)/len(bars)-10),
		YAxis: chart.YAxis{
			Name:  "Count",
			Range: &chart.ContinuousRange{Min: 0, Max: maxY * 1.05},
		},
		Bars: bars,
	}
	return renderChart(imageName("histogram", column), title, opt, bc)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
