package plot

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/csvexplore-cli/internal/analysis"
	"github.com/wcharczuk/go-chart/v2"
)

// Boxplot draws a single vertical box with 1.5*IQR whiskers and outlier dots.
func Boxplot(column string, values []float64, opt Options) (*Image, error) {
	opt = opt.normalized()
	values = analysis.Finite(values)
	if len(values) == 0 {
		return nil, errNoValues
	}
	box := analysis.BoxStats(values)
	const left, right, mid = 0.3, 0.7, 0.5
	capL, capR := 0.42, 0.58

	boxStyle := chart.Style{StrokeColor: barFill, StrokeWidth: 2}
	medianStyle := chart.Style{StrokeColor: lineColor, StrokeWidth: 3}
	segment := func(name string, style chart.Style, xs, ys []float64) chart.Series {
		return chart.ContinuousSeries{Name: name, Style: style, XValues: xs, YValues: ys}
	}
	series := []chart.Series{
		segment("box", boxStyle,
			[]float64{left, right, right, left, left},
			[]float64{box.Q1, box.Q1, box.Q3, box.Q3, box.Q1}),
		segment("median", medianStyle, []float64{left, right}, []float64{box.Median, box.Median}),
		segment("lower whisker", boxStyle, []float64{mid, mid}, []float64{box.LowerWhisker, box.Q1}),
		segment("upper whisker", boxStyle, []float64{mid, mid}, []float64{box.Q3, box.UpperWhisker}),
		segment("lower cap", boxStyle, []float64{capL, capR}, []float64{box.LowerWhisker, box.LowerWhisker}),
		segment("upper cap", boxStyle, []float64{capL, capR}, []float64{box.UpperWhisker, box.UpperWhisker}),
	}
	lo, hi := box.LowerWhisker, box.UpperWhisker
	if len(box.Outliers) > 0 {
		xs := make([]float64, len(box.Outliers))
		for i, v := range box.Outliers {
			xs[i] = mid
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    "outliers",
			Style:   chart.Style{StrokeWidth: chart.Disabled, DotColor: dotColor, DotWidth: 4},
			XValues: xs,
			YValues: box.Outliers,
		})
	}
	pad := (hi - lo) * 0.08
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 1)
	}
	title := fmt.Sprintf("Boxplot of %s", column)
	c := chart.Chart{
		Title:      title,
		Width:      opt.Width,
		Height:     opt.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
			Ticks: []chart.Tick{{Value: 0, Label: ""}, {Value: mid, Label: column}, {Value: 1, Label: ""}},
		},
		YAxis: chart.YAxis{
			Name:  column,
			Range: &chart.ContinuousRange{Min: lo - pad, Max: hi + pad},
		},
		Series: series,
	}
	return renderChart(imageName("boxplot", column), title, opt, c)
}
