package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

const maxBins = 200

// Bins is a fixed-width histogram. len(Edges) == len(Counts)+1.
type Bins struct {
	Edges  []float64
	Counts []int
}

// Width returns the common bin width.
func (b Bins) Width() float64 {
	if len(b.Edges) < 2 {
		return 0
	}
	return b.Edges[1] - b.Edges[0]
}

// Finite returns the values that are neither NaN nor infinite.
func Finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// HistogramBins bins values using the larger bin count of the Sturges and
// Freedman-Diaconis rules. The last bin is closed on the right; non-finite
// values are skipped.
func HistogramBins(values []float64) Bins {
	values = Finite(values)
	if len(values) == 0 {
		return Bins{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	lo, hi := sorted[0], sorted[len(sorted)-1]
	n := float64(len(sorted))
	width := (hi - lo) / (math.Log2(n) + 1)
	if iqr := quantile(sorted, 0.75) - quantile(sorted, 0.25); iqr > 0 {
		if fd := 2 * iqr / math.Cbrt(n); fd < width {
			width = fd
		}
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	span := hi - lo
	nbins := 1
	if width > 0 {
		nbins = int(math.Ceil(span / width))
	}
	if nbins > maxBins {
		nbins = maxBins
	}
	b := Bins{Edges: make([]float64, nbins+1), Counts: make([]int, nbins)}
	for i := range b.Edges {
		b.Edges[i] = lo + span*float64(i)/float64(nbins)
	}
	for _, v := range sorted {
		i := int((v - lo) / span * float64(nbins))
		if i >= nbins {
			i = nbins - 1
		}
		if i < 0 {
			i = 0
		}
		b.Counts[i]++
	}
	return b
}

// Curve is a sampled function.
type Curve struct {
	X, Y []float64
}

// KDE estimates a Gaussian kernel density with Scott's bandwidth over the data
// range. It returns an empty curve when the spread is zero.
func KDE(values []float64, points int) Curve {
	values = Finite(values)
	if len(values) < 2 || points < 2 {
		return Curve{}
	}
	sd := stat.StdDev(values, nil)
	if sd == 0 || math.IsNaN(sd) {
		return Curve{}
	}
	h := sd * math.Pow(float64(len(values)), -0.2)
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	c := Curve{X: make([]float64, points), Y: make([]float64, points)}
	norm := 1 / (float64(len(values)) * h * math.Sqrt(2*math.Pi))
	for i := range c.X {
		x := lo + (hi-lo)*float64(i)/float64(points-1)
		var sum float64
		for _, v := range values {
			u := (x - v) / h
			sum += math.Exp(-0.5 * u * u)
		}
		c.X[i] = x
		c.Y[i] = sum * norm
	}
	return c
}

// BoxSummary holds the pieces of a box-and-whisker plot.
type BoxSummary struct {
	N              int
	Q1, Median, Q3 float64
	LowerWhisker   float64
	UpperWhisker   float64
	Outliers       []float64
}

// BoxStats computes quartiles, 1.5*IQR whiskers and the points beyond them.
func BoxStats(values []float64) BoxSummary {
	if len(values) == 0 {
		return BoxSummary{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	s := BoxSummary{
		N:      len(sorted),
		Q1:     quantile(sorted, 0.25),
		Median: quantile(sorted, 0.5),
		Q3:     quantile(sorted, 0.75),
	}
	iqr := s.Q3 - s.Q1
	loFence, hiFence := s.Q1-1.5*iqr, s.Q3+1.5*iqr
	s.LowerWhisker, s.UpperWhisker = s.Q1, s.Q3
	first := true
	for _, v := range sorted {
		if v < loFence || v > hiFence {
			s.Outliers = append(s.Outliers, v)
			continue
		}
		if first {
			s.LowerWhisker = v
			first = false
		}
		s.UpperWhisker = v
	}
	return s
}

// medianMAD computes median and MAD (median absolute deviation) of values.
func medianMAD(vals []float64) (median, mad float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	median = quantile(cp, 0.5)
	dev := make([]float64, len(cp))
	for i, v := range cp {
		dev[i] = math.Abs(v - median)
	}
	sort.Float64s(dev)
	mad = quantile(dev, 0.5)
	return
}

// quantile interpolates linearly between closest ranks of sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
