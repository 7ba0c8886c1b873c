package plot

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/KaramelBytes/csvexplore-cli/internal/analysis"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// coolwarm anchors from -1 to 1.
var coolwarm = []color.RGBA{
	{R: 59, G: 76, B: 192, A: 255},
	{R: 124, G: 159, B: 249, A: 255},
	{R: 221, G: 220, B: 219, A: 255},
	{R: 245, G: 156, B: 125, A: 255},
	{R: 180, G: 4, B: 38, A: 255},
}

var nanColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// colorFor maps v in [-1, 1] onto the coolwarm ramp.
func colorFor(v float64) color.RGBA {
	if math.IsNaN(v) {
		return nanColor
	}
	t := (math.Max(-1, math.Min(1, v)) + 1) / 2 * float64(len(coolwarm)-1)
	i := int(math.Floor(t))
	if i >= len(coolwarm)-1 {
		return coolwarm[len(coolwarm)-1]
	}
	f := t - float64(i)
	a, b := coolwarm[i], coolwarm[i+1]
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x)*(1-f) + float64(y)*f)) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// Heatmap draws the correlation matrix as annotated cells with a color bar.
func Heatmap(m *analysis.CorrMatrix, opt Options) (*Image, error) {
	opt = opt.normalized()
	if m == nil || len(m.Columns) == 0 {
		return nil, errors.New("empty correlation matrix")
	}
	face := basicfont.Face7x13
	const charW, lineH, pad, barW = 7, 13, 10, 16
	title := "Correlation Matrix"

	labelW := 0
	for _, c := range m.Columns {
		labelW = maxInt(labelW, len([]rune(c)))
	}
	labelW = minInt(labelW, 20)*charW + pad

	n := len(m.Columns)
	top := lineH*2 + pad
	bottom := lineH*2 + pad
	availW := opt.Width - labelW - pad*4 - barW - 6*charW
	availH := opt.Height - top - bottom
	cell := minInt(availW/n, availH/n)
	if cell < 2*charW {
		return nil, fmt.Errorf("canvas %dx%d too small for %d columns", opt.Width, opt.Height, n)
	}

	img := image.NewRGBA(image.Rect(0, 0, opt.Width, opt.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	text := func(s string, x, y int, c color.Color) {
		d := &font.Drawer{Dst: img, Src: image.NewUniform(c), Face: face, Dot: fixed.P(x, y)}
		d.DrawString(s)
	}
	width := func(s string) int {
		return font.MeasureString(face, s).Ceil()
	}
	text(title, (opt.Width-width(title))/2, lineH+pad/2, color.Black)

	x0, y0 := labelW+pad, top
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := m.Values[i][j]
			r := image.Rect(x0+j*cell, y0+i*cell, x0+(j+1)*cell, y0+(i+1)*cell)
			draw.Draw(img, r.Inset(1), image.NewUniform(colorFor(v)), image.Point{}, draw.Src)
			label := "nan"
			if !math.IsNaN(v) {
				label = fmt.Sprintf("%.2f", v)
			}
			var fg color.Color = color.Black
			if math.Abs(v) > 0.6 {
				fg = color.White
			}
			if w := width(label); w < cell {
				text(label, r.Min.X+(cell-w)/2, r.Min.Y+(cell+lineH)/2-2, fg)
			}
		}
		name := truncate(m.Columns[i], (labelW-pad)/charW)
		text(name, labelW-width(name), y0+i*cell+(cell+lineH)/2-2, color.Black)
		col := truncate(m.Columns[i], cell/charW)
		text(col, x0+i*cell+(cell-width(col))/2, y0+n*cell+lineH+2, color.Black)
	}

	// color bar from 1 at the top to -1 at the bottom
	bx := x0 + n*cell + pad*2
	bh := n * cell
	for y := 0; y < bh; y++ {
		v := 1 - 2*float64(y)/float64(maxInt(bh-1, 1))
		draw.Draw(img, image.Rect(bx, y0+y, bx+barW, y0+y+1), image.NewUniform(colorFor(v)), image.Point{}, draw.Src)
	}
	text("1.0", bx+barW+4, y0+lineH-3, color.Black)
	text("0.0", bx+barW+4, y0+bh/2+lineH/2-2, color.Black)
	text("-1.0", bx+barW+4, y0+bh-2, color.Black)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode heatmap: %w", err)
	}
	return &Image{Name: "correlation_heatmap", Title: title, Width: opt.Width, Height: opt.Height, PNG: buf.Bytes()}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n <= 2 {
		return string(r[:n])
	}
	return string(r[:n-2]) + ".."
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
