// Package plot renders exploration charts as PNG images.
package plot

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Image is a rendered PNG ready for a display surface.
type Image struct {
	Name   string // file stem, e.g. "histogram_age"
	Title  string
	Width  int
	Height int
	PNG    []byte
}

// Options controls output size.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions returns an 800x600 canvas.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 600}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	return o
}

var (
	barFill   = drawing.ColorFromHex("4c72b0")
	lineColor = drawing.ColorFromHex("1f3b73")
	dotColor  = drawing.ColorFromHex("333333")
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func imageName(kind, column string) string {
	stem := strings.Trim(unsafeChars.ReplaceAllString(column, "_"), "_")
	if stem == "" {
		return kind
	}
	return kind + "_" + stem
}

type renderer interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func renderChart(name, title string, opt Options, r renderer) (*Image, error) {
	var buf bytes.Buffer
	if err := r.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return &Image{Name: name, Title: title, Width: opt.Width, Height: opt.Height, PNG: buf.Bytes()}, nil
}
