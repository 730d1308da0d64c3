// Package render draws engine charts as PNG images.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/orderlens/engine"
)

// ErrEmptyChart is returned for a chart without data points.
var ErrEmptyChart = errors.New("chart has no data points")

// Size of rendered images in pixels.
const (
	DefaultWidth  = 1200
	DefaultHeight = 600
)

// namedColors covers the CSS names used by the dashboard palette that
// go-chart does not know.
var namedColors = map[string]string{
	"darkblue":  "#00008B",
	"lightblue": "#ADD8E6",
	"blue":      "#0000FF",
}

// Color converts a CSS hex or name into a go-chart color.
func Color(css string) drawing.Color {
	if hex, ok := namedColors[strings.ToLower(css)]; ok {
		css = hex
	}
	return drawing.ParseColor(css)
}

// PNG writes c to w as a PNG image.
func PNG(w io.Writer, c *engine.ChartConfig) error {
	if c == nil || len(c.Series) == 0 || len(c.Series[0].Data) == 0 {
		return ErrEmptyChart
	}

	var err error
	switch c.ChartType {
	case "line":
		err = lineChart(c).Render(chart.PNG, w)
	case "bar":
		err = barChart(c).Render(chart.PNG, w)
	default:
		return fmt.Errorf("render %s: unsupported chart type %q", c.Name, c.ChartType)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", c.Name, err)
	}
	return nil
}

// barChart draws every chart vertically; horizontal bars are a layout hint
// for interactive front ends.
func barChart(c *engine.ChartConfig) chart.BarChart {
	points := c.Series[0].Data
	bars := make([]chart.Value, len(points))
	for i, p := range points {
		color := p.Color
		if color == "" {
			color = c.Series[0].Color
		}
		fill := Color(color)
		bars[i] = chart.Value{
			Label: truncate(p.Label, 14),
			Value: p.Value,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		}
	}

	return chart.BarChart{
		Title:      c.Title,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		BarWidth:   barWidth(len(bars)),
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Name:  c.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: ceiling(maxValue(points))},
		},
		Bars: bars,
	}
}

func lineChart(c *engine.ChartConfig) chart.Chart {
	series := c.Series[0]
	xs := make([]float64, len(series.Data))
	ys := make([]float64, len(series.Data))

	// Empty boundary ticks pad the axis and keep a single month drawable.
	ticks := []chart.Tick{{Value: -0.5}}
	for i, p := range series.Data {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.Label})
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(series.Data)) - 0.5})

	stroke := Color(series.Color)
	return chart.Chart{
		Title:      c.Title,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  c.XAxis,
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:  c.YAxis,
			Range: &chart.ContinuousRange{Min: 0, Max: ceiling(maxValue(series.Data))},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    series.Name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: stroke,
					StrokeWidth: 2,
					DotColor:    stroke,
					DotWidth:    4,
				},
			},
		},
	}
}

func maxValue(points []engine.ChartPoint) float64 {
	m := 0.0
	for _, p := range points {
		m = math.Max(m, p.Value)
	}
	return m
}

// ceiling leaves headroom above the tallest value and never returns zero.
func ceiling(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v * 1.1
}

func barWidth(n int) int {
	w := (DefaultWidth - 100) / (n*2 + 1)
	if w > 80 {
		return 80
	}
	if w < 10 {
		return 10
	}
	return w
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
