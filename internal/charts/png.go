package charts

import (
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Same order as the report page palette.
var palette = []drawing.Color{
	drawing.ColorFromHex("6366f1"),
	drawing.ColorFromHex("10b981"),
	drawing.ColorFromHex("f59e0b"),
	drawing.ColorFromHex("ef4444"),
	drawing.ColorFromHex("8b5cf6"),
	drawing.ColorFromHex("cbd5e1"),
}

const (
	DefaultWidth  = 720
	DefaultHeight = 300
)

// RenderPNG hands a built series to go-chart. Pie specs become a pie of the
// single series; everything else is a bar per (category, series) pair.
func RenderPNG(w io.Writer, s Series, width, height int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if s.Spec.Kind == KindPie {
		return renderPie(w, s, width, height)
	}
	return renderBars(w, s, width, height)
}

func renderBars(w io.Writer, s Series, width, height int) error {
	bars := make([]chart.Value, 0, len(s.Records)*len(s.Names))
	for _, rec := range s.Records {
		for i, name := range s.Names {
			bars = append(bars, chart.Value{
				Label: rec.Category + " " + name,
				Value: rec.Values[name],
				Style: chart.Style{
					FillColor:   palette[i%len(palette)],
					StrokeColor: palette[i%len(palette)],
				},
			})
		}
	}
	bw := barWidth(width, len(bars))
	bc := chart.BarChart{
		Title:      s.Spec.Title,
		Width:      width,
		Height:     height,
		BarWidth:   bw,
		BarSpacing: bw / 2,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

func renderPie(w io.Writer, s Series, width, height int) error {
	name := s.Names[0]
	values := make([]chart.Value, 0, len(s.Records))
	for i, rec := range s.Records {
		values = append(values, chart.Value{
			Label: rec.Category,
			Value: rec.Values[name],
			Style: chart.Style{FillColor: palette[i%len(palette)]},
		})
	}
	pc := chart.PieChart{
		Title:  s.Spec.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	return pc.Render(chart.PNG, w)
}

func barWidth(width, n int) int {
	if n == 0 {
		return 40
	}
	bw := width / (n * 2)
	if bw > 80 {
		bw = 80
	}
	if bw < 10 {
		bw = 10
	}
	return bw
}
