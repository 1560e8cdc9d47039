// Package plot renders the death-age histogram as a PNG chart.
package plot

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"lifespan/mortality/pkg/lifetable"
	"lifespan/mortality/pkg/stats"
)

const overlaySteps = 200

var (
	barColor = drawing.Color{R: 173, G: 216, B: 230, A: 255} // lightblue

	// Marker colors cycle in percentile order.
	markColors = []drawing.Color{
		{R: 255, A: 255},
		{A: 255},
		{G: 128, A: 255},
	}

	overlayColor = drawing.Color{R: 230, G: 159, B: 0, A: 255}
)

// PercentileMark pairs a percentile with the age of death at that
// percentile.
type PercentileMark struct {
	Percentile float64
	Age        float64
}

type Input struct {
	Title   string
	Entries []lifetable.Entry
	Summary stats.Summary
	Marks   []PercentileMark

	// Overlay adds a skew-normal density curve on a secondary axis,
	// parameterized by the summary mean and deviation with the given
	// Skew shape. Cosmetic only.
	Overlay bool
	Skew    float64
}

// Render draws the histogram with percentile markers and summary
// annotations and writes it to w as a PNG. Rendering failures from
// degenerate inputs propagate unchanged.
func Render(w io.Writer, in Input) error {
	if len(in.Entries) == 0 {
		return fmt.Errorf("no buckets to plot")
	}

	xs := make([]float64, len(in.Entries))
	ys := make([]float64, len(in.Entries))
	var maxCount float64
	for i, e := range in.Entries {
		xs[i] = float64(e.Age)
		ys[i] = float64(e.Deaths)
		if ys[i] > maxCount {
			maxCount = ys[i]
		}
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Actual deaths per age",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: barColor,
				FillColor:   barColor.WithAlpha(180),
			},
		},
	}

	for i, m := range in.Marks {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("%gth percentile age of death: %.1f", m.Percentile, m.Age),
			XValues: []float64{m.Age, m.Age},
			YValues: []float64{0, maxCount * 0.5},
			Style: chart.Style{
				StrokeColor: markColors[i%len(markColors)],
				StrokeWidth: 3,
			},
		})
	}

	if in.Overlay && in.Summary.StdDev > 0 {
		ox, oy := overlayPoints(xs[0], xs[len(xs)-1], in.Summary, in.Skew)
		series = append(series, chart.ContinuousSeries{
			Name:    "Approximate density",
			XValues: ox,
			YValues: oy,
			YAxis:   chart.YAxisSecondary,
			Style: chart.Style{
				StrokeColor:     overlayColor,
				StrokeDashArray: []float64{4.0, 2.0},
			},
		})
	}

	series = append(series, chart.AnnotationSeries{
		Annotations: []chart.Value2{{
			XValue: xs[0],
			YValue: maxCount * 0.6,
			Label: fmt.Sprintf("μ = %.1f years, σ = %.1f years, n = %s people",
				in.Summary.Mean, in.Summary.StdDev, humanize.Comma(int64(in.Summary.N))),
		}},
	})

	c := chart.Chart{
		Title: in.Title,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 8},
		},
		XAxis: chart.XAxis{Name: "Age of death"},
		YAxis: chart.YAxis{
			Name: fmt.Sprintf("Number of deaths per %s people", humanize.Comma(int64(in.Summary.N))),
		},
		Series: series,
	}
	if in.Overlay {
		c.YAxisSecondary = chart.YAxis{Name: "Density"}
	}
	c.Elements = []chart.Renderable{chart.Legend(&c)}

	return c.Render(chart.PNG, w)
}

func overlayPoints(min, max float64, s stats.Summary, shape float64) ([]float64, []float64) {
	xs := make([]float64, 0, overlaySteps+1)
	ys := make([]float64, 0, overlaySteps+1)
	for i := 0; i <= overlaySteps; i++ {
		x := min + (max-min)*float64(i)/overlaySteps
		xs = append(xs, x)
		ys = append(ys, stats.SkewNormalPDF(x, s.Mean, s.StdDev, shape))
	}
	return xs, ys
}
