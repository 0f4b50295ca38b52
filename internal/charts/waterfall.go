package charts

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/RMahshie/whitespace/pkg/models"
)

// ErrNoData is returned when there is nothing to draw
var ErrNoData = errors.New("no data to chart")

var emptyCellColor = drawing.Color{R: 200, G: 200, B: 200, A: 255}

// maxTimeTicks caps the number of labelled rows on the time axis
const maxTimeTicks = 10

// PowerColor maps a power level to the waterfall colour scale, blue at
// -120 dBm through green to red at -40 dBm
func PowerColor(power float64) drawing.Color {
	n := math.Max(0, math.Min(1, (power+120)/80))
	return drawing.Color{
		R: uint8(math.Round(255 * n)),
		G: uint8(math.Round(255 * (1 - math.Abs(n-0.5)*2))),
		B: uint8(math.Round(255 * (1 - n))),
		A: 255,
	}
}

type waterfallCell struct {
	x0, x1 float64
	y0, y1 float64
	color  drawing.Color
}

// waterfallSeries fills one rectangle per matrix cell
type waterfallSeries struct {
	cells []waterfallCell
}

func (ws waterfallSeries) GetName() string           { return "waterfall" }
func (ws waterfallSeries) GetStyle() chart.Style     { return chart.Style{} }
func (ws waterfallSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (ws waterfallSeries) Len() int                  { return len(ws.cells) }
func (ws waterfallSeries) Validate() error           { return nil }
func (ws waterfallSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	for _, c := range ws.cells {
		x0 := canvasBox.Left + xrange.Translate(c.x0)
		x1 := canvasBox.Left + xrange.Translate(c.x1)
		y0 := canvasBox.Bottom - yrange.Translate(c.y0)
		y1 := canvasBox.Bottom - yrange.Translate(c.y1)
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		if x1 == x0 {
			x1++
		}
		if y1 == y0 {
			y1++
		}

		r.SetFillColor(c.color)
		r.SetStrokeColor(c.color)
		r.SetStrokeWidth(0)
		r.MoveTo(x0, y0)
		r.LineTo(x1, y0)
		r.LineTo(x1, y1)
		r.LineTo(x0, y1)
		r.Close()
		r.Fill()
	}
}

// WaterfallPNG renders the matrix as a heat map, oldest scan at the bottom
func WaterfallPNG(matrix *models.WaterfallMatrix) ([]byte, error) {
	if matrix == nil || len(matrix.Frequencies) == 0 || len(matrix.Times) == 0 {
		return nil, ErrNoData
	}

	freqStart := matrix.Frequencies[0]
	freqEnd := matrix.Frequencies[len(matrix.Frequencies)-1] + matrix.BinWidth
	rows := len(matrix.Power)

	series := waterfallSeries{}
	for row, cells := range matrix.Power {
		for b, p := range cells {
			color := emptyCellColor
			if p != nil {
				color = PowerColor(*p)
			}
			f0 := matrix.Frequencies[b]
			series.cells = append(series.cells, waterfallCell{
				x0: f0, x1: f0 + matrix.BinWidth,
				y0: float64(row), y1: float64(row + 1),
				color: color,
			})
		}
	}

	step := int(math.Ceil(float64(rows) / maxTimeTicks))
	var ticks []chart.Tick
	for row := 0; row < rows && row < len(matrix.Times); row += step {
		ticks = append(ticks, chart.Tick{
			Value: float64(row) + 0.5,
			Label: matrix.Times[row].Format("01-02 15:04"),
		})
	}

	graph := chart.Chart{
		Title:      "Waterfall",
		TitleStyle: chart.Style{FontSize: 14, FontColor: drawing.ColorBlack},
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		Width:      1000,
		Height:     500,
		XAxis: chart.XAxis{
			Name:           "Frequency (MHz)",
			NameStyle:      chart.Style{FontSize: 11},
			Style:          chart.Style{FontSize: 9},
			Range:          &chart.ContinuousRange{Min: freqStart, Max: freqEnd},
			ValueFormatter: mhzFormatter,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 8},
			Range: &chart.ContinuousRange{Min: 0, Max: float64(rows)},
			Ticks: ticks,
		},
		Series: []chart.Series{series},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render waterfall chart: %w", err)
	}
	return buf.Bytes(), nil
}
