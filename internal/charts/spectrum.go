package charts

import (
	"bytes"
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/RMahshie/whitespace/pkg/models"
	"github.com/RMahshie/whitespace/pkg/occupancy"
)

// Frequency span drawn when a scan has no usable readings
const (
	defaultSpanStart = 470.0
	defaultSpanEnd   = 790.0
)

var (
	spectrumColor  = drawing.Color{R: 51, G: 102, B: 204, A: 255}
	thresholdColor = drawing.Color{R: 220, G: 53, B: 69, A: 255}
)

// SpectrumPNG renders power against frequency with the threshold as a
// dashed line
func SpectrumPNG(rows []models.SpectrumRow, threshold float64) ([]byte, error) {
	xs := make([]float64, len(rows))
	ys := make([]float64, len(rows))
	for i, row := range rows {
		xs[i] = row.Frequency
		ys[i] = row.Power
	}

	xMin, xMax := span(xs, defaultSpanStart, defaultSpanEnd)
	yMin, yMax := span(append(ys, threshold), threshold-10, threshold+10)

	graph := chart.Chart{
		Title:      fmt.Sprintf("Spectrum (threshold %.0f dBm)", threshold),
		TitleStyle: chart.Style{FontSize: 14, FontColor: drawing.ColorBlack},
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		Width:      1000,
		Height:     400,
		XAxis: chart.XAxis{
			Name:           "Frequency (MHz)",
			NameStyle:      chart.Style{FontSize: 11},
			Style:          chart.Style{FontSize: 9},
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: mhzFormatter,
		},
		YAxis: chart.YAxis{
			Name:      "Power (dBm)",
			NameStyle: chart.Style{FontSize: 11},
			Style:     chart.Style{FontSize: 9},
			Range:     &chart.ContinuousRange{Min: yMin - 5, Max: yMax + 5},
		},
	}

	if len(rows) > 0 {
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    "Power",
			Style:   chart.Style{StrokeColor: spectrumColor, StrokeWidth: 1.5},
			XValues: xs,
			YValues: ys,
		})
	}
	graph.Series = append(graph.Series, chart.ContinuousSeries{
		Name: "Threshold",
		Style: chart.Style{
			StrokeColor:     thresholdColor,
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{6, 4},
		},
		XValues: []float64{xMin, xMax},
		YValues: []float64{threshold, threshold},
	})
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render spectrum chart: %w", err)
	}
	return buf.Bytes(), nil
}

// SpectrumHTML renders an interactive spectrum page
func SpectrumHTML(rows []models.SpectrumRow, threshold float64) ([]byte, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Spectrum",
			Theme:     types.ThemeWesteros,
			Width:     "1000px",
			Height:    "450px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Spectrum",
			Subtitle: fmt.Sprintf("Occupied above %.0f dBm", threshold),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "MHz"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "dBm"}),
	)

	xAxis := make([]string, len(rows))
	power := make([]opts.LineData, len(rows))
	limit := make([]opts.LineData, len(rows))
	for i, row := range rows {
		xAxis[i] = formatMHz(row.Frequency)
		power[i] = opts.LineData{Value: row.Power, Name: string(row.Status)}
		limit[i] = opts.LineData{Value: threshold}
	}

	line.SetXAxis(xAxis).
		AddSeries("Power", power).
		AddSeries("Threshold", limit)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render spectrum page: %w", err)
	}
	return buf.Bytes(), nil
}

// OccupancyPNG renders one bar per frequency range, red when occupied
func OccupancyPNG(bars []occupancy.Bar) ([]byte, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	const barWidth, barSpacing = 28, 12
	values := make([]chart.Value, len(bars))
	for i, b := range bars {
		color := vacantColor
		if b.Occupied {
			color = occupiedColor
		}
		values[i] = chart.Value{
			Value: b.Height,
			Label: formatMHz(b.StartFreq),
			Style: chart.Style{FillColor: color, StrokeColor: color},
		}
	}

	graph := chart.BarChart{
		Title:      "Channel Occupancy",
		TitleStyle: chart.Style{FontSize: 14, FontColor: drawing.ColorBlack},
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		Width:      len(bars)*(barWidth+barSpacing) + 150,
		Height:     320,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Bars:       values,
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Style: chart.Style{FontSize: 9},
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render occupancy chart: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	occupiedColor = drawing.Color{R: 239, G: 68, B: 68, A: 255}
	vacantColor   = drawing.Color{R: 34, G: 197, B: 94, A: 255}
)

// span returns the min and max of values, or the fallback when empty. A
// single-valued span is widened so the axis has a non-zero range.
func span(values []float64, fallbackMin, fallbackMax float64) (float64, float64) {
	if len(values) == 0 {
		return fallbackMin, fallbackMax
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

func mhzFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return formatMHz(f)
	}
	return ""
}

func formatMHz(f float64) string {
	if f == math.Trunc(f) {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%.1f", f)
}
