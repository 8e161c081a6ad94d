package charts

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/chrisdamba/ecomdash/internal/models"
	"github.com/chrisdamba/ecomdash/internal/report"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrNoData = errors.New("no data to chart")

const (
	Width  = 1280
	Height = 600
)

var seriesColor = drawing.ColorFromHex("72BCD4")

// CityBar renders customers per city as a PNG bar chart.
func CityBar(w io.Writer, cities []models.CityCount) error {
	if len(cities) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, 0, len(cities))
	maxY := 0.0
	for _, c := range cities {
		v := float64(c.Customers)
		maxY = math.Max(maxY, v)
		bars = append(bars, chart.Value{
			Label: c.City,
			Value: v,
			Style: chart.Style{FillColor: seriesColor, StrokeColor: seriesColor},
		})
	}

	graph := chart.BarChart{
		Title:      "Customers by city",
		Width:      Width,
		Height:     Height,
		BarWidth:   60,
		BarSpacing: 40,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.Style{FontSize: 9},
		YAxis: chart.YAxis{
			Name:  "Customers",
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(maxY)},
		},
		Bars: bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render city chart: %w", err)
	}
	return nil
}

// MonthlyTrend renders orders per month as a PNG line chart with month names
// on the x-axis.
func MonthlyTrend(w io.Writer, buckets []models.MonthlyBucket) error {
	if len(buckets) == 0 {
		return ErrNoData
	}

	n := len(buckets)
	xs := make([]float64, n)
	ys := make([]float64, n)
	maxY := 0.0
	for i, b := range buckets {
		xs[i] = float64(i)
		ys[i] = float64(b.OrderCount)
		maxY = math.Max(maxY, ys[i])
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("Orders per month (%d)", report.TrendYear),
		Width:      Width,
		Height:     Height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Ticks: monthTicks(buckets),
			Range: &chart.ContinuousRange{Min: -0.5, Max: float64(n) - 0.5},
		},
		YAxis: chart.YAxis{
			Name:  "Orders",
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(maxY)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Orders",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: seriesColor,
					StrokeWidth: 2,
					DotColor:    seriesColor,
					DotWidth:    5,
				},
			},
		},
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render monthly chart: %w", err)
	}
	return nil
}

// monthTicks labels each bucket with its month name. go-chart takes the
// x-range from the outermost ticks, so blank ticks half a step either side
// keep a single month from collapsing the range to zero.
func monthTicks(buckets []models.MonthlyBucket) []chart.Tick {
	n := len(buckets)
	ticks := make([]chart.Tick, 0, n+2)
	ticks = append(ticks, chart.Tick{Value: -0.5})
	for i, b := range buckets {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: b.MonthName()})
	}
	return append(ticks, chart.Tick{Value: float64(n) - 0.5})
}

func axisMax(v float64) float64 {
	return math.Max(1, math.Ceil(v+v/10))
}
