package chart

import (
	"bytes"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/parking-dashboard/internal/domain"
)

const (
	defaultWidth  = 720
	defaultHeight = 550
	maxTicks      = 12
)

// LineRenderer рисует ряд загруженности одной парковки в PNG
type LineRenderer struct {
	Width  int
	Height int
}

// NewLineRenderer создает рендерер с размерами по умолчанию
func NewLineRenderer() *LineRenderer {
	return &LineRenderer{Width: defaultWidth, Height: defaultHeight}
}

func lineStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

// Render возвращает PNG графика "время суток / загруженность, %"
func (r *LineRenderer) Render(series domain.Series) ([]byte, error) {
	if len(series.Points) == 0 {
		return nil, fmt.Errorf("render %s/%s: %w", series.Weekday, series.LotID, domain.ErrSeriesNotFound)
	}

	xs := make([]float64, len(series.Points))
	ys := make([]float64, len(series.Points))
	for i, p := range series.Points {
		xs[i] = float64(i)
		ys[i] = p.Value
	}

	xMax := float64(len(xs) - 1)
	if xMax < 1 {
		xMax = 1
	}

	graph := gochart.Chart{
		Title:  fmt.Sprintf("%s congestion (%%) - lot %s", series.Weekday, series.LotID),
		Width:  r.Width,
		Height: r.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:  "Time",
			Range: &gochart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: timeTicks(series.Points),
		},
		YAxis: gochart.YAxis{
			Name:  "Congestion (%)",
			Range: &gochart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f%%", f)
				}
				return ""
			},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    series.LotID,
				XValues: xs,
				YValues: ys,
				Style:   lineStyle(drawing.ColorFromHex("2980b9")),
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s/%s: %w", series.Weekday, series.LotID, err)
	}
	return buf.Bytes(), nil
}

// timeTicks прореживает подписи времени, чтобы на оси было не больше maxTicks меток
func timeTicks(points []domain.SeriesPoint) []gochart.Tick {
	step := (len(points) + maxTicks - 1) / maxTicks
	if step < 1 {
		step = 1
	}

	ticks := make([]gochart.Tick, 0, maxTicks+1)
	for i := 0; i < len(points); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: points[i].Time})
	}
	return ticks
}
