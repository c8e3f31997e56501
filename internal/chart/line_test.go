package chart

import (
	"bytes"
	"fmt"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parking-dashboard/internal/domain"
)

func daySeries(n int) domain.Series {
	points := make([]domain.SeriesPoint, n)
	for i := range points {
		points[i] = domain.SeriesPoint{Time: fmt.Sprintf("%02d:00", i), Value: float64(i*4) + 0.5}
	}
	return domain.Series{LotID: "P001", Weekday: domain.Monday, Points: points}
}

func TestLineRenderer_Render(t *testing.T) {
	r := NewLineRenderer()

	data, err := r.Render(daySeries(24))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, defaultWidth, img.Bounds().Dx())
	assert.Equal(t, defaultHeight, img.Bounds().Dy())
}

func TestLineRenderer_SinglePoint(t *testing.T) {
	data, err := NewLineRenderer().Render(daySeries(1))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestLineRenderer_EmptySeries(t *testing.T) {
	_, err := NewLineRenderer().Render(domain.Series{LotID: "P001", Weekday: domain.Monday})
	assert.ErrorIs(t, err, domain.ErrSeriesNotFound)
}

func TestTimeTicks(t *testing.T) {
	ticks := timeTicks(daySeries(48).Points)
	assert.LessOrEqual(t, len(ticks), maxTicks)
	assert.Equal(t, "00:00", ticks[0].Label)

	ticks = timeTicks(daySeries(3).Points)
	assert.Len(t, ticks, 3)
}
