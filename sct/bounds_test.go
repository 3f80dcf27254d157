package sct

import (
	"bytes"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestBoundTemperature(t *testing.T) {
	discard := zerolog.New(io.Discard)
	for _, tc := range []struct {
		temp, dfl, want Temperature
	}{
		{0, -1, NormTemp},
		{-500, -1, NormTemp},
		{0, 5000, 5000},
		{500, -1, MinTemp},
		{500, 1000, 1000},
		{MinTemp, -1, MinTemp},
		{9000, -1, 9000},
		{9000, 5000, 9000},
	} {
		got := BoundTemperature(tc.temp, tc.dfl, "test", discard)
		assert.Equal(t, tc.want, got, "boundTemperature(%d, %d)", tc.temp, tc.dfl)
	}
}

func TestBoundTemperatureWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	BoundTemperature(9000, -1, "in range", logger)
	assert.Empty(t, buf.String(), "no warning for an in-range temperature")

	BoundTemperature(0, -1, "user", logger)
	assert.Contains(t, buf.String(), "cannot be displayed")
	assert.Contains(t, buf.String(), "user")
}

func TestBoundBrightness(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	assert.Equal(t, 0.0, BoundBrightness(-0.5, logger))
	assert.Equal(t, 1.0, BoundBrightness(1.5, logger))
	assert.Equal(t, 0.7, BoundBrightness(0.7, logger))
	assert.Contains(t, buf.String(), "below 0.0")
	assert.Contains(t, buf.String(), "above 1.0")
}

func TestBoundBrightnessIdempotent(t *testing.T) {
	discard := zerolog.New(io.Discard)
	for _, x := range []float64{-2, -0.001, 0, 0.4, 1, 1.001, 100} {
		once := BoundBrightness(x, discard)
		assert.Equal(t, once, BoundBrightness(once, discard), "brightness %g", x)
		assert.GreaterOrEqual(t, once, 0.0)
		assert.LessOrEqual(t, once, 1.0)
	}
}

func TestStateBound(t *testing.T) {
	discard := zerolog.New(io.Discard)
	st := State{Temperature: -100, Brightness: 1.7}
	st.Bound("test", discard)
	assert.Equal(t, State{Temperature: NormTemp, Brightness: 1}, st)

	st = State{Temperature: 300, Brightness: -0.1}
	st.Bound("test", discard)
	assert.Equal(t, State{Temperature: MinTemp, Brightness: 0}, st)
}
