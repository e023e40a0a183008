package card

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig("Weather", BottomLeft, 5*time.Minute)

	assert.Equal(t, "Weather", cfg.Name)
	assert.Equal(t, BottomLeft, cfg.Position)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Interval)
	assert.True(t, cfg.ShowBorder)
	assert.True(t, cfg.ShowTitle)
}

func TestNewConfigClampsInterval(t *testing.T) {
	cfg := NewConfig("Clock", TopCenter, 200*time.Millisecond)
	assert.Equal(t, time.Second, cfg.Interval)
}

func TestNewConfigInvalidPositionFallsBack(t *testing.T) {
	cfg := NewConfig("X", Position("under_the_sofa"), time.Minute)
	assert.Equal(t, MiddleCenter, cfg.Position)
}

func TestNewConfigOptions(t *testing.T) {
	cfg := NewConfig("Greeter", MiddleCenter, 5*time.Minute,
		WithBorder(false),
		WithTitle(false),
		WithBorderColor("magenta"),
	)
	assert.False(t, cfg.ShowBorder)
	assert.False(t, cfg.ShowTitle)
	assert.Equal(t, "magenta", cfg.BorderColor)
}

func TestConfigWithDoesNotMutateOriginal(t *testing.T) {
	orig := NewConfig("Clock", TopCenter, time.Minute)
	derived := orig.With(WithPosition(BottomRight), WithInterval(2*time.Minute))

	assert.Equal(t, TopCenter, orig.Position)
	assert.Equal(t, BottomRight, derived.Position)
	assert.Equal(t, 2*time.Minute, derived.Interval)
}

func TestWithIntervalRejectsSubSecond(t *testing.T) {
	cfg := NewConfig("Clock", TopCenter, time.Minute).
		With(WithInterval(100 * time.Millisecond))
	assert.Equal(t, time.Minute, cfg.Interval)
}

func TestPositionValid(t *testing.T) {
	for _, pos := range Positions {
		assert.True(t, pos.Valid(), string(pos))
	}
	assert.False(t, Position("roof").Valid())
}
