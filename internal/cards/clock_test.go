package cards

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockViewBeforeFirstRefresh(t *testing.T) {
	c := NewClock(DefaultClockConfig(), time.UTC)
	assert.Equal(t, "--:--:--", c.View(40))
}

func TestClockViewAfterRefresh(t *testing.T) {
	c := NewClock(DefaultClockConfig(), time.UTC)
	c.now = func() time.Time { return time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC) }

	require.NoError(t, c.Refresh(context.Background()))

	view := c.View(40)
	assert.Contains(t, view, "14:05:09")
	assert.Contains(t, view, "Monday, August 31, 2026")
}

func TestClockRendersInConfiguredZone(t *testing.T) {
	stockholm := time.FixedZone("CEST", 2*3600)
	c := NewClock(DefaultClockConfig(), stockholm)
	c.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, c.Refresh(context.Background()))
	assert.Contains(t, c.View(40), "14:00:00")
}
