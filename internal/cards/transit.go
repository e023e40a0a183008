package cards

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"

	"smartmirror/internal/card"
	"smartmirror/internal/model"
	"smartmirror/internal/trafiklab"
)

var transitWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

// modeGlyphs maps upper-cased transport modes to display glyphs. Unknown
// modes fall back to the raw mode string.
var modeGlyphs = map[string]string{
	"BUS":   "🚍",
	"METRO": "Ⓜ️",
	"TRAIN": "🚆",
	"TRAM":  "🚊",
	"BOAT":  "🛥",
	"TAXI":  "🚕",
}

func modeGlyph(mode string) string {
	if glyph, ok := modeGlyphs[mode]; ok {
		return glyph
	}
	return mode
}

// Transit shows upcoming departures for one station with delay warnings.
type Transit struct {
	card.Base

	client         *trafiklab.Client
	stationID      string
	delayThreshold int
	maxDepartures  int
	loc            *time.Location
	now            func() time.Time

	mu         sync.Mutex
	departures []model.Departure
	errMsg     string
}

// DefaultTransitConfig places the departures board bottom center.
func DefaultTransitConfig() card.Config {
	return card.NewConfig("Transport", card.BottomCenter, time.Minute,
		card.WithBorderColor("yellow"),
	)
}

func NewTransit(cfg card.Config, client *trafiklab.Client, stationID string, delayThresholdSec, maxDepartures int, loc *time.Location) *Transit {
	if delayThresholdSec <= 0 {
		delayThresholdSec = 60
	}
	if maxDepartures <= 0 {
		maxDepartures = 6
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Transit{
		Base:           card.NewBase(cfg),
		client:         client,
		stationID:      stationID,
		delayThreshold: delayThresholdSec,
		maxDepartures:  maxDepartures,
		loc:            loc,
		now:            time.Now,
	}
}

func (t *Transit) Refresh(ctx context.Context) error {
	departures, err := t.client.Departures(ctx, t.stationID)
	if err != nil {
		kind := card.KindFetch
		if errors.Is(err, trafiklab.ErrDecode) {
			kind = card.KindParse
		}
		t.mu.Lock()
		t.errMsg = errText(err)
		t.mu.Unlock()
		return card.WrapErr(kind, err)
	}

	t.mu.Lock()
	t.departures = departures
	t.errMsg = ""
	t.mu.Unlock()
	return nil
}

func (t *Transit) View(width int) string {
	t.mu.Lock()
	departures := t.departures
	errMsg := t.errMsg
	t.mu.Unlock()

	if errMsg != "" {
		return errMsg
	}
	if len(departures) == 0 {
		return "No upcoming departures."
	}

	now := t.now()
	var lines []string
	for i, dep := range departures {
		// The cap applies to the display, after sorting.
		if i >= t.maxDepartures {
			break
		}
		lines = append(lines, t.formatLine(dep, now))
	}
	return strings.Join(lines, "\n")
}

func (t *Transit) formatLine(dep model.Departure, now time.Time) string {
	parts := make([]string, 0, 6)
	if glyph := modeGlyph(dep.Mode); glyph != "" {
		parts = append(parts, glyph)
	}
	if dep.Line != "" {
		parts = append(parts, dep.Line)
	}
	if dep.Destination != "" {
		parts = append(parts, dep.Destination)
	}
	parts = append(parts, "-", FormatETA(dep.Expected, now, t.loc))
	if warn := FormatDelay(dep.DelaySec, t.delayThreshold); warn != "" {
		parts = append(parts, transitWarnStyle.Render(warn))
	}
	return strings.Join(parts, " ")
}

// FormatETA renders the relative time phrase for a live estimate:
// "left" when more than a minute gone, "now" within ±60s, otherwise
// "in Nm (HH:MM)" with ceiling-rounded minutes so a pending departure
// never reads "in 0m". A nil estimate renders as "n/a".
func FormatETA(expected *time.Time, now time.Time, loc *time.Location) string {
	if expected == nil {
		return "n/a"
	}
	delta := expected.Sub(now).Seconds()
	switch {
	case delta < -60:
		return "left"
	case delta < 60:
		return "now"
	}
	minutes := int(math.Ceil(delta / 60))
	return fmt.Sprintf("in %dm (%s)", minutes, expected.In(loc).Format("15:04"))
}

// FormatDelay renders the warning badge shown when |delaySec| exceeds
// the threshold. Minutes here round to nearest: the badge reports best-
// estimate magnitude, unlike the ETA which must never understate wait.
func FormatDelay(delaySec, thresholdSec int) string {
	if delaySec == 0 {
		return ""
	}
	if delaySec <= thresholdSec && -delaySec <= thresholdSec {
		return ""
	}
	minutes := int(math.Round(float64(delaySec) / 60))
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("[WARN %s%dm]", sign, minutes)
}
