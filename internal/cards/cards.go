// Package cards contains the concrete dashboard cards: clock, greeter,
// weather, calendar, transit departures and cafeteria menu. Every card
// embeds card.Base, builds its replacement state completely before an
// atomic swap under its own mutex, and converts fetch/parse failures into
// a short inline message instead of propagating them.
package cards

import "unicode/utf8"

// maxInlineError bounds the inline error string a card displays.
const maxInlineError = 80

// errText formats err for inline display, truncated to maxInlineError
// runes.
func errText(err error) string {
	s := "Error: " + err.Error()
	if utf8.RuneCountInString(s) <= maxInlineError {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxInlineError-1]) + "…"
}
