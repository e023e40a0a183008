// Package card defines the unit of display content on the mirror: an
// independently scheduled piece of work with its own configuration, data
// source and refresh cadence. The Runner drives one card's refresh loop;
// cards never see each other.
package card

import (
	"context"
	"sync"
	"time"
)

// Card is the capability set every dashboard card provides. Concrete
// cards embed Base, which supplies the config and last-refresh plumbing;
// the embedded unexported method keeps foreign implementations out.
type Card interface {
	// Config returns the card's immutable configuration.
	Config() Config

	// Refresh fetches fresh data and atomically replaces the card's
	// internal state. It must honor ctx cancellation and must never
	// leave state partially updated. Called by the Runner only; never
	// concurrently with itself.
	Refresh(ctx context.Context) error

	// View renders the card's current state into at most width columns.
	// Called by the paint loop at any time, concurrently with Refresh.
	View(width int) string

	// LastRefresh returns the completion time of the most recent
	// successful refresh, and whether one has happened yet.
	LastRefresh() (time.Time, bool)

	noteRefresh(t time.Time)
}

// Base carries the pieces shared by all cards. Embed it by value.
type Base struct {
	cfg Config

	mu          sync.Mutex
	lastRefresh time.Time
	refreshed   bool
}

// NewBase wraps cfg for embedding into a concrete card.
func NewBase(cfg Config) Base {
	return Base{cfg: cfg}
}

func (b *Base) Config() Config {
	return b.cfg
}

func (b *Base) LastRefresh() (time.Time, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastRefresh, b.refreshed
}

func (b *Base) noteRefresh(t time.Time) {
	b.mu.Lock()
	b.lastRefresh = t
	b.refreshed = true
	b.mu.Unlock()
}
