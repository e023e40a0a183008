// Package app owns the set of cards on the mirror: the registry mapping
// names and grid positions to card instances, and the start/stop
// lifecycle of their refresh loops.
package app

import (
	"context"

	"smartmirror/internal/card"
	"smartmirror/internal/log"
)

// greeterName is the registry key SetRecognizedUser targets. The single
// designed cross-card mutation path goes through this card.
const greeterName = "Greeter"

// userNamer is implemented by the greeter card.
type userNamer interface {
	SetUserName(name string)
}

// Registry holds enabled cards keyed by name and by grid position. Both
// maps are written during single-threaded startup only and read-only
// afterwards, so steady-state reads need no locking.
type Registry struct {
	cards  map[string]card.Card
	byPos  map[card.Position]card.Card
	order  []string
	starts map[string]*card.Runner

	invalidate func(name string)
}

// New builds an empty registry. invalidate is handed to every card's
// runner and is also fired by SetRecognizedUser.
func New(invalidate func(name string)) *Registry {
	return &Registry{
		cards:      make(map[string]card.Card),
		byPos:      make(map[card.Position]card.Card),
		starts:     make(map[string]*card.Runner),
		invalidate: invalidate,
	}
}

// Register inserts c by name and position. The last registration wins for
// both keys; a position collision is logged, not rejected, so a
// misconfigured wall display comes up degraded instead of not at all.
func (r *Registry) Register(c card.Card) {
	cfg := c.Config()
	if prev, ok := r.cards[cfg.Name]; ok {
		log.Warn("card name registered twice, keeping the newer one",
			"card", cfg.Name, "position", string(prev.Config().Position))
		delete(r.byPos, prev.Config().Position)
	}
	if prev, ok := r.byPos[cfg.Position]; ok && prev.Config().Name != cfg.Name {
		log.Warn("grid position occupied, replacing previous card",
			"position", string(cfg.Position),
			"replaced", prev.Config().Name, "card", cfg.Name)
	}
	r.cards[cfg.Name] = c
	r.byPos[cfg.Position] = c
	r.order = append(r.order, cfg.Name)
}

// Get returns the card registered under name (case-sensitive).
func (r *Registry) Get(name string) (card.Card, bool) {
	c, ok := r.cards[name]
	return c, ok
}

// At returns the card occupying pos, if any.
func (r *Registry) At(pos card.Position) (card.Card, bool) {
	c, ok := r.byPos[pos]
	return c, ok
}

// Len reports the number of distinct registered cards.
func (r *Registry) Len() int {
	return len(r.cards)
}

// SetRecognizedUser updates the greeter's displayed name immediately,
// outside the card's own refresh interval. Intended to be driven by an
// external presence-detection trigger. A missing or unexpected greeter
// card makes this a no-op.
func (r *Registry) SetRecognizedUser(name string) {
	c, ok := r.cards[greeterName]
	if !ok {
		return
	}
	namer, ok := c.(userNamer)
	if !ok {
		return
	}
	namer.SetUserName(name)
	log.Info("recognized user applied to greeter", "user", name)
	if r.invalidate != nil {
		r.invalidate(greeterName)
	}
}

// StartAll launches one runner per enabled card. Each card refreshes once
// immediately and then on its own interval; loops end when ctx is
// canceled or StopAll is called.
func (r *Registry) StartAll(ctx context.Context) {
	for _, name := range r.order {
		c, ok := r.cards[name]
		if !ok || !c.Config().Enabled {
			continue
		}
		if _, running := r.starts[name]; running {
			continue
		}
		runner := card.NewRunner(c, r.invalidate)
		runner.Start(ctx)
		r.starts[name] = runner
		log.Info("card started",
			"card", name,
			"position", string(c.Config().Position),
			"interval", c.Config().Interval.String())
	}
}

// StopAll stops every runner and waits for in-flight refreshes to finish.
// Idempotent.
func (r *Registry) StopAll() {
	for name, runner := range r.starts {
		runner.Stop()
		delete(r.starts, name)
		log.Info("card stopped", "card", name)
	}
}
