package card

import "time"

// Position is one of the nine fixed slots in the 3x3 display grid.
type Position string

const (
	TopLeft      Position = "top_left"
	TopCenter    Position = "top_center"
	TopRight     Position = "top_right"
	MiddleLeft   Position = "middle_left"
	MiddleCenter Position = "middle_center"
	MiddleRight  Position = "middle_right"
	BottomLeft   Position = "bottom_left"
	BottomCenter Position = "bottom_center"
	BottomRight  Position = "bottom_right"
)

// Positions lists all grid slots in paint order (row-major, top to bottom).
var Positions = [9]Position{
	TopLeft, TopCenter, TopRight,
	MiddleLeft, MiddleCenter, MiddleRight,
	BottomLeft, BottomCenter, BottomRight,
}

// Valid reports whether p names one of the nine grid slots.
func (p Position) Valid() bool {
	for _, known := range Positions {
		if p == known {
			return true
		}
	}
	return false
}

// Config holds the declarative settings of a single card. It is a value
// type and must not be mutated after the card is constructed; build one
// through NewConfig.
type Config struct {
	// Name is the registry key and must be unique among registered cards.
	Name string

	// Position is the grid slot this card occupies.
	Position Position

	Enabled bool

	// Interval is the refresh period. NewConfig clamps it to >= 1s.
	Interval time.Duration

	// Visual hints consumed by the rendering layer.
	ShowBorder  bool
	ShowTitle   bool
	BorderColor string
	TextColor   string
}

// Option adjusts a Config under construction.
type Option func(*Config)

func WithBorder(show bool) Option {
	return func(c *Config) { c.ShowBorder = show }
}

func WithTitle(show bool) Option {
	return func(c *Config) { c.ShowTitle = show }
}

func WithBorderColor(color string) Option {
	return func(c *Config) { c.BorderColor = color }
}

func WithTextColor(color string) Option {
	return func(c *Config) { c.TextColor = color }
}

func WithEnabled(enabled bool) Option {
	return func(c *Config) { c.Enabled = enabled }
}

func WithPosition(p Position) Option {
	return func(c *Config) {
		if p.Valid() {
			c.Position = p
		}
	}
}

func WithInterval(d time.Duration) Option {
	return func(c *Config) {
		if d >= time.Second {
			c.Interval = d
		}
	}
}

// With returns a copy of c with the given options applied; c itself is
// untouched. Used to layer file overrides onto a card's defaults.
func (c Config) With(opts ...Option) Config {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// NewConfig builds an immutable card configuration. Every card gets its
// own value; defaults are never shared between instances. Intervals below
// one second are raised to one second.
func NewConfig(name string, pos Position, interval time.Duration, opts ...Option) Config {
	if !pos.Valid() {
		pos = MiddleCenter
	}
	if interval < time.Second {
		interval = time.Second
	}
	cfg := Config{
		Name:        name,
		Position:    pos,
		Enabled:     true,
		Interval:    interval,
		ShowBorder:  true,
		ShowTitle:   true,
		BorderColor: "blue",
		TextColor:   "white",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
