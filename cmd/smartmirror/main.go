package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"smartmirror/internal/app"
	"smartmirror/internal/card"
	"smartmirror/internal/cards"
	"smartmirror/internal/config"
	"smartmirror/internal/log"
	"smartmirror/internal/menu"
	"smartmirror/internal/openmeteo"
	"smartmirror/internal/pir"
	"smartmirror/internal/trafiklab"
	"smartmirror/internal/ui"
)

type flagConfig struct {
	configPath    string
	dev           bool
	lookupStation string
}

func main() {
	flags := parseFlags()

	log.Init(flags.dev)
	defer log.Sync()

	log.Info("smartmirror starting", "config_path", flags.configPath)

	conf, err := config.Load(flags.configPath)
	if err != nil {
		log.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// One-shot helper: resolve a station ID for the transit card and exit.
	if flags.lookupStation != "" {
		if err := lookupStation(conf, flags.lookupStation); err != nil {
			log.Error("station lookup failed", err, "station", flags.lookupStation)
			os.Exit(1)
		}
		return
	}

	log.Info("effective config",
		"timezone", conf.Timezone,
		"transit_enabled", conf.TransitEnabled(),
		"calendar_enabled", conf.CalendarEnabled(),
		"menu_enabled", conf.MenuEnabled(),
		"screen_enabled", conf.ScreenEnabled(),
	)

	var program *tea.Program
	invalidate := func(name string) {
		if program != nil {
			program.Send(ui.CardUpdatedMsg{Name: name})
		}
	}

	registry := app.New(invalidate)
	buildCards(conf, registry)

	program = tea.NewProgram(ui.New(registry), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry.StartAll(ctx)

	var screen *pir.Controller
	if conf.ScreenEnabled() {
		screen = pir.New(conf.Screen)
		if err := screen.Start(ctx); err != nil {
			// The mirror still works without presence detection.
			log.Error("pir controller unavailable, running without it", err)
			screen = nil
		}
	} else {
		log.Info("screen controller not configured, skipping")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info("signal received, shutting down", "signal", sig.String())
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		log.Error("terminal UI failed", err)
	}

	registry.StopAll()
	if screen != nil {
		screen.Stop()
	}

	log.Info("smartmirror exiting")
}

// buildCards constructs every card the configuration enables and
// registers it. Optional cards whose credentials are absent are skipped
// with an informational log line, never an error.
func buildCards(conf *config.Config, registry *app.Registry) {
	loc := conf.Location()

	registry.Register(cards.NewClock(
		override(conf, cards.DefaultClockConfig()), loc))

	registry.Register(cards.NewGreeter(
		override(conf, cards.DefaultGreeterConfig()), conf.UserName))

	registry.Register(cards.NewWeather(
		override(conf, cards.DefaultWeatherConfig()),
		openmeteo.NewClient(),
		conf.Weather.Latitude, conf.Weather.Longitude))

	if conf.CalendarEnabled() {
		registry.Register(cards.NewCalendar(
			override(conf, cards.DefaultCalendarConfig()),
			conf.Calendar.ICSURL, conf.Calendar.MaxEvents, loc))
	} else {
		log.Info("calendar card disabled: CALENDAR_ICS_URL not set")
	}

	if conf.TransitEnabled() {
		registry.Register(cards.NewTransit(
			override(conf, cards.DefaultTransitConfig()),
			trafiklab.NewClient(conf.Transit.APIKey),
			conf.Transit.StationID,
			conf.Transit.DelayThresholdSec,
			conf.Transit.MaxDepartures,
			loc))
	} else {
		log.Info("transit card disabled: TRANSPORT_STATION_ID or TRANSPORT_API_KEY not set")
	}

	if conf.MenuEnabled() {
		registry.Register(cards.NewMenu(
			override(conf, cards.DefaultMenuConfig()),
			menu.NewFetcher(conf.Menu.URL, conf.Menu.Selector)))
	} else {
		log.Info("menu card disabled: MENU_URL not set")
	}
}

// override layers the config file's per-card settings onto a card's
// default configuration.
func override(conf *config.Config, cfg card.Config) card.Config {
	ov, ok := conf.Cards[cfg.Name]
	if !ok {
		return cfg
	}

	opts := make([]card.Option, 0, 3)
	if ov.Position != "" {
		opts = append(opts, card.WithPosition(card.Position(ov.Position)))
	}
	if ov.IntervalSec > 0 {
		opts = append(opts, card.WithInterval(time.Duration(ov.IntervalSec)*time.Second))
	}
	if ov.Enabled != nil {
		opts = append(opts, card.WithEnabled(*ov.Enabled))
	}
	return cfg.With(opts...)
}

// lookupStation prints candidate station IDs for the given name.
func lookupStation(conf *config.Config, name string) error {
	if conf.Transit.APIKey == "" {
		return fmt.Errorf("TRANSPORT_API_KEY is required for station lookup")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client := trafiklab.NewClient(conf.Transit.APIKey)
	stops, err := client.LookupStation(ctx, name)
	if err != nil {
		return err
	}
	if len(stops) == 0 {
		fmt.Printf("no stations matching %q\n", name)
		return nil
	}
	for _, stop := range stops {
		fmt.Printf("%s\t%s\n", stop.ID, stop.Name)
	}
	return nil
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", defaultConfigPath(), "Path to config file")
	flag.BoolVar(&cfg.dev, "dev", false, "Human-readable debug logging instead of JSON")
	flag.StringVar(&cfg.lookupStation, "lookup-station", "", "Look up a transit station ID by name and exit")

	flag.Parse()
	return cfg
}

func defaultConfigPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home + "/.config/smartmirror/config.yaml"
	}
	return "./config.yaml"
}
