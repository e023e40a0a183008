// Package pir turns the display on when the motion sensor fires and off
// again after a period of inactivity, so the mirror goes dark when the
// room is empty. Cron-scheduled quiet hours force the screen off at night
// regardless of motion. Display power is switched through wlr-randr.
package pir

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"smartmirror/internal/config"
	"smartmirror/internal/log"
)

// Controller owns the sensor pin, the inactivity timer and the quiet-
// hours schedule.
type Controller struct {
	pinName string
	output  string
	timeout time.Duration

	quietOffCron string
	quietOnCron  string

	// switchScreen is injectable for tests; defaults to wlr-randr.
	switchScreen func(on bool) error

	pin   gpio.PinIO
	sched *cron.Cron

	mu       sync.Mutex
	screenOn bool
	quiet    bool
	offTimer *time.Timer

	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

// New builds a controller from the screen configuration. Start must be
// called before the controller does anything.
func New(cfg config.ScreenConfig) *Controller {
	c := &Controller{
		pinName:      fmt.Sprintf("GPIO%d", cfg.GPIOPin),
		output:       cfg.Output,
		timeout:      time.Duration(cfg.TimeoutSec) * time.Second,
		quietOffCron: cfg.QuietOffCron,
		quietOnCron:  cfg.QuietOnCron,
		done:         make(chan struct{}),
	}
	c.switchScreen = c.runWlrRandr
	return c
}

// Start initializes the GPIO host, claims the sensor pin with a rising-
// edge trigger, and launches the edge-watch loop and the quiet-hours
// schedule. An unusable pin is an error; the caller decides whether the
// mirror runs without presence detection.
func (c *Controller) Start(ctx context.Context) error {
	if c.started {
		return nil
	}

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("pir: periph host init failed: %w", err)
	}

	pin := gpioreg.ByName(c.pinName)
	if pin == nil {
		return fmt.Errorf("pir: no such pin %s", c.pinName)
	}
	if err := pin.In(gpio.PullDown, gpio.RisingEdge); err != nil {
		return fmt.Errorf("pir: configure %s: %w", c.pinName, err)
	}
	c.pin = pin

	watchCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.started = true
	go c.watch(watchCtx)

	c.sched = cron.New()
	if c.quietOffCron != "" {
		if _, err := c.sched.AddFunc(c.quietOffCron, c.enterQuiet); err != nil {
			log.Warn("pir: bad quiet_off cron, quiet hours disabled", "cron", c.quietOffCron, "err", err.Error())
		}
	}
	if c.quietOnCron != "" {
		if _, err := c.sched.AddFunc(c.quietOnCron, c.leaveQuiet); err != nil {
			log.Warn("pir: bad quiet_on cron", "cron", c.quietOnCron, "err", err.Error())
		}
	}
	c.sched.Start()

	log.Info("pir controller started",
		"pin", c.pinName, "output", c.output, "timeout", c.timeout.String())
	return nil
}

// Stop halts the watch loop and the schedule, cancels the pending off
// timer and leaves the screen off. Idempotent.
func (c *Controller) Stop() {
	c.mu.Lock()
	started := c.started
	c.started = false
	if c.offTimer != nil {
		c.offTimer.Stop()
		c.offTimer = nil
	}
	c.mu.Unlock()

	if !started {
		return
	}
	c.cancel()
	<-c.done
	if c.sched != nil {
		c.sched.Stop()
	}
	c.setScreen(false)
	log.Info("pir controller stopped")
}

// watch blocks on edge interrupts. WaitForEdge takes a timeout so the
// loop notices cancellation within a second.
func (c *Controller) watch(ctx context.Context) {
	defer close(c.done)
	for ctx.Err() == nil {
		if !c.pin.WaitForEdge(time.Second) {
			continue
		}
		if c.pin.Read() == gpio.High {
			c.OnMotion()
		}
	}
}

// OnMotion handles one motion event: screen on, inactivity timer reset.
// Ignored during quiet hours.
func (c *Controller) OnMotion() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.quiet {
		return
	}
	if c.offTimer != nil {
		c.offTimer.Stop()
	}
	c.setScreenLocked(true)
	c.offTimer = time.AfterFunc(c.timeout, c.onTimeout)
}

func (c *Controller) onTimeout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offTimer = nil
	c.setScreenLocked(false)
}

func (c *Controller) enterQuiet() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quiet = true
	if c.offTimer != nil {
		c.offTimer.Stop()
		c.offTimer = nil
	}
	c.setScreenLocked(false)
	log.Info("quiet hours: screen forced off")
}

func (c *Controller) leaveQuiet() {
	c.mu.Lock()
	c.quiet = false
	c.mu.Unlock()
	log.Info("quiet hours over: motion wakes the screen again")
}

// ScreenOn reports the controller's view of the display power state.
func (c *Controller) ScreenOn() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screenOn
}

func (c *Controller) setScreen(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setScreenLocked(on)
}

// setScreenLocked switches the display only on actual state changes.
// Callers hold c.mu.
func (c *Controller) setScreenLocked(on bool) {
	if c.screenOn == on {
		return
	}
	if err := c.switchScreen(on); err != nil {
		log.Error("screen switch failed", err, "on", on, "output", c.output)
		return
	}
	c.screenOn = on
}

func (c *Controller) runWlrRandr(on bool) error {
	flag := "--off"
	if on {
		flag = "--on"
	}
	cmd := exec.Command("wlr-randr", "--output", c.output, flag)
	cmd.Env = append(os.Environ(),
		"XDG_RUNTIME_DIR=/run/user/1000",
		"WAYLAND_DISPLAY=wayland-0",
	)
	return cmd.Run()
}
