package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/windsensor/internal/config"
	"codeberg.org/mutker/windsensor/internal/display"
	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/hardware"
	"codeberg.org/mutker/windsensor/internal/logger"
	"codeberg.org/mutker/windsensor/internal/pid"
	"codeberg.org/mutker/windsensor/internal/report"
	"codeberg.org/mutker/windsensor/internal/temperature"
	"codeberg.org/mutker/windsensor/internal/wind"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

const (
	reportDrainTimeout = 5 * time.Second
)

type edgeSource interface {
	Run(ctx context.Context, handler hardware.EdgeHandler) error
}

type statusLED interface {
	On() error
	Off() error
	Close() error
}

type spiBus interface {
	hardware.Transport
	Close() error
}

type app struct {
	cfg        *config.Config
	display    display.Sink
	hub        *display.Hub
	reporter   report.Reporter
	dispatcher *report.Dispatcher
	closers    []func() error

	initHost        func() error
	openEdgeWatcher func(pin string, debounce time.Duration) (edgeSource, error)
	openLED         func(pin string) (statusLED, error)
	openSPI         func(port string) (spiBus, error)
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, ok := logger.ParseLevel(cfg.LogLevel)
	if !ok {
		fmt.Fprintf(os.Stderr, "invalid log level: %s\n", cfg.LogLevel)
		os.Exit(1)
	}
	logger.Init(level, logger.IsService())
	logger.Debug().Msg("Config loaded")

	if err := pid.Write(); err != nil {
		var appErr errors.Error
		if errors.As(err, &appErr) {
			logger.FatalWithCode(appErr).Msg("Failed to write PID file")
		}
		logger.Fatal().Err(err).Msg("Failed to write PID file")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	errFactory := errors.New()

	a, err := newApp(cfg)
	if err != nil {
		logger.ErrorWithCode(errFactory.Wrap(errors.ErrInitApp, err)).Msg("Failed to initialize")
		cleanupPID()
		os.Exit(1)
	}

	if err := a.run(ctx); err != nil {
		logger.ErrorWithCode(errFactory.Wrap(errors.ErrMainLoop, err)).Msg("Error in main loop")
	}

	a.shutdown()
	cleanupPID()
	logger.Info().Msg("Exiting...")
}

func newApp(cfg *config.Config) (*app, error) {
	a := &app{
		cfg:      cfg,
		initHost: hardware.Init,
		openEdgeWatcher: func(pin string, debounce time.Duration) (edgeSource, error) {
			return hardware.OpenEdgeWatcher(pin, debounce)
		},
		openLED: func(pin string) (statusLED, error) {
			return hardware.OpenLED(pin)
		},
		openSPI: func(port string) (spiBus, error) {
			return hardware.OpenSPI(port)
		},
	}

	sinks := display.Multi{display.NewConsole()}
	if cfg.Display.Listen != "" {
		a.hub = display.NewHub()
		sinks = append(sinks, a.hub)
	}
	a.display = sinks

	reporter, err := report.New(cfg.ReportConfig())
	if err != nil {
		return nil, err
	}
	a.reporter = reporter
	a.dispatcher = report.NewDispatcher(reporter, cfg.Report.Timeout)

	return a, nil
}

// run starts every sampler whose hardware came up and blocks until ctx is
// cancelled. A sampler that cannot be started is reported on its panel and
// does not stop the others.
func (a *app) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	hostErr := a.initHost()
	if hostErr != nil {
		logger.Error().Err(hostErr).Msg("Failed to initialize hardware drivers")
	}

	if a.cfg.Wind.Enabled {
		if hostErr != nil {
			a.display.Show(display.PanelWind, "There is no GPIO controller on this device.")
		} else if err := a.startWind(ctx, g); err != nil {
			logger.Error().Err(err).Msg("Wind sampler not started")
			a.display.Show(display.PanelWind, fmt.Sprintf("GPIO initialization failed: %v", err))
		}
	}

	if a.cfg.Temperature.Enabled {
		if hostErr != nil {
			a.display.Show(display.PanelTemperature, "SPI device not found")
		} else if err := a.startTemperature(ctx, g); err != nil {
			logger.Error().Err(err).Msg("Temperature sampler not started")
			a.display.Show(display.PanelTemperature, fmt.Sprintf("SPI device %s not found", a.cfg.Temperature.SPIPort))
		}
	}

	if a.hub != nil {
		g.Go(func() error {
			if err := a.hub.ListenAndServe(ctx, a.cfg.Display.Listen); err != nil {
				logger.Error().Err(err).Msg("Display server stopped")
			}
			return nil
		})
	}

	// keep the group alive until shutdown even when nothing else runs
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	return g.Wait()
}

func (a *app) startWind(ctx context.Context, g *errgroup.Group) error {
	cfg := a.cfg.Wind

	watcher, err := a.openEdgeWatcher(cfg.Pin, cfg.Debounce)
	if err != nil {
		return err
	}

	var led statusLED
	if cfg.LEDPin != "" {
		led, err = a.openLED(cfg.LEDPin)
		if err != nil {
			logger.Warn().Err(err).Str("pin", cfg.LEDPin).Msg("Status LED unavailable")
			led = nil
		} else {
			a.closers = append(a.closers, led.Close)
		}
	}

	a.display.Show(display.PanelWind, "GPIO pins initialized correctly.")

	counter := &wind.PulseCounter{}
	sampler := wind.NewSampler(counter, a.display, a.dispatcher, cfg.Interval)

	g.Go(func() error {
		return watcher.Run(ctx, func(edge hardware.Edge) {
			counter.HandleEdge(edge)
			if led != nil {
				mirrorEdge(led, edge)
			}
		})
	})
	g.Go(func() error {
		return sampler.Run(ctx)
	})

	return nil
}

// mirrorEdge lights the LED while the anemometer contact is closed (pin low).
func mirrorEdge(led statusLED, edge hardware.Edge) {
	var err error
	if edge == hardware.FallingEdge {
		err = led.On()
	} else {
		err = led.Off()
	}

	if err != nil {
		logger.Debug().Err(err).Msg("Failed to update status LED")
	}
}

func (a *app) startTemperature(ctx context.Context, g *errgroup.Group) error {
	cfg := a.cfg.Temperature

	bus, err := a.openSPI(cfg.SPIPort)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, bus.Close)

	sampler, err := temperature.NewSampler(temperature.NewMCP3008(bus), cfg.Channel, cfg.Window,
		a.display, a.dispatcher, cfg.Interval)
	if err != nil {
		return err
	}

	g.Go(func() error {
		return sampler.Run(ctx)
	})

	return nil
}

func (a *app) shutdown() {
	if !a.dispatcher.Wait(reportDrainTimeout) {
		logger.Warn().Dur("timeout", reportDrainTimeout).Msg("Reports still in flight at shutdown")
	}

	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	err = multierr.Append(err, a.reporter.Close())

	if err != nil {
		logger.ErrorWithCode(errors.New().Wrap(errors.ErrShutdownFailed, err)).Msg("Failed to release resources")
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func cleanupPID() {
	if err := pid.Remove(); err != nil {
		logger.Error().Err(err).Msg("Failed to remove PID file")
	}
}
