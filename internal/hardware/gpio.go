package hardware

import (
	"context"
	"time"

	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/logger"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
)

// edgePollInterval bounds how long Run waits for an edge before it checks
// for cancellation again.
const edgePollInterval = 100 * time.Millisecond

// edgePin is the subset of gpio.PinIO the watcher needs.
type edgePin interface {
	Name() string
	WaitForEdge(timeout time.Duration) bool
	Read() gpio.Level
	Halt() error
}

// EdgeWatcher reports debounced transitions of one input pin.
type EdgeWatcher struct {
	pin      edgePin
	debounce time.Duration
	now      func() time.Time
	log      logger.Logger
}

// OpenEdgeWatcher configures pinName as a pulled-up input that reports both
// edges. Edges closer together than debounce are dropped.
func OpenEdgeWatcher(pinName string, debounce time.Duration) (*EdgeWatcher, error) {
	errFactory := errors.New()

	p := gpioreg.ByName(pinName)
	if p == nil {
		return nil, errFactory.WithData(ErrPinNotFound, pinName)
	}

	if err := p.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, errFactory.Wrap(ErrPinConfigFailed, err)
	}

	return newEdgeWatcher(p, debounce), nil
}

func newEdgeWatcher(pin edgePin, debounce time.Duration) *EdgeWatcher {
	return &EdgeWatcher{
		pin:      pin,
		debounce: debounce,
		now:      time.Now,
		log:      logger.ForComponent("gpio"),
	}
}

// Run calls handler for every accepted edge until ctx is cancelled, then
// halts the pin. The level read right after the edge decides its direction:
// low means the pin just fell.
func (w *EdgeWatcher) Run(ctx context.Context, handler EdgeHandler) error {
	defer func() {
		if err := w.pin.Halt(); err != nil {
			w.log.Debug().Err(err).Str("pin", w.pin.Name()).Msg("Failed to halt pin")
		}
	}()

	w.log.Info().Str("pin", w.pin.Name()).Dur("debounce", w.debounce).Msg("Watching pin for edges")

	var last time.Time
	for ctx.Err() == nil {
		if !w.pin.WaitForEdge(edgePollInterval) {
			continue
		}

		now := w.now()
		if !last.IsZero() && now.Sub(last) < w.debounce {
			continue
		}
		last = now

		if w.pin.Read() == gpio.Low {
			handler(FallingEdge)
		} else {
			handler(RisingEdge)
		}
	}

	return nil
}

type outPin interface {
	Out(l gpio.Level) error
}

// LED is an active-low indicator: driving the pin high turns it off.
type LED struct {
	pin outPin
}

// OpenLED configures pinName as an output and switches the LED off.
func OpenLED(pinName string) (*LED, error) {
	errFactory := errors.New()

	p := gpioreg.ByName(pinName)
	if p == nil {
		return nil, errFactory.WithData(ErrPinNotFound, pinName)
	}

	l := &LED{pin: p}
	if err := l.Off(); err != nil {
		return nil, err
	}

	return l, nil
}

func (l *LED) On() error {
	if err := l.pin.Out(gpio.Low); err != nil {
		return errors.New().Wrap(ErrPinConfigFailed, err)
	}
	return nil
}

func (l *LED) Off() error {
	if err := l.pin.Out(gpio.High); err != nil {
		return errors.New().Wrap(ErrPinConfigFailed, err)
	}
	return nil
}

// Close leaves the LED switched off.
func (l *LED) Close() error {
	return l.Off()
}
