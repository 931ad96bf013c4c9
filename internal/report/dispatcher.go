package report

import (
	"context"
	"sync"
	"time"

	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/logger"
)

// Dispatcher sends every submitted value on its own goroutine so a slow or
// failing endpoint never holds up a sampler. Failures are logged and dropped.
type Dispatcher struct {
	reporter Reporter
	timeout  time.Duration
	log      logger.Logger
	wg       sync.WaitGroup
}

func NewDispatcher(reporter Reporter, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Dispatcher{
		reporter: reporter,
		timeout:  timeout,
		log:      logger.ForComponent("report"),
	}
}

func (d *Dispatcher) Submit(key, value string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		if err := d.send(Message{Key: key, Value: value}); err != nil {
			d.log.Warn().Err(err).Str("key", key).Str("value", value).Msg("Report failed")
			return
		}
		d.log.Debug().Str("key", key).Str("value", value).Msg("Report sent")
	}()
}

func (d *Dispatcher) send(msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New().WithData(ErrReporterPanic, r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	return d.reporter.Report(ctx, msg)
}

// Wait blocks until in-flight reports finish or timeout elapses. It reports
// whether everything finished.
func (d *Dispatcher) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
