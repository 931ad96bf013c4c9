package wind

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/mutker/windsensor/internal/display"
	"codeberg.org/mutker/windsensor/internal/logger"
	"codeberg.org/mutker/windsensor/internal/report"
	"codeberg.org/mutker/windsensor/internal/schedule"
)

const (
	DefaultInterval = time.Second

	ReportKey = "Wind"
)

// Sampler turns the pulse count into a wind speed once per interval and
// reports it whenever it changes.
type Sampler struct {
	counter      *PulseCounter
	display      display.Sink
	reporter     report.Submitter
	interval     time.Duration
	lastReported float64
	log          logger.Logger
}

func NewSampler(counter *PulseCounter, sink display.Sink, reporter report.Submitter, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Sampler{
		counter:      counter,
		display:      sink,
		reporter:     reporter,
		interval:     interval,
		lastReported: -1,
		log:          logger.ForComponent("wind"),
	}
}

// Run samples until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) error {
	s.log.Info().Dur("interval", s.interval).Msg("Wind sampler started")
	defer s.log.Info().Msg("Wind sampler stopped")

	return schedule.Every(ctx, s.interval, false, func(context.Context) {
		s.Tick()
	})
}

// Tick drains the counter, updates the display and submits a report if the
// speed differs from the last one reported. It returns the computed speed.
func (s *Sampler) Tick() float64 {
	count := s.counter.Drain()
	speed := Speed(count)

	s.log.Debug().Uint64("count", count).Float64("speed", speed).Msg("Wind sampled")
	s.display.Show(display.PanelWind, fmt.Sprintf("Wind speed %s km/h", report.FormatValue(speed)))

	if speed != s.lastReported {
		s.lastReported = speed
		s.reporter.Submit(ReportKey, report.FormatValue(speed))
	}

	return speed
}
