package temperature

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/mutker/windsensor/internal/average"
	"codeberg.org/mutker/windsensor/internal/display"
	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/logger"
	"codeberg.org/mutker/windsensor/internal/report"
	"codeberg.org/mutker/windsensor/internal/schedule"
)

const (
	DefaultInterval = 60 * time.Second
	DefaultWindow   = 10
	DefaultChannel  = 0

	ReportKey = "Temperature"
)

// Reader is the ADC side of the sampler.
type Reader interface {
	ReadChannel(channel int) (int, error)
}

// Reading is the outcome of one successful tick.
type Reading struct {
	Raw        int
	Celsius    float64
	Fahrenheit float64
	Average    float64
}

// Sampler reads the sensor once per interval, folds the value into a moving
// average and reports the average.
type Sampler struct {
	adc      Reader
	channel  int
	average  *average.MovingAverage
	display  display.Sink
	reporter report.Submitter
	interval time.Duration
	log      logger.Logger
}

func NewSampler(adc Reader, channel, window int, sink display.Sink, reporter report.Submitter, interval time.Duration) (*Sampler, error) {
	if interval <= 0 {
		return nil, errors.New().WithData(errors.ErrInvalidInterval, interval.String())
	}

	avg, err := average.NewMovingAverage(window)
	if err != nil {
		return nil, err
	}

	return &Sampler{
		adc:      adc,
		channel:  channel,
		average:  avg,
		display:  sink,
		reporter: reporter,
		interval: interval,
		log:      logger.ForComponent("temperature"),
	}, nil
}

// Run samples immediately and then once per interval until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) error {
	s.log.Info().
		Dur("interval", s.interval).
		Int("window", s.average.Window()).
		Msg("Temperature sampler started")
	defer s.log.Info().Msg("Temperature sampler stopped")

	return schedule.Every(ctx, s.interval, true, func(context.Context) {
		if _, err := s.Tick(); err != nil {
			s.log.Warn().Err(err).Msg("Temperature read failed, skipping sample")
		}
	})
}

// Tick performs one sample. A read error leaves the average, the display and
// the endpoint untouched.
func (s *Sampler) Tick() (Reading, error) {
	raw, err := s.adc.ReadChannel(s.channel)
	if err != nil {
		return Reading{}, err
	}

	r := Reading{
		Raw:     raw,
		Celsius: Celsius(raw),
	}
	r.Fahrenheit = Fahrenheit(r.Celsius)

	s.average.Add(r.Celsius)
	avg, ok := s.average.Average()
	r.Average = avg

	s.log.Debug().
		Int("raw", raw).
		Float64("celsius", r.Celsius).
		Float64("average", avg).
		Int("samples", s.average.Len()).
		Msg("Temperature sampled")

	s.display.Show(display.PanelTemperature, fmt.Sprintf("The temperature is %s Celsius\nand %s Fahrenheit",
		report.FormatValue(r.Celsius), report.FormatValue(r.Fahrenheit)))

	if !ok {
		return r, nil
	}

	s.display.Show(display.PanelAverage, fmt.Sprintf("Average temperature is %s Celsius", report.FormatValue(avg)))
	s.reporter.Submit(ReportKey, report.FormatValue(avg))

	return r, nil
}
