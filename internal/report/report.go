package report

import (
	"context"
	"strconv"

	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/logger"
)

// New builds the reporter selected by cfg.Transport.
func New(cfg Config) (Reporter, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Transport {
	case TransportHTTP:
		return NewHTTPReporter(cfg), nil
	case TransportMQTT:
		return NewMQTTReporter(cfg)
	case TransportNone:
		logger.Debug().Msg("Reporting disabled, using no-op reporter")
		return &noopReporter{}, nil
	default:
		return nil, errFactory.WithData(ErrUnknownTransport, cfg.Transport)
	}
}

// FormatValue renders a reading with two decimals.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

type noopReporter struct{}

func (*noopReporter) Report(_ context.Context, _ Message) error {
	return nil
}

func (*noopReporter) Close() error {
	return nil
}
