package report

import (
	"time"

	"codeberg.org/mutker/windsensor/internal/errors"
)

const (
	defaultURL        = "http://192.168.178.37/api/queue/windsensor"
	defaultTimeout    = 10 * time.Second
	defaultMQTTBroker = "tcp://localhost:1883"
	defaultMQTTTopic  = "windsensor"
)

type Config struct {
	Transport  string
	URL        string
	Username   string
	Password   string
	Timeout    time.Duration
	MQTTBroker string
	MQTTTopic  string
}

func DefaultConfig() Config {
	return Config{
		Transport:  TransportHTTP,
		URL:        defaultURL,
		Timeout:    defaultTimeout,
		MQTTBroker: defaultMQTTBroker,
		MQTTTopic:  defaultMQTTTopic,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	if c.Timeout <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, "report timeout must be positive")
	}

	switch c.Transport {
	case TransportHTTP:
		if c.URL == "" {
			return errFactory.WithData(ErrInvalidConfig, "report url is required for http transport")
		}
	case TransportMQTT:
		if c.MQTTBroker == "" || c.MQTTTopic == "" {
			return errFactory.WithData(ErrInvalidConfig, "mqtt broker and topic are required for mqtt transport")
		}
	case TransportNone:
	default:
		return errFactory.WithData(ErrUnknownTransport, c.Transport)
	}

	return nil
}
