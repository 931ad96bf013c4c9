package report

import (
	"context"
	"encoding/json"
	"time"

	"codeberg.org/mutker/windsensor/internal/errors"
	"codeberg.org/mutker/windsensor/internal/logger"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

const (
	mqttKeepAlive         = 60 * time.Second
	mqttPingTimeout       = 10 * time.Second
	mqttMaxReconnect      = 30 * time.Second
	mqttDisconnectQuiesce = 250 // milliseconds
)

// MQTTReporter publishes each message as JSON to <topic>/<key>.
type MQTTReporter struct {
	client mqtt.Client
	topic  string
}

// NewMQTTReporter starts connecting in the background. Messages published
// before the broker is reachable wait up to the report timeout and then fail.
func NewMQTTReporter(cfg Config) (*MQTTReporter, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBroker)
	opts.SetClientID("windsensor-" + uuid.NewString())
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetKeepAlive(mqttKeepAlive)
	opts.SetPingTimeout(mqttPingTimeout)
	opts.SetConnectTimeout(cfg.Timeout)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetMaxReconnectInterval(mqttMaxReconnect)

	opts.OnConnect = func(_ mqtt.Client) {
		logger.Info().Str("broker", cfg.MQTTBroker).Msg("MQTT connected")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		logger.Warn().Err(err).Str("broker", cfg.MQTTBroker).Msg("MQTT connection lost, reconnecting")
	}

	client := mqtt.NewClient(opts)
	client.Connect()

	return newMQTTReporter(client, cfg.MQTTTopic), nil
}

func newMQTTReporter(client mqtt.Client, topic string) *MQTTReporter {
	return &MQTTReporter{
		client: client,
		topic:  topic,
	}
}

func (r *MQTTReporter) Report(ctx context.Context, msg Message) error {
	errFactory := errors.New()

	payload, err := json.Marshal(msg)
	if err != nil {
		return errFactory.Wrap(ErrMarshalFailed, err)
	}

	token := r.client.Publish(r.topicFor(msg.Key), 0, false, payload)
	select {
	case <-token.Done():
		if err := token.Error(); err != nil {
			return errFactory.Wrap(ErrPublishFailed, err)
		}
		return nil
	case <-ctx.Done():
		return errFactory.Wrap(ErrOperationTimeout, ctx.Err())
	}
}

func (r *MQTTReporter) topicFor(key string) string {
	return r.topic + "/" + key
}

func (r *MQTTReporter) Close() error {
	r.client.Disconnect(mqttDisconnectQuiesce)
	return nil
}
