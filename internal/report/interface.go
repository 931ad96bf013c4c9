package report

import "context"

// Message is the payload sent to the remote endpoint.
type Message struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

// Reporter transmits a single message. Implementations return an error on
// failure; callers decide whether to care.
type Reporter interface {
	Report(ctx context.Context, msg Message) error
	Close() error
}

// Submitter accepts a named value for best-effort delivery. Submit never
// blocks on the network and never fails.
type Submitter interface {
	Submit(key, value string)
}

const (
	TransportHTTP = "http"
	TransportMQTT = "mqtt"
	TransportNone = "none"
)
