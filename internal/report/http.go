package report

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"codeberg.org/mutker/windsensor/internal/errors"
)

// HTTPReporter posts each message as JSON to a fixed URL.
type HTTPReporter struct {
	client   *http.Client
	url      string
	username string
	password string
}

func NewHTTPReporter(cfg Config) *HTTPReporter {
	return &HTTPReporter{
		client:   &http.Client{Timeout: cfg.Timeout},
		url:      cfg.URL,
		username: cfg.Username,
		password: cfg.Password,
	}
}

func (r *HTTPReporter) Report(ctx context.Context, msg Message) error {
	errFactory := errors.New()

	body, err := json.Marshal(msg)
	if err != nil {
		return errFactory.Wrap(ErrMarshalFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return errFactory.Wrap(ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if r.username != "" {
		req.SetBasicAuth(r.username, r.password)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return errFactory.Wrap(ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errFactory.WithData(ErrUnexpectedStatus, resp.Status)
	}

	return nil
}

func (r *HTTPReporter) Close() error {
	r.client.CloseIdleConnections()
	return nil
}
