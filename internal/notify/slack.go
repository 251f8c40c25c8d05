// Package notify sends run reports to a Slack inbound webhook. The sink
// is modeled as a value that is always safe to call: when no webhook is
// configured, the noop sink drops messages silently.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/coinharbor/cryptobot/internal/domain"
	"github.com/coinharbor/cryptobot/internal/monitor"
)

// Sink delivers a text message to the configured notification target.
type Sink interface {
	Send(ctx context.Context, text string) error
}

// message is the Slack inbound-webhook payload.
type message struct {
	Text string `json:"text"`
}

// SlackSink posts messages to a Slack inbound webhook.
type SlackSink struct {
	webhookURL string
	httpClient *http.Client
	logger     *monitor.Logger
}

func NewSlackSink(httpClient *http.Client, webhookURL string, logger *monitor.Logger) *SlackSink {
	return &SlackSink{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Send posts {"text": text} to the webhook. Any status >= 300 is a
// NotificationError.
func (s *SlackSink) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(message{Text: text})
	if err != nil {
		return &domain.InternalError{Err: err}
	}

	s.logger.Debugf("webhook - request: %s", monitor.Truncate(string(body), 512))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return &domain.InternalError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return &domain.NotificationError{Err: err}
	}
	defer resp.Body.Close()

	responseBody, _ := io.ReadAll(resp.Body)
	s.logger.Debugf("webhook - raw response: %s", monitor.Truncate(string(responseBody), 512))

	if resp.StatusCode >= 300 {
		return &domain.NotificationError{StatusCode: resp.StatusCode}
	}

	return nil
}

// NoopSink drops every message.
type NoopSink struct{}

func (NoopSink) Send(context.Context, string) error {
	return nil
}

// NewSink returns a Slack sink for the webhook URL, or the noop sink when
// no URL is configured.
func NewSink(httpClient *http.Client, webhookURL string, logger *monitor.Logger) Sink {
	if webhookURL == "" {
		return NoopSink{}
	}
	return NewSlackSink(httpClient, webhookURL, logger)
}
