package publishers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/salaryhelper/salaryhelper-client/internal/logger"
	"github.com/salaryhelper/salaryhelper-client/pkg/httpclient"
)

const webhookSnippetBytes = 256

// webhookSink posts each event as JSON. The event id doubles as the
// Idempotency-Key so receivers can drop retries.
type webhookSink struct {
	id      string
	method  string
	url     string
	headers map[string]string
	client  *resty.Client
	log     logger.Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q: http block missing", cfg.ID)
	}
	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	return &webhookSink{
		id:      cfg.ID,
		method:  cfg.HTTP.Method,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyHTTPClient(timeout),
		log:     logger.Ensure(log),
	}, nil
}

func (w *webhookSink) ID() string   { return w.id }
func (w *webhookSink) Type() string { return TypeHTTP }

func (w *webhookSink) Publish(ctx context.Context, evt Event) error {
	body, _, err := evt.encode()
	if err != nil {
		return err
	}

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeaders(w.headers).
		SetHeader("Content-Type", "application/json").
		SetHeader("Idempotency-Key", evt.ID).
		SetHeader("X-Event-Kind", evt.Kind).
		SetBody(body).
		Execute(w.method, w.url)
	if err == nil && resp.IsError() {
		text := resp.Body()
		if len(text) > webhookSnippetBytes {
			text = text[:webhookSnippetBytes]
		}
		err = fmt.Errorf("status %d: %s", resp.StatusCode(), strings.TrimSpace(string(text)))
	}
	if err != nil {
		err = fmt.Errorf("webhook %s %s: %w", w.method, w.url, err)
		reportDelivery(w.log, w, evt, nil, err)
		return err
	}
	reportDelivery(w.log, w, evt, resp.StatusCode(), nil)
	return nil
}
