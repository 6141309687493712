package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/keystead/identity-admin/pkg/slogx"
)

// DefaultNotifyTimeout bounds each webhook delivery attempt.
const DefaultNotifyTimeout = 10 * time.Second

// Notifier posts a small JSON document to a downstream webhook whenever an
// account is confirmed. Delivery is best effort: it runs on its own
// goroutine with its own deadline, failures are logged and never surfaced
// to the caller of the confirming operation.
type Notifier struct {
	// URL of the downstream webhook. Empty disables dispatch entirely.
	URL string

	// Timeout per delivery attempt. DefaultNotifyTimeout when zero.
	Timeout time.Duration

	// HTTPClient used for delivery. http.DefaultClient when nil.
	HTTPClient *http.Client

	wg sync.WaitGroup
}

type confirmedPayload struct {
	Name      string `json:"name"`
	AgentType struct {
		Code int `json:"code"`
	} `json:"agentType"`
}

// Dispatch sends the confirmation notice asynchronously. The goroutine owns
// its own context so cancellation of the triggering request cannot abort a
// delivery already in flight.
func (n *Notifier) Dispatch(ctx context.Context, name string, agentType int) {
	if n.URL == "" {
		return
	}

	// Detach from the request context but keep its logger.
	l := slogx.FromContext(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.deliver(l, name, agentType)
	}()
}

// Wait blocks until all in-flight deliveries finish. Used on shutdown and
// in tests.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) deliver(l *slog.Logger, name string, agentType int) {
	timeout := n.Timeout
	if timeout == 0 {
		timeout = DefaultNotifyTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	payload := confirmedPayload{Name: name}
	payload.AgentType.Code = agentType
	body, err := json.Marshal(payload)
	if err != nil {
		l.Error("failed to encode confirmation notice", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.URL, bytes.NewReader(body))
	if err != nil {
		l.Error("failed to build confirmation notice", "error", err, "url", n.URL)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	client := n.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		l.Warn("confirmation notice delivery failed", "error", err, "url", n.URL)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		l.Warn("confirmation notice rejected", "status", resp.StatusCode, "url", n.URL)
		return
	}
	l.Info("confirmation notice delivered", "name", name)
}
