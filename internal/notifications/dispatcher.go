package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/portfolio/internal/contact"
)

// MaxAttempts is how many times Retry will try a notification before
// leaving it for manual handling.
const MaxAttempts = 5

// Dispatcher stores owner notifications and pushes them to webhooks.
type Dispatcher struct {
	store    *Store
	webhooks []string
	client   *http.Client
	logger   *zap.Logger
}

// NewDispatcher returns a Dispatcher that posts to each webhook URL.
// With no webhooks notifications are only stored and stay pending.
func NewDispatcher(store *Store, webhooks []string, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		store:    store,
		webhooks: append([]string(nil), webhooks...),
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger,
	}
}

// Dispatch persists n and delivers it. Every webhook is tried even when an
// earlier one fails; the first failure is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, n *Notification) error {
	if err := d.store.Create(ctx, n); err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}
	return d.deliver(ctx, n)
}

// NotifyContact announces a new contact message. It satisfies
// contact.Notifier.
func (d *Dispatcher) NotifyContact(ctx context.Context, m *contact.Message) error {
	return d.Dispatch(ctx, &Notification{
		Type:    TypeContactReceived,
		Title:   fmt.Sprintf("New message from %s", m.Name),
		Message: fmt.Sprintf("%s <%s>: %s", m.Name, m.Email, m.Subject),
		Source:  m.ID,
	})
}

// Retry re-sends pending notifications that have not used up MaxAttempts.
// It returns how many were delivered; webhook failures are logged and
// counted on the notification, not returned.
func (d *Dispatcher) Retry(ctx context.Context) (int, error) {
	if len(d.webhooks) == 0 {
		return 0, nil
	}
	pending, err := d.store.GetPending(ctx)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for i := range pending {
		n := &pending[i]
		if n.Attempts >= MaxAttempts {
			continue
		}
		if err := d.deliver(ctx, n); err != nil {
			if ctx.Err() != nil {
				return delivered, ctx.Err()
			}
			continue
		}
		delivered++
	}
	return delivered, nil
}

func (d *Dispatcher) deliver(ctx context.Context, n *Notification) error {
	if len(d.webhooks) == 0 {
		return nil
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshalling notification: %w", err)
	}

	var firstErr error
	for _, url := range d.webhooks {
		if err := d.SendWebhook(ctx, url, payload); err != nil {
			d.logger.Warn("webhook delivery failed",
				zap.String("notification", n.ID), zap.String("url", url), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	lastError := ""
	if firstErr != nil {
		lastError = firstErr.Error()
	}
	if err := d.store.RecordAttempt(ctx, n.ID, lastError); err != nil {
		return err
	}
	n.Attempts++
	n.LastError = lastError
	if firstErr != nil {
		return firstErr
	}

	if err := d.store.MarkDelivered(ctx, n.ID); err != nil {
		return err
	}
	n.Delivered = true
	return nil
}

// SendWebhook POSTs payload to url; any status >= 300 is an error.
func (d *Dispatcher) SendWebhook(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "portfolio-notifier")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
