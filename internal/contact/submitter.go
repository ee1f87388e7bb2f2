package contact

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultSimulatedDelay matches the latency of the original fake send.
const DefaultSimulatedDelay = 2 * time.Second

// Submitter accepts contact form submissions.
type Submitter interface {
	// Submit validates f and delivers it. Validation failures are returned
	// as FieldErrors.
	Submit(ctx context.Context, f Form) (*Message, error)
}

// Notifier is told about every stored message.
type Notifier interface {
	NotifyContact(ctx context.Context, m *Message) error
}

// StoreSubmitter persists submissions and notifies the site owner.
type StoreSubmitter struct {
	store    *Store
	notifier Notifier
	logger   *zap.Logger
}

// NewStoreSubmitter creates a submitter backed by store. notifier may be nil.
func NewStoreSubmitter(store *Store, notifier Notifier, logger *zap.Logger) *StoreSubmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreSubmitter{store: store, notifier: notifier, logger: logger}
}

// Submit validates and stores the form. A failed notification is logged and
// does not fail the submission.
func (s *StoreSubmitter) Submit(ctx context.Context, f Form) (*Message, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	m, err := s.store.Create(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("storing contact message: %w", err)
	}
	s.logger.Info("contact message stored",
		zap.String("id", m.ID),
		zap.String("email", m.Email),
		zap.Bool("newsletter", m.Newsletter))

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, m); err != nil {
			s.logger.Warn("contact notification failed", zap.String("id", m.ID), zap.Error(err))
		}
	}
	return m, nil
}

// SimulatedSubmitter validates, waits, logs the submission and stores
// nothing. It stands in for a real backend during development.
type SimulatedSubmitter struct {
	Delay  time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewSimulatedSubmitter creates a submitter that waits delay before
// succeeding. A negative delay means no wait; zero selects the default.
func NewSimulatedSubmitter(delay time.Duration, logger *zap.Logger) *SimulatedSubmitter {
	if delay == 0 {
		delay = DefaultSimulatedDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulatedSubmitter{Delay: delay, logger: logger, now: time.Now}
}

// Submit returns ctx.Err() if the context ends before the delay elapses.
func (s *SimulatedSubmitter) Submit(ctx context.Context, f Form) (*Message, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.logger.Info("simulated contact submission",
		zap.String("name", f.Name),
		zap.String("email", f.Email),
		zap.String("subject", f.Subject),
		zap.String("message", f.Message))

	now := s.now().UTC()
	return &Message{
		Name:       f.Name,
		Email:      f.Email,
		Subject:    f.Subject,
		Body:       f.Message,
		Newsletter: f.Newsletter,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
