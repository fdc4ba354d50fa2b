// Package subscription wraps the service's pull-subscription calls behind a
// watermark-advancing handle.
package subscription

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/models/folder"
)

// DefaultTimeout is the server-side idle timeout requested for new
// subscriptions.
const DefaultTimeout = 20 * time.Minute

// Subscription is a live pull subscription on a single folder. GetEvents
// advances the watermark; Unsubscribe tears the subscription down.
type Subscription struct {
	svc     base.Service
	fld     *folder.Folder
	events  []base.EventType
	timeout time.Duration
	logger  *slog.Logger
	ctx     context.Context

	info base.SubscriptionInfo
}

type SubscriptionOption func(*Subscription) error

// NewSubscription subscribes immediately; only pull subscriptions are
// supported.
func NewSubscription(opts ...SubscriptionOption) (*Subscription, error) {
	sub := Subscription{timeout: DefaultTimeout}
	for _, opt := range opts {
		err := opt(&sub)
		if err != nil {
			return nil, err
		}
	}

	if sub.svc == nil {
		return nil, errors.New("requires service")
	}
	if sub.fld == nil {
		return nil, errors.New("requires folder")
	}
	if sub.logger == nil {
		return nil, errors.New("requires slogger")
	}
	if sub.ctx == nil {
		sub.ctx = context.Background()
	}
	if len(sub.events) == 0 {
		sub.events = base.AllEvents()
	}

	info, err := sub.svc.Subscribe(sub.ctx, sub.fld.ID, sub.events, sub.timeout)
	if err != nil {
		return nil, err
	}
	sub.info = info

	sub.logger.Debug("Subscribed",
		slog.String("folder", sub.fld.DisplayName),
		slog.String("subscription", info.ID),
	)
	return &sub, nil
}

func WithService(svc base.Service) SubscriptionOption {
	return func(s *Subscription) error {
		s.svc = svc
		return nil
	}
}

func WithFolder(f *folder.Folder) SubscriptionOption {
	return func(s *Subscription) error {
		s.fld = f
		return nil
	}
}

func WithEvents(events ...base.EventType) SubscriptionOption {
	return func(s *Subscription) error {
		s.events = events
		return nil
	}
}

func WithTimeout(timeout time.Duration) SubscriptionOption {
	return func(s *Subscription) error {
		s.timeout = timeout
		return nil
	}
}

func WithLogger(logger *slog.Logger) SubscriptionOption {
	return func(s *Subscription) error {
		s.logger = logger
		return nil
	}
}

func WithCtx(ctx context.Context) SubscriptionOption {
	return func(s *Subscription) error {
		s.ctx = ctx
		return nil
	}
}

// ID returns the server-side subscription ID.
func (s *Subscription) ID() string {
	return s.info.ID
}

// GetEvents fetches pending events and advances the watermark.
func (s *Subscription) GetEvents() ([]base.Event, error) {
	events, watermark, err := s.svc.GetEvents(s.ctx, s.info.ID, s.info.Watermark)
	if err != nil {
		return nil, err
	}
	s.info.Watermark = watermark
	return events, nil
}

// Unsubscribe tears down the server-side subscription.
func (s *Subscription) Unsubscribe() error {
	return s.svc.Unsubscribe(s.ctx, s.info.ID)
}
