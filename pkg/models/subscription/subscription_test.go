package subscription_test

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/mock"
	"github.com/quillmail/ewsbox/pkg/models/folder"
	"github.com/quillmail/ewsbox/pkg/models/subscription"
)

var inbox = &folder.Folder{ID: "inbox-1", DisplayName: "Inbox", Type: folder.Inbox}

func TestNewSubscription(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	mockService.EXPECT().
		Subscribe(gomock.Any(), "inbox-1", []base.EventType{base.NewMailEvent}, 5*time.Minute).
		Return(base.SubscriptionInfo{ID: "sub-1", Watermark: "wm-0"}, nil).
		Times(1)

	sub, err := subscription.NewSubscription(
		subscription.WithService(mockService),
		subscription.WithFolder(inbox),
		subscription.WithEvents(base.NewMailEvent),
		subscription.WithTimeout(5*time.Minute),
		subscription.WithLogger(mock.SetupLogger(t)),
	)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", sub.ID())
}

func TestNewSubscriptionDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	// With no explicit events every event type is requested, at the default
	// timeout.
	mockService.EXPECT().
		Subscribe(gomock.Any(), "inbox-1", base.AllEvents(), subscription.DefaultTimeout).
		Return(base.SubscriptionInfo{ID: "sub-1", Watermark: "wm-0"}, nil)

	_, err := subscription.NewSubscription(
		subscription.WithService(mockService),
		subscription.WithFolder(inbox),
		subscription.WithLogger(mock.SetupLogger(t)),
	)
	assert.NoError(t, err)
}

func TestNewSubscriptionValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	logger := mock.SetupLogger(t)

	tests := []struct {
		name    string
		options []subscription.SubscriptionOption
	}{
		{
			name: "missing service",
			options: []subscription.SubscriptionOption{
				subscription.WithFolder(inbox),
				subscription.WithLogger(logger),
			},
		},
		{
			name: "missing folder",
			options: []subscription.SubscriptionOption{
				subscription.WithService(mockService),
				subscription.WithLogger(logger),
			},
		},
		{
			name: "missing logger",
			options: []subscription.SubscriptionOption{
				subscription.WithService(mockService),
				subscription.WithFolder(inbox),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := subscription.NewSubscription(tt.options...)
			assert.Error(t, err)
		})
	}
}

func TestNewSubscriptionSubscribeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	mockService.EXPECT().
		Subscribe(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(base.SubscriptionInfo{}, errors.New("subscription limit reached"))

	_, err := subscription.NewSubscription(
		subscription.WithService(mockService),
		subscription.WithFolder(inbox),
		subscription.WithLogger(mock.SetupLogger(t)),
	)
	assert.Error(t, err)
}

func TestGetEventsAdvancesWatermark(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	mockService.EXPECT().
		Subscribe(gomock.Any(), "inbox-1", gomock.Any(), gomock.Any()).
		Return(base.SubscriptionInfo{ID: "sub-1", Watermark: "wm-0"}, nil)

	events := []base.Event{
		{Type: base.NewMailEvent, Watermark: "wm-1", ItemID: base.ItemID{ID: "item-1"}},
		{Type: base.ModifiedEvent, Watermark: "wm-2", ItemID: base.ItemID{ID: "item-2"}},
	}
	mockService.EXPECT().
		GetEvents(gomock.Any(), "sub-1", "wm-0").
		Return(events, "wm-2", nil)
	// The second poll resumes from the advanced watermark.
	mockService.EXPECT().
		GetEvents(gomock.Any(), "sub-1", "wm-2").
		Return(nil, "wm-2", nil)

	sub, err := subscription.NewSubscription(
		subscription.WithService(mockService),
		subscription.WithFolder(inbox),
		subscription.WithLogger(mock.SetupLogger(t)),
	)
	require.NoError(t, err)

	got, err := sub.GetEvents()
	require.NoError(t, err)
	assert.Equal(t, events, got)

	got, err = sub.GetEvents()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	mockService.EXPECT().
		Subscribe(gomock.Any(), "inbox-1", gomock.Any(), gomock.Any()).
		Return(base.SubscriptionInfo{ID: "sub-1", Watermark: "wm-0"}, nil)
	mockService.EXPECT().
		Unsubscribe(gomock.Any(), "sub-1").
		Return(nil).
		Times(1)

	sub, err := subscription.NewSubscription(
		subscription.WithService(mockService),
		subscription.WithFolder(inbox),
		subscription.WithLogger(mock.SetupLogger(t)),
	)
	require.NoError(t, err)
	assert.NoError(t, sub.Unsubscribe())
}
