package account_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/mock"
)

func TestBulkUpdate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	changes := []base.ItemChange{
		{Item: base.ItemID{ID: "item-1", ChangeKey: "ck-1"}, UpdatedFields: []string{"item:Subject"}},
	}
	updated := []base.ItemID{{ID: "item-1", ChangeKey: "ck-2"}}

	mockService.EXPECT().
		BulkUpdate(gomock.Any(), changes, base.DefaultUpdateOptions()).
		Return(updated, nil).
		Times(1)

	got, err := acct.BulkUpdate(changes, base.DefaultUpdateOptions())
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestBulkUpdateEmptyChangeSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No expectations registered: an empty change set must not reach the
	// service.
	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	got, err := acct.BulkUpdate(nil, base.DefaultUpdateOptions())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBulkUpdateInvalidOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	changes := []base.ItemChange{{Item: base.ItemID{ID: "item-1"}}}

	tests := []struct {
		name string
		opts base.UpdateOptions
	}{
		{
			name: "conflict resolution",
			opts: base.UpdateOptions{
				ConflictResolution:                    "Sometimes",
				MessageDisposition:                    base.SaveOnly,
				SendMeetingInvitationsOrCancellations: base.SendToNone,
			},
		},
		{
			name: "message disposition",
			opts: base.UpdateOptions{
				ConflictResolution:                    base.AutoResolve,
				MessageDisposition:                    "Shred",
				SendMeetingInvitationsOrCancellations: base.SendToNone,
			},
		},
		{
			name: "send meeting invitations",
			opts: base.UpdateOptions{
				ConflictResolution:                    base.AutoResolve,
				MessageDisposition:                    base.SaveOnly,
				SendMeetingInvitationsOrCancellations: "SendToSome",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := acct.BulkUpdate(changes, tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestBulkDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	ids := []base.ItemID{
		{ID: "item-1", ChangeKey: "ck-1"},
		{ID: "item-2", ChangeKey: "ck-2"},
	}
	results := []base.DeleteResult{
		{ID: ids[0], OK: true},
		{ID: ids[1], OK: false, Message: "The specified object was not found in the store."},
	}

	mockService.EXPECT().
		BulkDelete(gomock.Any(), ids, base.DefaultDeleteOptions()).
		Return(results, nil).
		Times(1)

	got, err := acct.BulkDelete(ids, base.DefaultDeleteOptions())
	require.NoError(t, err)
	assert.Equal(t, results, got)
}

func TestBulkDeleteEmptyIDList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	got, err := acct.BulkDelete(nil, base.DefaultDeleteOptions())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBulkDeleteInvalidOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	ids := []base.ItemID{{ID: "item-1"}}

	tests := []struct {
		name string
		opts base.DeleteOptions
	}{
		{
			name: "delete type",
			opts: base.DeleteOptions{
				DeleteType:               "Shred",
				SendMeetingCancellations: base.SendToNone,
				AffectedTaskOccurrences:  base.AllOccurrences,
			},
		},
		{
			name: "send meeting cancellations",
			opts: base.DeleteOptions{
				DeleteType: base.HardDelete,
				// Valid for updates but not for cancellations.
				SendMeetingCancellations: base.SendOnlyToChanged,
				AffectedTaskOccurrences:  base.AllOccurrences,
			},
		},
		{
			name: "affected task occurrences",
			opts: base.DeleteOptions{
				DeleteType:               base.HardDelete,
				SendMeetingCancellations: base.SendToNone,
				AffectedTaskOccurrences:  "SomeOccurrences",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := acct.BulkDelete(ids, tt.opts)
			assert.Error(t, err)
		})
	}
}
