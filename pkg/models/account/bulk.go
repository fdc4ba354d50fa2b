package account

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/quillmail/ewsbox/pkg/base"
)

// BulkUpdate updates items across folders. Option arguments are validated
// against the fixed choice sets before the remote call; an empty change set
// returns an empty result without one.
func (a *Account) BulkUpdate(changes []base.ItemChange, opts base.UpdateOptions) ([]base.ItemID, error) {
	if !containsChoice(base.ConflictResolutionChoices, opts.ConflictResolution) {
		return nil, errors.Errorf("invalid conflict resolution %q", opts.ConflictResolution)
	}
	if !containsChoice(base.MessageDispositionChoices, opts.MessageDisposition) {
		return nil, errors.Errorf("invalid message disposition %q", opts.MessageDisposition)
	}
	if !containsChoice(base.SendMeetingInvitationsAndCancellationsChoices, opts.SendMeetingInvitationsOrCancellations) {
		return nil, errors.Errorf("invalid send meeting invitations or cancellations %q", opts.SendMeetingInvitationsOrCancellations)
	}

	a.logger.Debug("Updating items",
		slog.String("account", a.Address),
		slog.String("conflict_resolution", string(opts.ConflictResolution)),
		slog.String("message_disposition", string(opts.MessageDisposition)),
		slog.String("send_meeting_invitations", string(opts.SendMeetingInvitationsOrCancellations)),
	)

	if len(changes) == 0 {
		return []base.ItemID{}, nil
	}
	return a.svc.BulkUpdate(a.ctx, changes, opts)
}

// BulkDelete deletes items by ID. Option arguments are validated against the
// fixed choice sets before the remote call; an empty ID list returns an empty
// result without one.
func (a *Account) BulkDelete(ids []base.ItemID, opts base.DeleteOptions) ([]base.DeleteResult, error) {
	if !containsChoice(base.DeleteTypeChoices, opts.DeleteType) {
		return nil, errors.Errorf("invalid delete type %q", opts.DeleteType)
	}
	if !containsChoice(base.SendMeetingCancellationsChoices, opts.SendMeetingCancellations) {
		return nil, errors.Errorf("invalid send meeting cancellations %q", opts.SendMeetingCancellations)
	}
	if !containsChoice(base.AffectedTaskOccurrencesChoices, opts.AffectedTaskOccurrences) {
		return nil, errors.Errorf("invalid affected task occurrences %q", opts.AffectedTaskOccurrences)
	}

	a.logger.Debug("Deleting items",
		slog.String("account", a.Address),
		slog.String("delete_type", string(opts.DeleteType)),
		slog.String("send_meeting_cancellations", string(opts.SendMeetingCancellations)),
		slog.String("affected_task_occurrences", string(opts.AffectedTaskOccurrences)),
	)

	if len(ids) == 0 {
		return []base.DeleteResult{}, nil
	}
	return a.svc.BulkDelete(a.ctx, ids, opts)
}

func containsChoice[T comparable](choices []T, v T) bool {
	for _, c := range choices {
		if c == v {
			return true
		}
	}
	return false
}
