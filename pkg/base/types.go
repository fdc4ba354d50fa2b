package base

import (
	"context"
	"time"

	"github.com/quillmail/ewsbox/pkg/models/folder"
)

// FolderListFile is where the classified folder directory is serialized.
const FolderListFile = "folders.json"

const (
	UPTRACE_SERVICE     = "ewsbox"
	UPTRACE_DSN_ENV_VAR = "UPTRACE_DSN"
)

// AccessType selects how the service authenticates folder and item access.
type AccessType string

const (
	// Delegate access uses the account's own credentials.
	Delegate AccessType = "delegate"
	// Impersonation access uses a service user acting on the account's behalf.
	Impersonation AccessType = "impersonation"
)

// Depth selects shallow (immediate children) or deep (full subtree) traversal.
type Depth string

const (
	Shallow Depth = "Shallow"
	Deep    Depth = "Deep"
)

// ItemID identifies a remote item together with its change key.
type ItemID struct {
	ID        string `json:"id"`
	ChangeKey string `json:"changeKey"`
}

// ItemChange names an item and the fields that have changed on it.
type ItemChange struct {
	Item          ItemID   `json:"item"`
	UpdatedFields []string `json:"updatedFields"`
}

// DeleteResult reports the outcome of deleting a single item.
type DeleteResult struct {
	ID      ItemID `json:"id"`
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

// ExportedItem pairs an item ID with its opaque exported payload.
type ExportedItem struct {
	ID   ItemID `json:"id"`
	Data []byte `json:"data"`
}

// ItemUpload pairs a target folder with an opaque payload to upload.
type ItemUpload struct {
	FolderID string `json:"folderId"`
	Data     []byte `json:"data"`
}

// ConflictResolution choices for bulk updates.
type ConflictResolution string

const (
	NeverOverwrite  ConflictResolution = "NeverOverwrite"
	AutoResolve     ConflictResolution = "AutoResolve"
	AlwaysOverwrite ConflictResolution = "AlwaysOverwrite"
)

// MessageDisposition choices for bulk updates of message items.
type MessageDisposition string

const (
	SaveOnly        MessageDisposition = "SaveOnly"
	SendOnly        MessageDisposition = "SendOnly"
	SendAndSaveCopy MessageDisposition = "SendAndSaveCopy"
)

// SendMeetingInvitations choices for bulk operations on calendar items.
type SendMeetingInvitations string

const (
	SendToNone               SendMeetingInvitations = "SendToNone"
	SendOnlyToAll            SendMeetingInvitations = "SendOnlyToAll"
	SendOnlyToChanged        SendMeetingInvitations = "SendOnlyToChanged"
	SendToAllAndSaveCopy     SendMeetingInvitations = "SendToAllAndSaveCopy"
	SendToChangedAndSaveCopy SendMeetingInvitations = "SendToChangedAndSaveCopy"
)

// DeleteType choices for bulk deletes.
type DeleteType string

const (
	HardDelete         DeleteType = "HardDelete"
	SoftDelete         DeleteType = "SoftDelete"
	MoveToDeletedItems DeleteType = "MoveToDeletedItems"
)

// AffectedTaskOccurrences choices for bulk deletes of recurring tasks.
type AffectedTaskOccurrences string

const (
	AllOccurrences          AffectedTaskOccurrences = "AllOccurrences"
	SpecifiedOccurrenceOnly AffectedTaskOccurrences = "SpecifiedOccurrenceOnly"
)

var (
	ConflictResolutionChoices = []ConflictResolution{NeverOverwrite, AutoResolve, AlwaysOverwrite}
	MessageDispositionChoices = []MessageDisposition{SaveOnly, SendOnly, SendAndSaveCopy}
	SendMeetingInvitationsAndCancellationsChoices = []SendMeetingInvitations{
		SendToNone, SendOnlyToAll, SendOnlyToChanged, SendToAllAndSaveCopy, SendToChangedAndSaveCopy,
	}
	SendMeetingCancellationsChoices = []SendMeetingInvitations{SendToNone, SendOnlyToAll, SendToAllAndSaveCopy}
	DeleteTypeChoices               = []DeleteType{HardDelete, SoftDelete, MoveToDeletedItems}
	AffectedTaskOccurrencesChoices  = []AffectedTaskOccurrences{AllOccurrences, SpecifiedOccurrenceOnly}
)

// UpdateOptions control a bulk update call.
type UpdateOptions struct {
	ConflictResolution                    ConflictResolution
	MessageDisposition                    MessageDisposition
	SendMeetingInvitationsOrCancellations SendMeetingInvitations
	SuppressReadReceipts                  bool
}

// DefaultUpdateOptions mirror the server-side defaults.
func DefaultUpdateOptions() UpdateOptions {
	return UpdateOptions{
		ConflictResolution:                    AutoResolve,
		MessageDisposition:                    SaveOnly,
		SendMeetingInvitationsOrCancellations: SendToNone,
		SuppressReadReceipts:                  true,
	}
}

// DeleteOptions control a bulk delete call.
type DeleteOptions struct {
	DeleteType               DeleteType
	SendMeetingCancellations SendMeetingInvitations
	AffectedTaskOccurrences  AffectedTaskOccurrences
	SuppressReadReceipts     bool
}

// DefaultDeleteOptions mirror the server-side defaults.
func DefaultDeleteOptions() DeleteOptions {
	return DeleteOptions{
		DeleteType:               HardDelete,
		SendMeetingCancellations: SendToNone,
		AffectedTaskOccurrences:  SpecifiedOccurrenceOnly,
		SuppressReadReceipts:     true,
	}
}

// EventType names a mailbox change notification kind.
type EventType string

const (
	CopiedEvent          EventType = "CopiedEvent"
	CreatedEvent         EventType = "CreatedEvent"
	DeletedEvent         EventType = "DeletedEvent"
	ModifiedEvent        EventType = "ModifiedEvent"
	MovedEvent           EventType = "MovedEvent"
	NewMailEvent         EventType = "NewMailEvent"
	FreeBusyChangedEvent EventType = "FreeBusyChangedEvent"
)

// AllEvents lists every event type a subscription can request.
func AllEvents() []EventType {
	return []EventType{
		CopiedEvent,
		CreatedEvent,
		DeletedEvent,
		ModifiedEvent,
		MovedEvent,
		NewMailEvent,
		FreeBusyChangedEvent,
	}
}

// Event is a single change notification from a pull subscription.
type Event struct {
	Type      EventType `json:"type"`
	Watermark string    `json:"watermark"`
	ItemID    ItemID    `json:"itemId,omitempty"`
	FolderID  string    `json:"folderId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SubscriptionInfo identifies a server-side pull subscription.
type SubscriptionInfo struct {
	ID        string `json:"id"`
	Watermark string `json:"watermark"`
}

// Service is an interface to abstract the remote protocol operations used.
// Implementations translate these calls to the wire protocol. Errors from the
// server are classified with ErrFolderNotFound and ErrAccessDenied where the
// resolver needs to distinguish them, and passed through opaquely otherwise.
type Service interface {
	GetFolderByDistinguishedID(ctx context.Context, t folder.WellKnownType) (*folder.Folder, error)
	ListChildFolders(ctx context.Context, parent *folder.Folder, depth Depth) ([]*folder.Folder, error)
	ProbeQuery(ctx context.Context, f *folder.Folder) error
	BulkUpdate(ctx context.Context, changes []ItemChange, opts UpdateOptions) ([]ItemID, error)
	BulkDelete(ctx context.Context, ids []ItemID, opts DeleteOptions) ([]DeleteResult, error)
	ExportItems(ctx context.Context, ids []ItemID) ([]ExportedItem, error)
	UploadItems(ctx context.Context, uploads []ItemUpload) ([]ItemID, error)
	Subscribe(ctx context.Context, folderID string, events []EventType, timeout time.Duration) (SubscriptionInfo, error)
	Unsubscribe(ctx context.Context, subscriptionID string) error
	GetEvents(ctx context.Context, subscriptionID, watermark string) ([]Event, string, error)
}
