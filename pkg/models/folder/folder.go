package folder

// WellKnownType names the mailbox role a folder plays. Every mailbox is
// expected to have at most one canonical folder per type; folders that match
// no known role are tagged Other.
type WellKnownType string

const (
	Root                      WellKnownType = "root"
	Calendar                  WellKnownType = "calendar"
	DeletedItems              WellKnownType = "deleteditems"
	Drafts                    WellKnownType = "drafts"
	Inbox                     WellKnownType = "inbox"
	Outbox                    WellKnownType = "outbox"
	SentItems                 WellKnownType = "sentitems"
	JunkEmail                 WellKnownType = "junkemail"
	Tasks                     WellKnownType = "tasks"
	Contacts                  WellKnownType = "contacts"
	RecoverableItemsRoot      WellKnownType = "recoverableitemsroot"
	RecoverableItemsDeletions WellKnownType = "recoverableitemsdeletions"
	Other                     WellKnownType = "other"
)

// TopOfInformationStore is a container folder available in some accounts. It
// only contains folders owned by the account, so its presence lets discovery
// skip shared and delegated folders injected at the top level.
const TopOfInformationStore = "Top of Information Store"

// WellKnownTypes returns every known type, Other included, in a stable order.
func WellKnownTypes() []WellKnownType {
	return []WellKnownType{
		Root,
		Calendar,
		DeletedItems,
		Drafts,
		Inbox,
		Outbox,
		SentItems,
		JunkEmail,
		Tasks,
		Contacts,
		RecoverableItemsRoot,
		RecoverableItemsDeletions,
		Other,
	}
}

// ParseWellKnownType maps a wire or CLI name to a WellKnownType.
func ParseWellKnownType(name string) (WellKnownType, bool) {
	for _, t := range WellKnownTypes() {
		if string(t) == name {
			return t, true
		}
	}
	return Other, false
}

// canonicalNames maps each type to the display name the server uses when the
// folder has not been renamed. Used only for classification, never as the
// authoritative default-folder lookup.
var canonicalNames = map[string]WellKnownType{
	"Calendar":          Calendar,
	"Deleted Items":     DeletedItems,
	"Drafts":            Drafts,
	"Inbox":             Inbox,
	"Outbox":            Outbox,
	"Sent Items":        SentItems,
	"Junk Email":        JunkEmail,
	"Tasks":             Tasks,
	"Contacts":          Contacts,
	"Recoverable Items": RecoverableItemsRoot,
	"Deletions":         RecoverableItemsDeletions,
}

// Folder is a remote folder entity as reported by the service.
type Folder struct {
	ID            string        `json:"id"`
	ChangeKey     string        `json:"changeKey"`
	ParentID      string        `json:"parentId,omitempty"`
	DisplayName   string        `json:"displayName"`
	Distinguished bool          `json:"distinguished"`
	Type          WellKnownType `json:"type"`
}

// Classify fills in the folder's well-known type when the service did not tag
// it. Folders matching no known role are tagged Other.
func (f *Folder) Classify() {
	if f.Type != "" && f.Type != Other {
		return
	}
	if t, ok := canonicalNames[f.DisplayName]; ok {
		f.Type = t
		return
	}
	f.Type = Other
}

// Directory partitions a folder tree by well-known type, preserving discovery
// order within each type. Every well-known type is present as a key, possibly
// with an empty slice.
type Directory map[WellKnownType][]*Folder

// NewDirectory returns a directory pre-seeded with an empty slice for every
// well-known type.
func NewDirectory() Directory {
	d := make(Directory, len(WellKnownTypes()))
	for _, t := range WellKnownTypes() {
		d[t] = []*Folder{}
	}
	return d
}

// Add classifies the folder and appends it to its type's slice.
func (d Directory) Add(f *Folder) {
	f.Classify()
	d[f.Type] = append(d[f.Type], f)
}

// ByType returns the folders discovered for a type, in discovery order.
func (d Directory) ByType(t WellKnownType) []*Folder {
	return d[t]
}

// Len returns the total number of folders across all types.
func (d Directory) Len() int {
	n := 0
	for _, folders := range d {
		n += len(folders)
	}
	return n
}
