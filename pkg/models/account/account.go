// Package account models a remote mailbox user account. The primary key for
// an account is its primary SMTP address.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/locales"
	"github.com/quillmail/ewsbox/pkg/models/folder"
)

// Credentials authenticate an individual user against the service.
type Credentials struct {
	Username string
	Password string
}

// Discoverer locates the service endpoint for an address. The returned
// address may differ from the requested one when the server redirects to the
// account's primary address.
type Discoverer interface {
	Discover(ctx context.Context, address string, creds Credentials, insecureSkipVerify bool) (string, base.Service, error)
}

// Account owns an identity, a service handle and the per-account folder
// caches. A single instance serializes its cache writes behind a mutex, so
// resolving different default folders concurrently is safe.
type Account struct {
	Address    string
	Fullname   string
	Locale     string
	AccessType base.AccessType

	svc    base.Service
	logger *slog.Logger
	ctx    context.Context
	names  locales.Lookup

	creds              *Credentials
	discoverer         Discoverer
	insecureSkipVerify bool

	mu        sync.Mutex
	root      *folder.Folder
	directory folder.Directory
	defaults  map[folder.WellKnownType]*folder.Folder
}

type AccountOption func(*Account) error

// NewAccount validates the identity, settles the access type and establishes
// the service handle, either injected or via discovery. Supplying both or
// neither is a configuration conflict, detected before any network access.
func NewAccount(opts ...AccountOption) (*Account, error) {
	acct := Account{
		Locale:   "da_DK",
		defaults: map[folder.WellKnownType]*folder.Folder{},
	}
	for _, opt := range opts {
		err := opt(&acct)
		if err != nil {
			return nil, err
		}
	}

	if !strings.Contains(acct.Address, "@") {
		return nil, errors.Wrapf(base.ErrInvalidIdentity, "%q", acct.Address)
	}

	if acct.AccessType == "" {
		// Assume delegate access if individual credentials are provided.
		// Else, assume service user with impersonation.
		if acct.creds != nil {
			acct.AccessType = base.Delegate
		} else {
			acct.AccessType = base.Impersonation
		}
	}
	if acct.AccessType != base.Delegate && acct.AccessType != base.Impersonation {
		return nil, errors.Errorf("unknown access type %q", acct.AccessType)
	}

	if acct.svc != nil && acct.discoverer != nil {
		return nil, errors.Wrap(base.ErrConfigurationConflict, "both supplied")
	}
	if acct.svc == nil && acct.discoverer == nil {
		return nil, errors.Wrap(base.ErrConfigurationConflict, "neither supplied")
	}

	if acct.logger == nil {
		return nil, errors.New("requires slogger")
	}

	if acct.ctx == nil {
		acct.ctx = context.Background()
	}

	if acct.names == nil {
		acct.names = locales.Default()
	}

	if acct.discoverer != nil {
		if acct.creds == nil {
			return nil, errors.New("autodiscover requires credentials")
		}
		address, svc, err := acct.discoverer.Discover(acct.ctx, acct.Address, *acct.creds, acct.insecureSkipVerify)
		if err != nil {
			return nil, err
		}
		acct.Address = address
		acct.svc = svc
	}

	acct.logger.Debug("Added account", slog.String("account", acct.String()))
	return &acct, nil
}

func WithIdentity(address, fullname string) AccountOption {
	return func(a *Account) error {
		a.Address = address
		a.Fullname = fullname
		return nil
	}
}

func WithLocale(locale string) AccountOption {
	return func(a *Account) error {
		a.Locale = locale
		return nil
	}
}

func WithAccessType(t base.AccessType) AccountOption {
	return func(a *Account) error {
		a.AccessType = t
		return nil
	}
}

func WithCredentials(creds Credentials) AccountOption {
	return func(a *Account) error {
		a.creds = &creds
		return nil
	}
}

// WithService injects an established service handle. Mutually exclusive with
// WithAutodiscover.
func WithService(svc base.Service) AccountOption {
	return func(a *Account) error {
		a.svc = svc
		return nil
	}
}

// WithAutodiscover locates the service endpoint from the account address.
// Mutually exclusive with WithService.
func WithAutodiscover(d Discoverer) AccountOption {
	return func(a *Account) error {
		a.discoverer = d
		return nil
	}
}

func WithInsecureSkipVerify(skip bool) AccountOption {
	return func(a *Account) error {
		a.insecureSkipVerify = skip
		return nil
	}
}

func WithLogger(logger *slog.Logger) AccountOption {
	return func(a *Account) error {
		a.logger = logger
		return nil
	}
}

func WithCtx(ctx context.Context) AccountOption {
	return func(a *Account) error {
		a.ctx = ctx
		return nil
	}
}

// WithLocaleNames overrides the built-in localized folder name table.
func WithLocaleNames(names locales.Lookup) AccountOption {
	return func(a *Account) error {
		a.names = names
		return nil
	}
}

// Service exposes the underlying service handle for collaborators that wrap
// the account, such as subscriptions.
func (a *Account) Service() base.Service {
	return a.svc
}

// Domain returns the domain part of the primary address.
func (a *Account) Domain() string {
	_, domain, _ := strings.Cut(a.Address, "@")
	return domain
}

func (a *Account) String() string {
	if a.Fullname != "" {
		return fmt.Sprintf("%s (%s)", a.Address, a.Fullname)
	}
	return a.Address
}

// Root returns the account's root folder, fetched once via distinguished
// lookup and cached for the account's lifetime.
func (a *Account) Root() (*folder.Folder, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rootLocked()
}

func (a *Account) rootLocked() (*folder.Folder, error) {
	if a.root != nil {
		return a.root, nil
	}
	root, err := a.svc.GetFolderByDistinguishedID(a.ctx, folder.Root)
	if err != nil {
		return nil, err
	}
	a.root = root
	return root, nil
}

// Folders returns the classified folder directory, discovering it on first
// access and memoizing it for the account's lifetime. A new Account must be
// constructed to see server-side folder changes.
func (a *Account) Folders() (folder.Directory, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.foldersLocked()
}

// DefaultFolder resolves the default folder for a well-known type, consulting
// the per-account cache first. Resolving the same type twice returns the
// identical cached instance without a second remote call.
func (a *Account) DefaultFolder(t folder.WellKnownType) (*folder.Folder, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.defaultFolderLocked(t)
}

// An account may not always have a calendar called "Calendar" but a calendar
// folder with a localized name instead, and shared calendars from other users
// may appear in the folder list. Resolution attempts not to return one of
// those.
func (a *Account) Calendar() (*folder.Folder, error) { return a.DefaultFolder(folder.Calendar) }

func (a *Account) Trash() (*folder.Folder, error)  { return a.DefaultFolder(folder.DeletedItems) }
func (a *Account) Drafts() (*folder.Folder, error) { return a.DefaultFolder(folder.Drafts) }
func (a *Account) Inbox() (*folder.Folder, error)  { return a.DefaultFolder(folder.Inbox) }
func (a *Account) Outbox() (*folder.Folder, error) { return a.DefaultFolder(folder.Outbox) }
func (a *Account) Sent() (*folder.Folder, error)   { return a.DefaultFolder(folder.SentItems) }
func (a *Account) Junk() (*folder.Folder, error)   { return a.DefaultFolder(folder.JunkEmail) }
func (a *Account) Tasks() (*folder.Folder, error)  { return a.DefaultFolder(folder.Tasks) }
func (a *Account) ContactsFolder() (*folder.Folder, error) {
	return a.DefaultFolder(folder.Contacts)
}

func (a *Account) RecoverableItemsRoot() (*folder.Folder, error) {
	return a.DefaultFolder(folder.RecoverableItemsRoot)
}

func (a *Account) RecoverableDeletedItems() (*folder.Folder, error) {
	return a.DefaultFolder(folder.RecoverableItemsDeletions)
}
