package account_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/mock"
	"github.com/quillmail/ewsbox/pkg/models/account"
	"github.com/quillmail/ewsbox/pkg/models/folder"
)

func newTestAccount(t *testing.T, svc base.Service, opts ...account.AccountOption) *account.Account {
	t.Helper()
	opts = append([]account.AccountOption{
		account.WithIdentity("john@example.com", ""),
		account.WithService(svc),
		account.WithLocale("da_DK"),
		account.WithLogger(mock.SetupLogger(t)),
	}, opts...)
	acct, err := account.NewAccount(opts...)
	require.NoError(t, err)
	return acct
}

func TestDefaultFolderDistinguishedLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	inbox := &folder.Folder{ID: "inbox-1", DisplayName: "Inbox", Distinguished: true, Type: folder.Inbox}
	// The directory scan path must never run when distinguished lookup
	// succeeds, so no ListChildFolders call is expected.
	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Inbox).
		Return(inbox, nil).
		Times(1)

	got, err := acct.Inbox()
	assert.NoError(t, err)
	assert.Same(t, inbox, got)
}

func TestDefaultFolderResolvedOncePerType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	calendar := &folder.Folder{ID: "cal-1", DisplayName: "Calendar", Type: folder.Calendar}
	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Calendar).
		Return(calendar, nil).
		Times(1)

	first, err := acct.Calendar()
	require.NoError(t, err)
	second, err := acct.Calendar()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestDefaultFolderAccessDeniedProbes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Tasks).
		Return(nil, errors.Wrap(base.ErrAccessDenied, "GetFolder"))
	mockService.EXPECT().
		ProbeQuery(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, f *folder.Folder) error {
			assert.Equal(t, folder.Tasks, f.Type)
			return nil
		})

	got, err := acct.Tasks()
	require.NoError(t, err)
	assert.Equal(t, folder.Tasks, got.Type)
	assert.True(t, got.Distinguished)

	// Cached; no further remote calls.
	again, err := acct.Tasks()
	require.NoError(t, err)
	assert.Same(t, got, again)
}

func TestDefaultFolderAccessDeniedProbeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	probeErr := errors.New("connection reset")
	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Tasks).
		Return(nil, errors.Wrap(base.ErrAccessDenied, "GetFolder"))
	mockService.EXPECT().
		ProbeQuery(gomock.Any(), gomock.Any()).
		Return(probeErr)

	_, err := acct.Tasks()
	assert.True(t, errors.Is(err, probeErr))
}

// expectDirectory arranges a discovery pass over a "Top of Information Store"
// container holding the given folders.
func expectDirectory(mockService *mock.MockService, folders []*folder.Folder) {
	root := &folder.Folder{ID: "root-1", DisplayName: "Root", Type: folder.Root}
	tois := &folder.Folder{ID: "tois-1", DisplayName: folder.TopOfInformationStore, Type: folder.Other}

	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Root).
		Return(root, nil)
	mockService.EXPECT().
		ListChildFolders(gomock.Any(), root, base.Shallow).
		Return([]*folder.Folder{tois}, nil)
	mockService.EXPECT().
		ListChildFolders(gomock.Any(), tois, base.Shallow).
		Return(folders, nil)
}

func TestDefaultFolderNotFoundScansLocalizedNames(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	renamed := &folder.Folder{ID: "inbox-1", DisplayName: "Indbakke", Type: folder.Inbox}
	shared := &folder.Folder{ID: "inbox-2", DisplayName: "Some Shared Inbox", Type: folder.Inbox}

	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Inbox).
		Return(nil, errors.Wrap(base.ErrFolderNotFound, "GetFolder"))
	expectDirectory(mockService, []*folder.Folder{renamed, shared})

	got, err := acct.Inbox()
	require.NoError(t, err)
	assert.Same(t, renamed, got)
}

func TestDefaultFolderNotFoundFallsBackToDistinguishedFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	// No candidate carries a locale-matching name, but exactly one is
	// marked distinguished by the server.
	renamed := &folder.Folder{ID: "cal-1", DisplayName: "Team Events", Type: folder.Calendar, Distinguished: true}
	shared := &folder.Folder{ID: "cal-2", DisplayName: "Holidays", Type: folder.Calendar}

	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Calendar).
		Return(nil, errors.Wrap(base.ErrFolderNotFound, "GetFolder"))
	expectDirectory(mockService, []*folder.Folder{renamed, shared})

	got, err := acct.Calendar()
	require.NoError(t, err)
	assert.Same(t, renamed, got)
}

func TestDefaultFolderAmbiguous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	first := &folder.Folder{ID: "inbox-1", DisplayName: "Indbakke", Type: folder.Inbox}
	second := &folder.Folder{ID: "inbox-2", DisplayName: "Indbakke", Type: folder.Inbox}

	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Inbox).
		Return(nil, errors.Wrap(base.ErrFolderNotFound, "GetFolder"))
	expectDirectory(mockService, []*folder.Folder{first, second})

	_, err := acct.Inbox()
	require.Error(t, err)

	var ambiguous *base.AmbiguousDefaultError
	require.True(t, errors.As(err, &ambiguous))
	assert.Equal(t, folder.Inbox, ambiguous.Type)
	assert.Equal(t, []*folder.Folder{first, second}, ambiguous.Candidates)
	assert.Contains(t, ambiguous.Error(), "Indbakke")
}

func TestDefaultFolderNoUsableDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Outbox).
		Return(nil, errors.Wrap(base.ErrFolderNotFound, "GetFolder"))
	expectDirectory(mockService, nil)

	_, err := acct.Outbox()
	require.Error(t, err)

	var noDefault *base.NoUsableDefaultError
	require.True(t, errors.As(err, &noDefault))
	assert.Equal(t, folder.Outbox, noDefault.Type)
	// The upstream not-found cause rides along.
	assert.True(t, errors.Is(err, base.ErrFolderNotFound))
}

func TestDefaultFolderTransportErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	transportErr := errors.New("gateway timeout")
	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Drafts).
		Return(nil, transportErr)

	_, err := acct.Drafts()
	assert.Equal(t, transportErr, err)
}

func TestDefaultFolderDirectorySharedAcrossTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mock.NewMockService(ctrl)
	acct := newTestAccount(t, mockService)

	inbox := &folder.Folder{ID: "inbox-1", DisplayName: "Indbakke", Type: folder.Inbox}
	drafts := &folder.Folder{ID: "drafts-1", DisplayName: "Kladder", Type: folder.Drafts}

	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Inbox).
		Return(nil, errors.Wrap(base.ErrFolderNotFound, "GetFolder"))
	mockService.EXPECT().
		GetFolderByDistinguishedID(gomock.Any(), folder.Drafts).
		Return(nil, errors.Wrap(base.ErrFolderNotFound, "GetFolder"))
	// Discovery runs once; the second resolution reuses the cached
	// directory.
	expectDirectory(mockService, []*folder.Folder{inbox, drafts})

	got, err := acct.Inbox()
	require.NoError(t, err)
	assert.Same(t, inbox, got)

	gotDrafts, err := acct.Drafts()
	require.NoError(t, err)
	assert.Same(t, drafts, gotDrafts)
}
