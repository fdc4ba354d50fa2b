package account

import (
	"log/slog"

	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/models/folder"
)

// foldersLocked builds the folder directory on first access. Callers hold
// a.mu.
func (a *Account) foldersLocked() (folder.Directory, error) {
	if a.directory != nil {
		return a.directory, nil
	}

	root, err := a.rootLocked()
	if err != nil {
		return nil, err
	}

	// Start by searching top-level folders. When a "Top of Information
	// Store" container is present its children are the account's own
	// folders; without it default folders may be nested arbitrarily, so dig
	// deeper and get everything.
	working, err := a.svc.ListChildFolders(a.ctx, root, base.Shallow)
	if err != nil {
		return nil, err
	}

	hasTois := false
	for _, f := range working {
		if f.DisplayName == folder.TopOfInformationStore {
			hasTois = true
			working, err = a.svc.ListChildFolders(a.ctx, f, base.Shallow)
			if err != nil {
				return nil, err
			}
			break
		}
	}
	if !hasTois {
		working, err = a.svc.ListChildFolders(a.ctx, root, base.Deep)
		if err != nil {
			return nil, err
		}
	}

	dir := folder.NewDirectory()
	for _, f := range working {
		dir.Add(f)
	}

	a.logger.Debug("Built folder directory",
		slog.String("account", a.Address),
		slog.Bool("tois", hasTois),
		slog.Int("folders", dir.Len()),
	)
	a.directory = dir
	return dir, nil
}
