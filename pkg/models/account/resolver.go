package account

import (
	"log/slog"

	"github.com/quillmail/ewsbox/pkg/base"
	"github.com/quillmail/ewsbox/pkg/locales"
	"github.com/quillmail/ewsbox/pkg/models/folder"
)

// defaultFolderLocked resolves the default folder for a type. Strictly
// ordered, first success wins:
//
//  1. distinguished lookup, authoritative when available;
//  2. on access denied, a lightweight handle validated with a probe query,
//     for permission models where enumeration works but direct fetch does not;
//  3. on folder not found, a directory scan matching localized names, falling
//     back to the distinguished flag — a heuristic of last resort, because
//     server-side renaming defeats purely structural lookup.
//
// Any other lookup error propagates unchanged. Callers hold a.mu.
func (a *Account) defaultFolderLocked(t folder.WellKnownType) (*folder.Folder, error) {
	if f, ok := a.defaults[t]; ok {
		return f, nil
	}

	a.logger.Debug("Testing default folder with distinguished lookup", slog.String("type", string(t)))
	f, err := a.svc.GetFolderByDistinguishedID(a.ctx, t)
	switch {
	case err == nil:

	case base.IsAccessDenied(err):
		// Maybe we just don't have fetch-by-id access? Probe with a query
		// that matches nothing to validate the handle is usable.
		a.logger.Debug("Testing default folder with probe query", slog.String("type", string(t)))
		f = &folder.Folder{DisplayName: string(t), Distinguished: true, Type: t}
		if perr := a.svc.ProbeQuery(a.ctx, f); perr != nil {
			return nil, perr
		}

	case base.IsFolderNotFound(err):
		a.logger.Debug("Searching default folder in full folder list", slog.String("type", string(t)))
		f, err = a.scanDirectoryLocked(t, err)
		if err != nil {
			return nil, err
		}

	default:
		return nil, err
	}

	a.defaults[t] = f
	return f, nil
}

// scanDirectoryLocked guesses the default folder for a type from the folder
// directory. Default folder names can be renamed to a set of localized names
// server-side, so candidates whose title-cased display name appears in the
// locale table are preferred; with no name match, folders the server marks
// distinguished are considered instead. Resolution never silently guesses
// among multiple plausible matches.
func (a *Account) scanDirectoryLocked(t folder.WellKnownType, cause error) (*folder.Folder, error) {
	dir, err := a.foldersLocked()
	if err != nil {
		return nil, err
	}

	names := a.names.Names(a.Locale, t)
	var flds []*folder.Folder
	for _, f := range dir.ByType(t) {
		if containsName(names, locales.TitleCase(f.DisplayName)) {
			flds = append(flds, f)
		}
	}
	if len(flds) == 0 {
		// No folder with a localized name. Use the distinguished flag
		// instead.
		for _, f := range dir.ByType(t) {
			if f.Distinguished {
				flds = append(flds, f)
			}
		}
	}

	switch len(flds) {
	case 0:
		return nil, &base.NoUsableDefaultError{Type: t, Cause: cause}
	case 1:
		return flds[0], nil
	default:
		return nil, &base.AmbiguousDefaultError{Type: t, Candidates: flds}
	}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
