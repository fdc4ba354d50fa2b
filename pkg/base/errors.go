package base

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/quillmail/ewsbox/pkg/models/folder"
)

// Construction-time failures.
var (
	ErrInvalidIdentity       = errors.New("primary address is not an email address")
	ErrConfigurationConflict = errors.New("exactly one of service config or autodiscover must be supplied")
)

// Classified service failures. Implementations of Service wrap the wire error
// with one of these so callers can branch with errors.Is; anything else is an
// opaque transport error.
var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrAccessDenied   = errors.New("access denied")
)

// IsFolderNotFound reports whether err is a classified folder-not-found failure.
func IsFolderNotFound(err error) bool {
	return errors.Is(err, ErrFolderNotFound)
}

// IsAccessDenied reports whether err is a classified access-denied failure.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// AmbiguousDefaultError reports that more than one folder plausibly serves as
// the default for a type. Resolution never guesses among them.
type AmbiguousDefaultError struct {
	Type       folder.WellKnownType
	Candidates []*folder.Folder
}

func (e *AmbiguousDefaultError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, f := range e.Candidates {
		names[i] = f.DisplayName
	}
	return fmt.Sprintf("multiple possible default %s folders: %s", e.Type, strings.Join(names, ", "))
}

// NoUsableDefaultError reports that the directory scan found no folder that
// can serve as the default for a type. Cause carries the upstream
// folder-not-found error.
type NoUsableDefaultError struct {
	Type  folder.WellKnownType
	Cause error
}

func (e *NoUsableDefaultError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("no usable default %s folders: %v", e.Type, e.Cause)
	}
	return fmt.Sprintf("no usable default %s folders", e.Type)
}

func (e *NoUsableDefaultError) Unwrap() error {
	return e.Cause
}
