package domain

import (
	"errors"
	"fmt"
)

// ErrUnsupportedDiffAction signals a diff semantic the migration pipeline does not understand
var ErrUnsupportedDiffAction = errors.New("unsupported diff action")

// UnsupportedDiffActionError names the offending action and where it was found
type UnsupportedDiffActionError struct {
	Action string
	Path   string
}

func (e *UnsupportedDiffActionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unsupported action: %s", e.Action)
	}
	return fmt.Sprintf("unsupported action: %s at %s", e.Action, e.Path)
}

func (e *UnsupportedDiffActionError) Is(target error) bool {
	return target == ErrUnsupportedDiffAction
}
