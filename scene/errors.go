package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned when a create would reuse an id already in the document.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrDegenerateGeometry is returned for rectangles whose corners coincide.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// UnknownModelItemError reports a reference to a ModelItem that does not exist.
type UnknownModelItemError struct {
	ID string
}

func (e *UnknownModelItemError) Error() string {
	return fmt.Sprintf("unknown model item %q", e.ID)
}

// InvalidAnchorError rejects a connector whose anchors cannot all be resolved.
type InvalidAnchorError struct {
	Connector string
	Anchor    string
	Reason    string
	Err       error
}

func (e *InvalidAnchorError) Error() string {
	msg := fmt.Sprintf("connector %q: invalid anchor", e.Connector)
	if e.Anchor != "" {
		msg += fmt.Sprintf(" %q", e.Anchor)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidAnchorError) Unwrap() error {
	return e.Err
}

// DanglingAnchorError means an anchor references an item or anchor that is
// gone. Cascading deletes should make this unreachable.
type DanglingAnchorError struct {
	Connector string
	Anchor    string
	Ref       string
}

func (e *DanglingAnchorError) Error() string {
	return fmt.Sprintf("connector %q: anchor %q references missing %q", e.Connector, e.Anchor, e.Ref)
}
