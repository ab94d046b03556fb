package sim

import "fmt"

// DuplicateAttachmentError is returned when a port, or a single-attachment
// slot, is bound a second time.
type DuplicateAttachmentError struct {
	Slot      string
	Existing  string
	Attempted string
}

func (e *DuplicateAttachmentError) Error() string {
	return fmt.Sprintf(
		"%s is already attached to %s, cannot attach %s",
		e.Slot, e.Existing, e.Attempted,
	)
}
