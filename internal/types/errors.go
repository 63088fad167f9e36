package types

import "fmt"

// UnresolvableImageError is returned when the image inspector cannot open
// or decode the image referenced by a handle.
type UnresolvableImageError struct {
	Err    error
	Handle string
}

func (e *UnresolvableImageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: unresolvable image handle: %v", e.Handle, e.Err)
	}
	return fmt.Sprintf("%s: unresolvable image handle", e.Handle)
}

// Unwrap returns the underlying open or decode error.
func (e *UnresolvableImageError) Unwrap() error {
	return e.Err
}

// DuplicateFieldError is returned when a decoder adds the same field name twice.
type DuplicateFieldError struct {
	Name string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate metadata field %q", e.Name)
}
