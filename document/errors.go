package document

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSlugRequired    = errors.New("document: slug is required")
	ErrSlugInvalid     = errors.New("document: slug contains invalid characters")
	ErrSlugExists      = errors.New("document: slug already exists")
	ErrTitleRequired   = errors.New("document: title is required")
	ErrDateRequired    = errors.New("document: date is required")
	ErrSpoilerRequired = errors.New("document: spoiler is required")
	ErrBodyRequired    = errors.New("document: body is required")
	ErrIDRequired      = errors.New("document: id is required")
	ErrNotFound        = errors.New("document: not found")
)

// NotFoundError reports a lookup miss for a specific resource key.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	key := strings.TrimSpace(e.Key)
	if key != "" {
		return fmt.Sprintf("%s: %s %s", ErrNotFound.Error(), e.Resource, key)
	}
	return ErrNotFound.Error()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
