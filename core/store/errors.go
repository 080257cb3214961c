package store

import "errors"

var ErrNotFound = errors.New("incident not found")

// ValidationError reports a required field that was absent or null in the
// request. It never mutates state.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
