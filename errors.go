package ecpem

import (
	"fmt"
)

var ErrMalformedArmor = fmt.Errorf("malformed armor")
var ErrMalformedRecord = fmt.Errorf("malformed EC private key record")
var ErrUnsupportedCurve = fmt.Errorf("unsupported curve")
var ErrInvalidKeyLength = fmt.Errorf("invalid key length")

// FieldError reports which field of the armor or the DER record failed.
// It unwraps to one of the Err* kinds above, so errors.Is works on it.
type FieldError struct {
	Kind   error
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", e.Kind, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return e.Kind
}

func fieldError(kind error, field string, format string, args ...interface{}) error {
	return &FieldError{Kind: kind, Field: field, Reason: fmt.Sprintf(format, args...)}
}
