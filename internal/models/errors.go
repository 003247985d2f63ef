package models

import "errors"

// ErrUnknownEnumValue is returned when a role, status or priority is not recognised.
var ErrUnknownEnumValue = errors.New("unknown enum value")
