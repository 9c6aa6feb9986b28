package domain

import "errors"

// ErrConflict is returned when an optimistic profile update lost a
// race: the row version changed between read and write.
var ErrConflict = errors.New("profile version conflict")
