package utils

import "github.com/google/uuid"

// NewNoteID mints a client-side note identifier for records that never pass
// through the document store (file-only storage mode). Prefers the
// time-ordered UUIDv7 so day-file entries sort naturally.
func NewNoteID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
