package api

import "github.com/google/uuid"

// NewID returns a UUIDv7 string. IDs sort by creation time.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does.
		return uuid.NewString()
	}
	return id.String()
}
