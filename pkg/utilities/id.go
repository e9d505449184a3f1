package utilities

import (
	"github.com/segmentio/ksuid"
)

// NewRequestID generates a sortable, globally unique request id.
func NewRequestID() string {
	return ksuid.New().String()
}
