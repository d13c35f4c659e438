package util

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

const orderNumberPrefix = "ORD-"

// NewOrderNumber generates a unique order number (ORD-<ULID>).
// ULIDs sort by creation time, so order listings stay chronological.
func NewOrderNumber() string {
	t := time.Now()
	entropy := ulid.Monotonic(rand.Reader, 0)

	return orderNumberPrefix + ulid.MustNew(ulid.Timestamp(t), entropy).String()
}
