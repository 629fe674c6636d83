package artifact

import (
	"fmt"
	"time"
)

const (
	// DocumentPrefix is the key prefix of all stored poster documents.
	DocumentPrefix = "orders/"
	// LockPrefix is the key prefix of all processing locks.
	LockPrefix = "locks/"

	ContentTypePDF  = "application/pdf"
	ContentTypeJSON = "application/json"
	ContentTypeSVG  = "image/svg+xml"
)

// OrderPrefix returns the prefix shared by every document stored for the order.
// The trailing dash keeps order 1 from matching documents of order 12.
func OrderPrefix(orderID int64) string {
	return fmt.Sprintf("%s%d-", DocumentPrefix, orderID)
}

// DocumentKey returns a key that is unique per run: two successful runs for
// the same order produce two objects instead of overwriting each other.
func DocumentKey(orderID int64, at time.Time) string {
	return fmt.Sprintf("%s%d.pdf", OrderPrefix(orderID), at.UnixNano())
}

// LockKey returns the processing lock key of the order.
func LockKey(orderID int64) string {
	return fmt.Sprintf("%s%d.lock", LockPrefix, orderID)
}
