package artifact

import (
	"encoding/json"
	"fmt"
	"time"
)

// Lock is the body of a processing claim. Owner identifies the invocation
// that wrote it, which makes a stolen (expired and reclaimed) lock visible in logs.
type Lock struct {
	OrderID   int64     `json:"orderId"`
	Owner     string    `json:"owner"`
	ClaimedAt time.Time `json:"claimedAt"`
}

// Marshal encodes the lock for storage.
func (l Lock) Marshal() ([]byte, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal lock: %w", err)
	}
	return b, nil
}

// ExpiresAt returns the moment after which the lock may be reclaimed.
func (l Lock) ExpiresAt(ttl time.Duration) time.Time {
	return l.ClaimedAt.Add(ttl)
}
