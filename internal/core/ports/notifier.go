package ports

import "context"

// Notification reports a fulfilled order to the operator.
type Notification struct {
	OrderID       int64
	OrderName     string
	CustomerEmail string
	PlaceName     string
	Coordinates   string
	ArtifactURL   string
	ArtifactSize  int64
}

// Notifier delivers notifications. Delivery is best effort: the pipeline
// logs a failed Send and carries on.
type Notifier interface {
	Send(ctx context.Context, n Notification) error
}
