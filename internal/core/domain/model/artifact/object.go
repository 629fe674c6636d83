package artifact

import (
	"fmt"
	"strings"
	"time"
)

// Object is a stored blob as reported by the artifact store. Listing
// operations leave the body out; Size still reflects the stored length.
type Object struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}

// SizeLabel renders the size in kilobytes with two decimals, e.g. "412.37 KB".
func (o Object) SizeLabel() string {
	return FormatSize(o.Size)
}

// FormatSize renders a byte count in kilobytes with two decimals.
func FormatSize(n int64) string {
	return fmt.Sprintf("%.2f KB", float64(n)/1024)
}

// PublicURL joins the public base URL of a store with an object key.
func PublicURL(baseURL, key string) string {
	return strings.TrimRight(baseURL, "/") + "/" + key
}
