package artifact_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"starmap/internal/core/domain/model/artifact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	at := time.Unix(1751666100, 123456789)

	assert.Equal(t, "orders/1001-", artifact.OrderPrefix(1001))
	assert.Equal(t, "orders/1001-1751666100123456789.pdf", artifact.DocumentKey(1001, at))
	assert.Equal(t, "locks/1001.lock", artifact.LockKey(1001))

	t.Run("prefix of one order does not match another", func(t *testing.T) {
		assert.False(t, strings.HasPrefix(artifact.DocumentKey(12, at), artifact.OrderPrefix(1)))
		assert.True(t, strings.HasPrefix(artifact.DocumentKey(12, at), artifact.OrderPrefix(12)))
	})

	t.Run("document keys differ per run", func(t *testing.T) {
		assert.NotEqual(t, artifact.DocumentKey(1, at), artifact.DocumentKey(1, at.Add(time.Nanosecond)))
	})
}

func TestPosterPageSize(t *testing.T) {
	p := artifact.PosterPageSize()

	assert.InDelta(t, 306.0, p.WidthMM(), 1e-9)
	assert.InDelta(t, 406.0, p.HeightMM(), 1e-9)
	assert.InDelta(t, p.TrimWidthMM+2*p.BleedMM, p.WidthMM(), 1e-9)
	assert.InDelta(t, 306.0/25.4, p.WidthInches(), 1e-9)

	half := p.Scale(0.5)
	assert.InDelta(t, 153.0, half.WidthMM(), 1e-9)
	assert.InDelta(t, 203.0, half.HeightMM(), 1e-9)
}

func TestLock(t *testing.T) {
	claimedAt := time.Date(2025, 7, 4, 23, 55, 0, 0, time.UTC)
	l := artifact.Lock{OrderID: 1001, Owner: "abc", ClaimedAt: claimedAt}

	b, err := l.Marshal()
	require.NoError(t, err)

	var decoded artifact.Lock
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, l, decoded)
	assert.Equal(t, claimedAt.Add(15*time.Minute), l.ExpiresAt(15*time.Minute))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "1.00 KB", artifact.FormatSize(1024))
	assert.Equal(t, "0.50 KB", artifact.Object{Size: 512}.SizeLabel())
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "http://localhost:8080/artifacts/orders/1-2.pdf",
		artifact.PublicURL("http://localhost:8080/artifacts/", "orders/1-2.pdf"))
	assert.Equal(t, "http://cdn/orders/1-2.pdf", artifact.PublicURL("http://cdn", "orders/1-2.pdf"))
}
