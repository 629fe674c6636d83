package telemetry_test

import (
	"testing"

	"starmap/internal/pkg/telemetry"

	"github.com/stretchr/testify/require"
)

func TestSetup_NoopWithoutEndpoint(t *testing.T) {
	shutdown, err := telemetry.Setup(t.Context(), "starmap", "")

	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))
}

func TestSetup_WithEndpoint(t *testing.T) {
	// 192.0.2.0/24 is reserved for documentation, nothing is exported.
	shutdown, err := telemetry.Setup(t.Context(), "starmap", "http://192.0.2.1:4318")

	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))
}
