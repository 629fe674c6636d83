package services_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"starmap/internal/core/domain/model/order"
	"starmap/internal/core/domain/services"
	"starmap/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func posterOrder(t *testing.T, variant string, props map[string]string) []byte {
	t.Helper()

	properties := make([]map[string]string, 0, len(props))
	for name, value := range props {
		properties = append(properties, map[string]string{"name": name, "value": value})
	}

	body, err := json.Marshal(map[string]any{
		"id":    1001,
		"name":  "#1001",
		"email": "jan@example.com",
		"line_items": []map[string]any{
			{"name": "Gift wrap", "variant_title": nil},
			{"name": "Sterrenhemel Poster", "variant_title": variant, "properties": properties},
		},
	})
	require.NoError(t, err)
	return body
}

func amsterdamProps() map[string]string {
	return map[string]string{
		"Adres & Plaatsnaam": "  Amsterdam  ",
		"Datum & Tijd":       "04-07-2025 23:55",
		"Boodschap":          "test",
	}
}

func newExtractor(t *testing.T, logger *slog.Logger) *services.OrderExtractor {
	t.Helper()
	e, err := services.NewOrderExtractor(logger)
	require.NoError(t, err)
	return e
}

func TestOrderExtractor_Extract(t *testing.T) {
	e := newExtractor(t, discardLogger())

	rec, err := e.Extract(posterOrder(t, "Zwart / 30x40", amsterdamProps()))
	require.NoError(t, err)

	assert.Equal(t, int64(1001), rec.ID())
	assert.Equal(t, "#1001", rec.Name())
	assert.Equal(t, "jan@example.com", rec.Email())
	assert.Equal(t, "Amsterdam", rec.Location())
	assert.Equal(t, "04.07.2025", rec.Date().String())
	assert.Equal(t, "23.55.00", rec.Time().String())
	assert.Equal(t, "test", rec.Message())
	assert.Equal(t, order.Black, rec.Color())
	require.NoError(t, rec.Validate())
}

func TestOrderExtractor_Extract_ColorFallbackLogsWarning(t *testing.T) {
	var logs bytes.Buffer
	e := newExtractor(t, slog.New(slog.NewTextHandler(&logs, nil)))

	rec, err := e.Extract(posterOrder(t, "Goud", amsterdamProps()))
	require.NoError(t, err)

	assert.Equal(t, order.Taupe, rec.Color())
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "Goud")
}

func TestOrderExtractor_Extract_Failures(t *testing.T) {
	e := newExtractor(t, discardLogger())

	withoutProp := func(name string) map[string]string {
		p := amsterdamProps()
		delete(p, name)
		return p
	}
	withProp := func(name, value string) map[string]string {
		p := amsterdamProps()
		p[name] = value
		return p
	}

	tests := []struct {
		name    string
		body    []byte
		wantErr error
	}{
		{"not json", []byte("not json"), services.ErrPayloadIsMalformed},
		{"missing id", []byte(`{"line_items":[]}`), services.ErrPayloadIsMalformed},
		{"id is a string", []byte(`{"id":"1001","line_items":[]}`), services.ErrPayloadIsMalformed},
		{"line items not an array", []byte(`{"id":1001,"line_items":{}}`), services.ErrPayloadIsMalformed},
		{"no poster", []byte(`{"id":1001,"line_items":[{"name":"Mug"}]}`), services.ErrPosterNotFound},
		{"no location", posterOrder(t, "Taupe", withoutProp("Adres & Plaatsnaam")), errs.ErrValueIsRequired},
		{"blank location", posterOrder(t, "Taupe", withProp("Adres & Plaatsnaam", "   ")), errs.ErrValueIsRequired},
		{"no datetime", posterOrder(t, "Taupe", withoutProp("Datum & Tijd")), errs.ErrValueIsRequired},
		{"date without time", posterOrder(t, "Taupe", withProp("Datum & Tijd", "04-07-2025")), errs.ErrValueIsInvalid},
		{"impossible date", posterOrder(t, "Taupe", withProp("Datum & Tijd", "31-02-2025 12:00")), errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := e.Extract(tt.body)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, rec)
		})
	}
}

func TestOrderExtractor_Extract_MessageIsOptional(t *testing.T) {
	e := newExtractor(t, discardLogger())

	p := amsterdamProps()
	delete(p, "Boodschap")

	rec, err := e.Extract(posterOrder(t, "Wit", p))
	require.NoError(t, err)
	assert.Empty(t, rec.Message())
	assert.Equal(t, order.White, rec.Color())
}

func TestOrderExtractor_OrderID(t *testing.T) {
	e := newExtractor(t, discardLogger())

	id, err := e.OrderID([]byte(`{"id":5678901234567,"line_items":"ignored"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(5678901234567), id)

	for _, body := range []string{`[]`, `{}`, `{"id":-4}`, `{"id":1.5}`, `{"id":"x"}`} {
		_, err = e.OrderID([]byte(body))
		assert.ErrorIs(t, err, services.ErrPayloadIsMalformed, body)
	}
}
