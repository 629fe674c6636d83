package services

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"starmap/internal/core/domain/model/order"
	"starmap/internal/pkg/errs"
	"starmap/internal/pkg/textfold"

	"github.com/getkin/kin-openapi/openapi3"
)

// Line item and property keywords, matched as case-insensitive substrings.
const (
	PosterKeyword    = "poster"
	LocationProperty = "adres & plaatsnaam"
	DateTimeProperty = "datum & tijd"
	MessageProperty  = "boodschap"

	orderSchemaName  = "ShopifyOrder"
	orderIDParamName = "id"
)

var (
	// ErrPayloadIsMalformed is returned when the body is not a JSON object
	// matching the order schema.
	ErrPayloadIsMalformed = errors.New("order payload is malformed")
	// ErrPosterNotFound is returned when no line item is a poster.
	ErrPosterNotFound = errors.New("order contains no poster line item")
)

//go:embed order_schema.yaml
var orderSchemaYAML []byte

type shopifyOrder struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	LineItems []shopifyLineItem `json:"line_items"`
}

type shopifyLineItem struct {
	Name         string            `json:"name"`
	VariantTitle string            `json:"variant_title"`
	Properties   []shopifyProperty `json:"properties"`
}

type shopifyProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OrderExtractor turns a raw shop order payload into an order.Record.
//
// The payload is first validated against an embedded OpenAPI schema, so
// missing or mistyped fields fail at the boundary instead of deep inside the
// pipeline. The poster line item is then located and its properties read.
//
// Example:
//
//	extractor, err := services.NewOrderExtractor(logger)
//	if err != nil {
//	    return err
//	}
//	rec, err := extractor.Extract(body)
//	if errors.Is(err, services.ErrPosterNotFound) {
//	    // nothing to fulfil
//	}
type OrderExtractor struct {
	schema *openapi3.Schema
	logger *slog.Logger
}

// NewOrderExtractor loads and validates the embedded order schema.
func NewOrderExtractor(logger *slog.Logger) (*OrderExtractor, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(orderSchemaYAML)
	if err != nil {
		return nil, fmt.Errorf("load order schema: %w", err)
	}
	if err = doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate order schema: %w", err)
	}

	ref, ok := doc.Components.Schemas[orderSchemaName]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("order schema %q is missing", orderSchemaName)
	}

	return &OrderExtractor{
		schema: ref.Value,
		logger: logger.With("component", "order_extractor"),
	}, nil
}

// OrderID reads only the order identifier. It is used before the idempotency
// check, which needs the id but must not depend on the rest of the payload
// being valid.
func (e *OrderExtractor) OrderID(body []byte) (int64, error) {
	var head struct {
		ID json.Number `json:"id"`
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&head); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPayloadIsMalformed, err)
	}
	if head.ID == "" {
		return 0, fmt.Errorf("%w: %w", ErrPayloadIsMalformed, errs.NewValueIsRequiredError(orderIDParamName))
	}

	id, err := head.ID.Int64()
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %w", ErrPayloadIsMalformed,
			errs.NewValueIsInvalidErrorWithCause(orderIDParamName, fmt.Errorf("%q is not a positive integer", head.ID)))
	}

	return id, nil
}

// Extract validates the payload and builds the record. It either returns a
// complete record or an error; a partial record is never produced.
//
// A variant title naming no known color is not an error: the default color is
// used and a warning is logged.
func (e *OrderExtractor) Extract(body []byte) (*order.Record, error) {
	var tree any
	if err := json.Unmarshal(body, &tree); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPayloadIsMalformed, err)
	}
	if err := e.schema.VisitJSON(tree, openapi3.MultiErrors()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPayloadIsMalformed, err)
	}

	var raw shopifyOrder
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPayloadIsMalformed, err)
	}

	item, ok := findPoster(raw.LineItems)
	if !ok {
		return nil, ErrPosterNotFound
	}

	location := propertyValue(item.Properties, LocationProperty)
	if location == "" {
		return nil, errs.NewValueIsRequiredError(LocationProperty)
	}

	dateTime := propertyValue(item.Properties, DateTimeProperty)
	if dateTime == "" {
		return nil, errs.NewValueIsRequiredError(DateTimeProperty)
	}

	date, tm, err := order.ParseDateTime(dateTime)
	if err != nil {
		return nil, err
	}

	color, matched := order.ParseColor(item.VariantTitle)
	if !matched {
		e.logger.Warn("variant names no known color, using default",
			"orderId", raw.ID,
			"variantTitle", item.VariantTitle,
			"color", color.String(),
		)
	}

	rec, err := order.NewRecord(
		raw.ID,
		raw.Name,
		raw.Email,
		date,
		tm,
		location,
		propertyValue(item.Properties, MessageProperty),
		color,
	)
	if err != nil {
		return nil, fmt.Errorf("build order %d: %w", raw.ID, err)
	}

	return rec, nil
}

func findPoster(items []shopifyLineItem) (shopifyLineItem, bool) {
	for _, item := range items {
		if textfold.Contains(item.Name, PosterKeyword) {
			return item, true
		}
	}
	return shopifyLineItem{}, false
}

// propertyValue returns the trimmed value of the first property whose name
// contains key, or "" when there is none.
func propertyValue(props []shopifyProperty, key string) string {
	for _, p := range props {
		if textfold.Contains(p.Name, key) {
			return strings.TrimSpace(p.Value)
		}
	}
	return ""
}
