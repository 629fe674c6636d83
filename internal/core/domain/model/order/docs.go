// Package order provides the validated, immutable representation of a poster
// order as the pipeline consumes it.
//
// The package includes:
//   - Record: the order after extraction from the shop payload
//   - Color: the closed poster color enumeration with its print palette
//   - Date and Time: the chart date (DD.MM.YYYY) and time (HH.MM.SS)
//
// Records are created once per inbound delivery and are never persisted;
// the stored document is the only durable trace of an order.
package order
