// Package artifact defines what the pipeline produces and stores: the chart
// image, the print document, the stored object reference and the processing
// lock, together with the storage key scheme that ties them to an order.
//
// Key scheme:
//
//	orders/{orderId}-{unixNano}.pdf   stored poster documents
//	locks/{orderId}.lock              processing claims
//
// An order is complete iff at least one object exists under OrderPrefix.
package artifact
