package http

// OrderSummary identifies the processed order in a webhook response.
type OrderSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Coordinates string `json:"coordinates"`
}

// WebhookResponse is the body of every answer to the order webhook.
type WebhookResponse struct {
	Success  bool          `json:"success"`
	Message  string        `json:"message,omitempty"`
	Order    *OrderSummary `json:"order,omitempty"`
	PDFSize  string        `json:"pdfSize,omitempty"`
	PDFBytes int64         `json:"pdfBytes,omitempty"`
	PDFURL   string        `json:"pdfUrl,omitempty"`
	Status   string        `json:"status,omitempty"`
	Error    string        `json:"error,omitempty"`
	Category string        `json:"category,omitempty"`
	Details  string        `json:"details,omitempty"`
}

// GeocodeResponse is the body of a successful geocode lookup.
type GeocodeResponse struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Place       string  `json:"place"`
	City        string  `json:"city"`
	Coordinates string  `json:"coordinates"`
}

// StarmapRequest holds the chart parameters of the starmap test route.
// Date is DD.MM.YYYY and Time is HH.MM.SS.
type StarmapRequest struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	UTCOffset     int     `json:"utcOffset"`
	Constellation *bool   `json:"constellation,omitempty"`
}

// Error is the body of a failed operator or preview request.
type Error struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
}
