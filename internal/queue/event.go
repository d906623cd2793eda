// Package queue defines message payloads exchanged over the message broker.
package queue

// SaleRecordedEvent is published when a sale is successfully recorded at
// a till. It carries enough denormalized detail for downstream consumers
// (shift audit log, daily totals) to work without querying the primary
// database.
type SaleRecordedEvent struct {
	SaleID      uint64  `json:"sale_id"`
	StationID   uint64  `json:"station_id"`
	StationName string  `json:"station_name"`
	UserID      uint64  `json:"user_id"`
	Username    string  `json:"username"`
	Product     string  `json:"product"`
	Litres      float64 `json:"litres"`
	UnitPrice   float64 `json:"unit_price"`
	TotalAmount float64 `json:"total_amount"`
	Currency    string  `json:"currency"`
	RecordedAt  string  `json:"recorded_at"`
}
