package model

import "time"

// Sale is one dispensed-fuel transaction entered at the till.
//
// Fields:
//  ID          – primary key identifier.
//  StationID   – station where the sale happened.
//  UserID      – cashier who recorded it.
//  Product     – fuel product sold (see Product* constants).
//  Litres      – dispensed volume.
//  UnitPrice   – per-litre price at the moment of sale.
//  TotalAmount – Litres * UnitPrice, computed server-side.
//  CreatedAt   – timestamp of the sale entry.
type Sale struct {
	ID          uint64    // sales.id
	StationID   uint64    // sales.station_id
	UserID      uint64    // sales.user_id
	Product     string    // sales.product
	Litres      float64   // sales.litres
	UnitPrice   float64   // sales.unit_price
	TotalAmount float64   // sales.total_amount
	CreatedAt   time.Time // sales.created_at
}
