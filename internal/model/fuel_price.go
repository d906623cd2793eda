package model

import "time"

// Fuel products sold at a station. The set mirrors the dispenser
// configuration of Pakistani stations; stations that do not sell a
// product simply have no price row for it.
const (
	ProductPetrol   = "petrol"
	ProductHiOctane = "hi-octane"
	ProductDiesel   = "diesel"
	ProductCNG      = "cng"
)

// ValidProduct reports whether p names a sellable fuel product.
func ValidProduct(p string) bool {
	switch p {
	case ProductPetrol, ProductHiOctane, ProductDiesel, ProductCNG:
		return true
	}
	return false
}

// FuelPrice is the current per-litre price of one product at one
// station. The table keeps a single row per (station, product) pair;
// price changes overwrite the row and bump UpdatedAt.
type FuelPrice struct {
	StationID uint64    // fuel_prices.station_id
	Product   string    // fuel_prices.product
	Price     float64   // fuel_prices.price (per litre, station currency)
	UpdatedAt time.Time // fuel_prices.updated_at
}
