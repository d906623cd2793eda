package model

import "time"

// Station is a physical petrol station (tenant) whose configuration
// scopes pricing, sales and reporting. Unlike the other models this
// struct carries json tags: the station record is returned verbatim
// by the stations endpoint and decoded by the terminal-side REST
// client, so both halves share one wire shape.
type Station struct {
	ID              uint64    `json:"id"`               // stations.id
	Name            string    `json:"name"`             // stations.name
	Address         string    `json:"address"`          // stations.address
	DefaultCurrency string    `json:"default_currency"` // stations.default_currency (ISO code, e.g. PKR)
	IsActive        bool      `json:"is_active"`        // stations.is_active
	CreatedAt       time.Time `json:"created_at"`       // stations.created_at
	UpdatedAt       time.Time `json:"updated_at"`       // stations.updated_at
}
