package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fuelware/petrol-station-pos/internal/model"
)

type PriceRepo struct{ DB *sql.DB }

func NewPriceRepo(db *sql.DB) *PriceRepo { return &PriceRepo{DB: db} }

// Get returns the current price of one product at a station.
func (r *PriceRepo) Get(ctx context.Context, stationID uint64, product string) (model.FuelPrice, error) {
	var p model.FuelPrice
	err := r.DB.QueryRowContext(ctx,
		"SELECT station_id,product,price,updated_at FROM fuel_prices WHERE station_id=? AND product=? LIMIT 1",
		stationID, product).Scan(&p.StationID, &p.Product, &p.Price, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.FuelPrice{}, ErrNotFound
	}
	return p, err
}

// ListByStation returns every priced product at a station.
func (r *PriceRepo) ListByStation(ctx context.Context, stationID uint64) ([]model.FuelPrice, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT station_id,product,price,updated_at FROM fuel_prices WHERE station_id=? ORDER BY product",
		stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FuelPrice
	for rows.Next() {
		var p model.FuelPrice
		if err := rows.Scan(&p.StationID, &p.Product, &p.Price, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Upsert sets the price of a product at a station, inserting the row on
// first use and overwriting it afterwards.
func (r *PriceRepo) Upsert(ctx context.Context, stationID uint64, product string, price float64) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO fuel_prices (station_id, product, price) VALUES (?,?,?) "+
			"ON DUPLICATE KEY UPDATE price=VALUES(price), updated_at=NOW()",
		stationID, product, price)
	return err
}
