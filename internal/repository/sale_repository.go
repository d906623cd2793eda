package repository

import (
	"context"
	"database/sql"

	"github.com/fuelware/petrol-station-pos/internal/model"
)

type SaleRepo struct{ DB *sql.DB }

func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{DB: db} }

// Create inserts a sale row and returns its ID.
func (r *SaleRepo) Create(ctx context.Context, s model.Sale) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO sales (station_id, user_id, product, litres, unit_price, total_amount) VALUES (?,?,?,?,?,?)",
		s.StationID, s.UserID, s.Product, s.Litres, s.UnitPrice, s.TotalAmount)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByStation returns the most recent sales at a station, newest first.
func (r *SaleRepo) ListByStation(ctx context.Context, stationID uint64, limit int) ([]model.Sale, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,station_id,user_id,product,litres,unit_price,total_amount,created_at "+
			"FROM sales WHERE station_id=? ORDER BY id DESC LIMIT ?",
		stationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Sale
	for rows.Next() {
		var s model.Sale
		if err := rows.Scan(&s.ID, &s.StationID, &s.UserID, &s.Product, &s.Litres, &s.UnitPrice, &s.TotalAmount, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
