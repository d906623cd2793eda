package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fuelware/petrol-station-pos/internal/model"
)

type StationRepo struct{ DB *sql.DB }

func NewStationRepo(db *sql.DB) *StationRepo { return &StationRepo{DB: db} }

const stationCols = "id,name,address,default_currency,is_active,created_at,updated_at"

// GetByID fetches a station by id. Missing rows map to ErrNotFound so
// handlers can answer 404 without leaking sql internals.
func (r *StationRepo) GetByID(ctx context.Context, id uint64) (model.Station, error) {
	var s model.Station
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+stationCols+" FROM stations WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Name, &s.Address, &s.DefaultCurrency, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Station{}, ErrNotFound
	}
	return s, err
}

// List returns all active stations ordered by name.
func (r *StationRepo) List(ctx context.Context) ([]model.Station, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+stationCols+" FROM stations WHERE is_active=1 ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Station
	for rows.Next() {
		var s model.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.DefaultCurrency, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
