package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fuelware/petrol-station-pos/internal/model"
	"github.com/fuelware/petrol-station-pos/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,username,full_name,password_hash,role,COALESCE(station_id,0),is_active,created_at,updated_at"

// Create inserts a user and returns its ID. A stationID of zero stores
// NULL so admins are not tied to any station.
func (r *UserRepo) Create(ctx context.Context, username, fullName, password, role string, stationID uint64, cost int) (uint64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var sid any
	if stationID != 0 {
		sid = stationID
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, full_name, password_hash, role, station_id) VALUES (?,?,?,?,?)",
		username, fullName, hash, role, sid)
	if err != nil {
		// 1062 = MySQL duplicate key
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.FullName, &u.PasswordHash, &u.Role, &u.StationID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.FullName, &u.PasswordHash, &u.Role, &u.StationID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
