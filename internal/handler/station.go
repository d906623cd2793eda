package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fuelware/petrol-station-pos/internal/repository"
)

// StationHandler exposes station records. GET /api/stations/:id is the
// endpoint every POS terminal calls after login to resolve its display
// currency, so its responses sit behind the Redis response cache.
type StationHandler struct {
	Stations *repository.StationRepo
}

func NewStationHandler(s *repository.StationRepo) *StationHandler {
	if s == nil {
		panic("nil repository passed to NewStationHandler")
	}
	return &StationHandler{Stations: s}
}

// Get returns one station by id, including its default_currency.
func (h *StationHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid station id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st, err := h.Stations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "station not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, st)
}

// List returns all active stations (admin/manager).
func (h *StationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stations, err := h.Stations.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stations": stations})
}
