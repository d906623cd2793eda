package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fuelware/petrol-station-pos/internal/model"
	"github.com/fuelware/petrol-station-pos/internal/repository"
)

// PriceHandler manages per-station fuel prices.
type PriceHandler struct {
	Prices *repository.PriceRepo
}

func NewPriceHandler(p *repository.PriceRepo) *PriceHandler {
	if p == nil {
		panic("nil repository passed to NewPriceHandler")
	}
	return &PriceHandler{Prices: p}
}

type setPriceReq struct {
	Price float64 `json:"price"`
}

type priceResp struct {
	StationID uint64    `json:"station_id"`
	Product   string    `json:"product"`
	Price     float64   `json:"price"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List returns the current price of every product at a station.
func (h *PriceHandler) List(c echo.Context) error {
	stationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || stationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid station id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	prices, err := h.Prices.ListByStation(ctx, stationID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]priceResp, 0, len(prices))
	for _, p := range prices {
		out = append(out, priceResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"prices": out})
}

// Set writes the price of one product at a station (admin/manager).
func (h *PriceHandler) Set(c echo.Context) error {
	stationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || stationID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid station id"})
	}
	product := c.Param("product")
	if !model.ValidProduct(product) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown product"})
	}
	var req setPriceReq
	if err := c.Bind(&req); err != nil || req.Price <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "positive price required"})
	}

	// Managers may only set prices at their own station.
	if role, _ := c.Get("role").(string); role == model.RoleManager {
		if sid, _ := c.Get("station_id").(uint64); sid != stationID {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Prices.Upsert(ctx, stationID, product, req.Price); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save price failed"})
	}
	p, err := h.Prices.Get(ctx, stationID, product)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save price failed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, priceResp(p))
}
