package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fuelware/petrol-station-pos/internal/model"
	"github.com/fuelware/petrol-station-pos/internal/queue"
	"github.com/fuelware/petrol-station-pos/internal/repository"
	publisher "github.com/fuelware/petrol-station-pos/internal/service"
)

// SaleHandler records dispensed-fuel sales and lists recent ones. Every
// recorded sale is also published to the sale.recorded queue; publishing
// is best effort and never fails the request.
type SaleHandler struct {
	Sales    *repository.SaleRepo
	Prices   *repository.PriceRepo
	Stations *repository.StationRepo
	Users    *repository.UserRepo
}

func NewSaleHandler(s *repository.SaleRepo, p *repository.PriceRepo, st *repository.StationRepo, u *repository.UserRepo) *SaleHandler {
	if s == nil || p == nil || st == nil || u == nil {
		panic("nil repository passed to NewSaleHandler")
	}
	return &SaleHandler{Sales: s, Prices: p, Stations: st, Users: u}
}

type createSaleReq struct {
	Product   string  `json:"product"`
	Litres    float64 `json:"litres"`
	UnitPrice float64 `json:"unit_price"` // optional; station price used when 0
}

type saleResp struct {
	ID          uint64    `json:"id"`
	StationID   uint64    `json:"station_id"`
	UserID      uint64    `json:"user_id"`
	Product     string    `json:"product"`
	Litres      float64   `json:"litres"`
	UnitPrice   float64   `json:"unit_price"`
	TotalAmount float64   `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// Create records a sale for the caller's station. The unit price comes
// from the station's current price list unless the cashier overrides it
// (pumps sometimes run on a just-announced price before the list is
// updated).
func (h *SaleHandler) Create(c echo.Context) error {
	var req createSaleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidProduct(req.Product) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown product"})
	}
	if req.Litres <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "positive litres required"})
	}
	if req.UnitPrice < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "negative unit_price"})
	}

	uid, _ := c.Get("user_id").(uint64)
	stationID, _ := c.Get("station_id").(uint64)
	if stationID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no station assigned"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	unitPrice := req.UnitPrice
	if unitPrice == 0 {
		p, err := h.Prices.Get(ctx, stationID, req.Product)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "no price set for product"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		unitPrice = p.Price
	}

	sale := model.Sale{
		StationID:   stationID,
		UserID:      uid,
		Product:     req.Product,
		Litres:      req.Litres,
		UnitPrice:   unitPrice,
		TotalAmount: req.Litres * unitPrice,
	}
	id, err := h.Sales.Create(ctx, sale)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save sale failed"})
	}
	sale.ID = id
	sale.CreatedAt = time.Now().UTC()

	go h.publishRecorded(sale)

	return c.JSON(http.StatusCreated, saleResp(sale))
}

// publishRecorded enriches the sale with station/cashier names and hands
// it to the queue publisher. Runs outside the request; errors are logged
// by the publisher and dropped here.
func (h *SaleHandler) publishRecorded(s model.Sale) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ev := queue.SaleRecordedEvent{
		SaleID:      s.ID,
		StationID:   s.StationID,
		UserID:      s.UserID,
		Product:     s.Product,
		Litres:      s.Litres,
		UnitPrice:   s.UnitPrice,
		TotalAmount: s.TotalAmount,
		RecordedAt:  s.CreatedAt.Format(time.RFC3339),
	}
	if st, err := h.Stations.GetByID(ctx, s.StationID); err == nil {
		ev.StationName = st.Name
		ev.Currency = st.DefaultCurrency
	}
	if u, err := h.Users.GetByID(ctx, s.UserID); err == nil {
		ev.Username = u.Username
	}
	if err := publisher.PublishSaleRecorded(ctx, ev); err != nil {
		log.Printf("sale %d: publish failed: %v", s.ID, err)
	}
}

// List returns recent sales at the caller's station (newest first).
// Admins may inspect any station via ?station_id=.
func (h *SaleHandler) List(c echo.Context) error {
	stationID, _ := c.Get("station_id").(uint64)
	if role, _ := c.Get("role").(string); role == model.RoleAdmin {
		if q := c.QueryParam("station_id"); q != "" {
			if n, err := strconv.ParseUint(q, 10, 64); err == nil {
				stationID = n
			}
		}
	}
	if stationID == 0 {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "no station assigned"})
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sales, err := h.Sales.ListByStation(ctx, stationID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]saleResp, 0, len(sales))
	for _, s := range sales {
		out = append(out, saleResp(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"sales": out})
}
