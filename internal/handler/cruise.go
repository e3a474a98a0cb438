package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cruise-booking/internal/model"
	"github.com/iliyamo/cruise-booking/internal/repository"
)

// CruiseHandler exposes cruise registration, ship assignment and the
// seat availability query.
type CruiseHandler struct {
	Cruises *repository.CruiseRepo
}

// NewCruiseHandler constructs a CruiseHandler.
func NewCruiseHandler(cruises *repository.CruiseRepo) *CruiseHandler {
	if cruises == nil {
		panic("nil repository passed to NewCruiseHandler")
	}
	return &CruiseHandler{Cruises: cruises}
}

// Create handles POST /v1/cruises.  The body carries the cruise
// fields plus the id of the ship operating it; the cruise and its
// ship assignment are created together.  Dates are RFC3339.
func (h *CruiseHandler) Create(c echo.Context) error {
	var body struct {
		CNum          uint64 `json:"cnum"`
		Cost          int64  `json:"cost"`
		NumStops      int64  `json:"num_stops"`
		DepartureDate string `json:"departure_date"`
		ArrivalDate   string `json:"arrival_date"`
		ArrivalPort   string `json:"arrival_port"`
		DeparturePort string `json:"departure_port"`
		ShipID        uint64 `json:"ship_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.CNum == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cnum must be a positive integer"})
	}
	if body.ShipID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ship_id must be a positive integer"})
	}
	if err := checkRange("cost", body.Cost, 1, int64(^uint32(0))); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cost must be a positive integer"})
	}
	if body.NumStops < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "num_stops must not be negative"})
	}
	if err := checkLen("arrival_port", body.ArrivalPort, 1, 5); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := checkLen("departure_port", body.DeparturePort, 1, 5); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	departure, err := time.Parse(time.RFC3339, body.DepartureDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "departure_date must be RFC3339"})
	}
	arrival, err := time.Parse(time.RFC3339, body.ArrivalDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "arrival_date must be RFC3339"})
	}

	cruise := &model.Cruise{
		CNum:          body.CNum,
		Cost:          uint32(body.Cost),
		NumStops:      uint32(body.NumStops),
		DepartureDate: departure.UTC(),
		ArrivalDate:   arrival.UTC(),
		ArrivalPort:   body.ArrivalPort,
		DeparturePort: body.DeparturePort,
	}
	ctx := c.Request().Context()
	if err := h.Cruises.Create(ctx, cruise); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cruise number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if err := h.Cruises.AssignShip(ctx, cruise.CNum, body.ShipID); err != nil {
		if errors.Is(err, repository.ErrShipNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ship not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, cruise)
}

// AvailableSeats handles GET /v1/cruises/:cnum/seats.  It returns the
// cruise's seat headroom.  A negative headroom signals upstream data
// corruption and is reported as a conflict instead of being clamped
// to zero.
func (h *CruiseHandler) AvailableSeats(c echo.Context) error {
	cnum, err := strconv.ParseUint(c.Param("cnum"), 10, 64)
	if err != nil || cnum == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid cruise number"})
	}
	available, err := h.Cruises.AvailableSeats(c.Request().Context(), cnum)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCruiseNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cruise not found"})
		case errors.Is(err, repository.ErrCapacityInconsistent):
			return c.JSON(http.StatusConflict, echo.Map{
				"error":           "seat capacity inconsistent",
				"available_seats": available,
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"cnum":            cnum,
		"available_seats": available,
	})
}
