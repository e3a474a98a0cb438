package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cruise-booking/internal/model"
	"github.com/iliyamo/cruise-booking/internal/repository"
)

// ShipHandler exposes ship registration and removal.  Ships carry a
// caller-supplied identifier and are immutable once created.
type ShipHandler struct {
	Ships *repository.ShipRepo
}

// NewShipHandler constructs a ShipHandler.
func NewShipHandler(ships *repository.ShipRepo) *ShipHandler {
	if ships == nil {
		panic("nil repository passed to NewShipHandler")
	}
	return &ShipHandler{Ships: ships}
}

// Create handles POST /v1/ships.  The request body carries the ship's
// id, make, model, age and seat capacity; all fields are validated
// against the registration limits before the insert.
func (h *ShipHandler) Create(c echo.Context) error {
	var body struct {
		ID    uint64 `json:"id"`
		Make  string `json:"make"`
		Model string `json:"model"`
		Age   int64  `json:"age"`
		Seats int64  `json:"seats"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a positive integer"})
	}
	if err := checkLen("make", body.Make, 1, 32); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := checkLen("model", body.Model, 1, 64); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := checkRange("age", body.Age, 0, maxShipAge); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := checkRange("seats", body.Seats, 0, maxShipSeats); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ship := &model.Ship{
		ID:    body.ID,
		Make:  body.Make,
		Model: body.Model,
		Age:   uint32(body.Age),
		Seats: int32(body.Seats),
	}
	if err := h.Ships.Create(c.Request().Context(), ship); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "ship id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, ship)
}

// Get handles GET /v1/ships/:id.
func (h *ShipHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ship id"})
	}
	ship, err := h.Ships.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrShipNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ship not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, ship)
}

// Delete handles DELETE /v1/ships/:id.
func (h *ShipHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ship id"})
	}
	if err := h.Ships.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrShipNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ship not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "ship still has dependent records"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
