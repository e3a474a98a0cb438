package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cruise-booking/internal/booking"
	"github.com/iliyamo/cruise-booking/internal/repository"
)

// BookingHandler exposes the booking operation.  All decision logic
// lives in the booking engine; the handler only translates HTTP to
// engine calls and errors to status codes.
type BookingHandler struct {
	Engine *booking.Engine
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(engine *booking.Engine) *BookingHandler {
	if engine == nil {
		panic("nil engine passed to NewBookingHandler")
	}
	return &BookingHandler{Engine: engine}
}

// Book handles POST /v1/bookings.  The body carries the customer id
// and cruise number.  A new reservation answers 201; a promotion of
// an existing one answers 200.  Either way the response carries the
// resulting outcome.
func (h *BookingHandler) Book(c echo.Context) error {
	var body struct {
		CustomerID uint64 `json:"customer_id"`
		CruiseID   uint64 `json:"cruise_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.CustomerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_id must be a positive integer"})
	}
	if body.CruiseID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cruise_id must be a positive integer"})
	}

	out, err := h.Engine.Book(c.Request().Context(), body.CustomerID, body.CruiseID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCustomerNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		case errors.Is(err, repository.ErrCruiseNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "cruise not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	return c.JSON(status, out)
}
