package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cruise-booking/internal/model"
	"github.com/iliyamo/cruise-booking/internal/repository"
)

// ReportHandler groups the read-only aggregate queries: repairs per
// ship, passenger counts by status and reservation listings by
// customer name.
type ReportHandler struct {
	Ships        *repository.ShipRepo
	Reservations *repository.ReservationRepo
}

// NewReportHandler constructs a ReportHandler.
func NewReportHandler(ships *repository.ShipRepo, reservations *repository.ReservationRepo) *ReportHandler {
	if ships == nil || reservations == nil {
		panic("nil repository passed to NewReportHandler")
	}
	return &ReportHandler{Ships: ships, Reservations: reservations}
}

// RepairsPerShip handles GET /v1/reports/repairs.  It returns the
// total number of repairs per ship in descending order.
func (h *ReportHandler) RepairsPerShip(c echo.Context) error {
	counts, err := h.Ships.RepairCounts(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"repairs": counts})
}

// PassengersByStatus handles GET /v1/reports/passengers?status=W|R|C.
// It returns how many reservations currently hold the given status.
func (h *ReportHandler) PassengersByStatus(c echo.Context) error {
	st, err := model.ParseStatus(c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be one of W, R, C"})
	}
	n, err := h.Reservations.CountByStatus(c.Request().Context(), st)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status": st,
		"total":  n,
	})
}

// ReservationsByCustomer handles GET /v1/reservations?first_name=&last_name=.
// It lists all reservations held by customers with the given name,
// newest first.
func (h *ReportHandler) ReservationsByCustomer(c echo.Context) error {
	fname := c.QueryParam("first_name")
	lname := c.QueryParam("last_name")
	if fname == "" || lname == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "first_name and last_name are required"})
	}
	details, err := h.Reservations.ListByCustomerName(c.Request().Context(), fname, lname)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": details})
}
