package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cruise-booking/internal/model"
	"github.com/iliyamo/cruise-booking/internal/repository"
)

// CustomerHandler exposes customer registration.
type CustomerHandler struct {
	Customers *repository.CustomerRepo
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(customers *repository.CustomerRepo) *CustomerHandler {
	if customers == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{Customers: customers}
}

// Create handles POST /v1/customers.  The database assigns the id.
func (h *CustomerHandler) Create(c echo.Context) error {
	var body struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := checkLen("first_name", body.FirstName, 1, 32); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := checkLen("last_name", body.LastName, 1, 32); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	customer := &model.Customer{FirstName: body.FirstName, LastName: body.LastName}
	if err := h.Customers.Create(c.Request().Context(), customer); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, customer)
}

// Get handles GET /v1/customers/:id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}
	customer, err := h.Customers.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, customer)
}
