package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cruise-booking/internal/model"
	"github.com/iliyamo/cruise-booking/internal/repository"
)

// CaptainHandler exposes captain registration and removal.
type CaptainHandler struct {
	Captains *repository.CaptainRepo
}

// NewCaptainHandler constructs a CaptainHandler.
func NewCaptainHandler(captains *repository.CaptainRepo) *CaptainHandler {
	if captains == nil {
		panic("nil repository passed to NewCaptainHandler")
	}
	return &CaptainHandler{Captains: captains}
}

// Create handles POST /v1/captains.
func (h *CaptainHandler) Create(c echo.Context) error {
	var body struct {
		ID          uint64 `json:"id"`
		FullName    string `json:"full_name"`
		Nationality string `json:"nationality"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id must be a positive integer"})
	}
	if err := checkLen("full_name", body.FullName, 1, 128); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if err := checkLen("nationality", body.Nationality, 1, 24); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	captain := &model.Captain{ID: body.ID, FullName: body.FullName, Nationality: body.Nationality}
	if err := h.Captains.Create(c.Request().Context(), captain); err != nil {
		if errors.Is(err, repository.ErrDuplicateID) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "captain id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusCreated, captain)
}

// Delete handles DELETE /v1/captains/:id.
func (h *CaptainHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid captain id"})
	}
	if err := h.Captains.Delete(c.Request().Context(), id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCaptainNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "captain not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "captain still has dependent records"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.NoContent(http.StatusNoContent)
}
