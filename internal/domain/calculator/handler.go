package calculator

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler provides REST endpoints for the calculator catalog. The catalog is
// public: listing and reading calculators needs no authentication, matching
// the original API.
type Handler struct {
	svc *Service
}

// NewHandler creates a new calculator handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers catalog routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/calculators", h.List)
	api.GET("/calculators/:id", h.Get)
}

// List handles GET /api/v1/calculators?category=...
func (h *Handler) List(c echo.Context) error {
	calcs, err := h.svc.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if calcs == nil {
		calcs = []*Calculator{}
	}
	return c.JSON(http.StatusOK, calcs)
}

// Get handles GET /api/v1/calculators/:id
func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid calculator id")
	}
	calc, err := h.svc.Get(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "calculator not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, calc)
}
