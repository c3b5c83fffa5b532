package result

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medcalc/medcalc/internal/domain/calculator"
	"github.com/medcalc/medcalc/internal/platform/auth"
	"github.com/medcalc/medcalc/pkg/pagination"
)

// Handler provides REST endpoints for calculation results. All routes
// require authentication; results are scoped to the requesting user.
type Handler struct {
	svc *Service
}

// NewHandler creates a new calculation result handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers result routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/calculation-results", h.Create)
	api.GET("/calculation-results", h.List)
	api.GET("/calculation-results/:id", h.Get)
}

// Create handles POST /api/v1/calculation-results
func (h *Handler) Create(c echo.Context) error {
	var req CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	userID := auth.UserIDFromContext(c.Request().Context())
	res, err := h.svc.Create(c.Request().Context(), userID, &req)
	switch {
	case errors.Is(err, calculator.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "calculator not found")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNoResult):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, res)
}

// List handles GET /api/v1/calculation-results?calculator_id=...&limit=&offset=
func (h *Handler) List(c echo.Context) error {
	params := pagination.FromContext(c)
	filter := ListFilter{Limit: params.Limit, Offset: params.Offset}

	if raw := c.QueryParam("calculator_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid calculator_id")
		}
		filter.CalculatorID = &id
	}

	userID := auth.UserIDFromContext(c.Request().Context())
	results, total, err := h.svc.List(c.Request().Context(), userID, filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if results == nil {
		results = []*CalculationResult{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(results, total, params.Limit, params.Offset))
}

// Get handles GET /api/v1/calculation-results/:id
func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid result id")
	}

	userID := auth.UserIDFromContext(c.Request().Context())
	res, err := h.svc.Get(c.Request().Context(), userID, id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "calculation result not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, res)
}
