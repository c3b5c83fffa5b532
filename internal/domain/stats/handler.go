package stats

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/medcalc/medcalc/internal/platform/auth"
)

// Handler provides the usage statistics endpoint. Requires authentication.
type Handler struct {
	svc *Service
}

// NewHandler creates a new statistics handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers statistics routes on the API group.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/usage-statistics", h.Report)
}

// Report handles GET /api/v1/usage-statistics?start_date=&end_date=&calculator_id=
func (h *Handler) Report(c echo.Context) error {
	var start, end time.Time
	var err error

	if raw := c.QueryParam("start_date"); raw != "" {
		if start, err = time.Parse(time.DateOnly, raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date, expected YYYY-MM-DD")
		}
	}
	if raw := c.QueryParam("end_date"); raw != "" {
		if end, err = time.Parse(time.DateOnly, raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date, expected YYYY-MM-DD")
		}
	}

	var calculatorID *uuid.UUID
	if raw := c.QueryParam("calculator_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid calculator_id")
		}
		calculatorID = &id
	}

	userID := auth.UserIDFromContext(c.Request().Context())
	report, err := h.svc.Report(c.Request().Context(), userID, calculatorID, start, end)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}
