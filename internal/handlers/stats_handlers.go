package handlers

import (
	"net/http"

	"mybnb/internal/common"
	"mybnb/internal/metrics"

	"github.com/labstack/echo/v4"
)

// StatsHandlers serves the dashboard reporting endpoints.
type StatsHandlers struct {
	metrics metrics.Provider
}

func NewStatsHandlers(metricsSvc metrics.Provider) *StatsHandlers {
	return &StatsHandlers{metrics: metricsSvc}
}

// Stats handles GET /api/stats. Note the parameter names: this route uses
// start_date/end_date where the other reporting routes use
// startDate/endDate; both are inherited wire contracts.
func (h *StatsHandlers) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	idStr := c.QueryParam("id")
	startStr := c.QueryParam("start_date")
	endStr := c.QueryParam("end_date")
	if idStr == "" || startStr == "" || endStr == "" {
		return common.SendClientError(c, "Missing required parameters")
	}

	companyUID, err := common.ValidateUUID(idStr, "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	start, end, err := common.ParseDateRange(startStr, endStr)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	stats, err := h.metrics.PeriodStats(ctx, companyUID, start, end)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, stats)
}

// Revenue handles GET /api/revenue and returns the raw twelve-element
// month-bucketed series, unwrapped.
func (h *StatsHandlers) Revenue(c echo.Context) error {
	ctx := c.Request().Context()

	idStr := c.QueryParam("id")
	if idStr == "" {
		return common.SendClientError(c, "Missing company ID")
	}
	companyUID, err := common.ValidateUUID(idStr, "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	start, end, err := common.ParseDateRange(c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	series, err := h.metrics.MonthlySeries(ctx, companyUID, start, end)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch revenue records")
	}

	return c.JSON(http.StatusOK, series)
}

// BookingDetails handles GET /api/booking_details: the booking-method
// percentage breakdown for a date range.
func (h *StatsHandlers) BookingDetails(c echo.Context) error {
	ctx := c.Request().Context()

	idStr := c.QueryParam("id")
	startStr := c.QueryParam("startDate")
	endStr := c.QueryParam("endDate")
	if idStr == "" || startStr == "" || endStr == "" {
		return common.SendClientError(c, "Missing required parameters")
	}

	companyUID, err := common.ValidateUUID(idStr, "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	start, end, err := common.ParseDateRange(startStr, endStr)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	breakdown, err := h.metrics.MethodBreakdown(ctx, companyUID, start, end)
	if err != nil {
		return common.SendServerError(c, "Failed to fetch booking records")
	}

	return c.JSON(http.StatusOK, breakdown)
}
