package handler

import (
	"net/http"
	"strconv"
	"time"

	"shawarma/internal/config"
	"shawarma/internal/middleware"
	"shawarma/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 売上ダッシュボード。全部管理者のみ。
type DashboardHandler struct {
	uc *usecase.DashboardUsecase
}

func NewDashboardHandler(uc *usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/dashboard")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/summary", h.summary)
	g.GET("/sales/daily", h.dailySales)
	g.GET("/sales/monthly", h.monthlySales)
	g.GET("/sales/yearly", h.yearlySales)
	g.GET("/sales/top-items", h.topItems)
	g.GET("/sales/hourly", h.salesByHour)
}

func (h *DashboardHandler) summary(c echo.Context) error {
	s, err := h.uc.GetSummary(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// GET /dashboard/sales/daily?date=2025-01-15
func (h *DashboardHandler) dailySales(c echo.Context) error {
	date, err := parseDateParam(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid date"})
	}

	rep, err := h.uc.GetDailySales(c.Request().Context(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

// GET /dashboard/sales/monthly?month=1&year=2025
func (h *DashboardHandler) monthlySales(c echo.Context) error {
	month, err := parseIntParam(c.QueryParam("month"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid month"})
	}
	year, err := parseIntParam(c.QueryParam("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid year"})
	}

	rep, err := h.uc.GetMonthlySales(c.Request().Context(), month, year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *DashboardHandler) yearlySales(c echo.Context) error {
	year, err := parseIntParam(c.QueryParam("year"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid year"})
	}

	rows, err := h.uc.GetYearlySales(c.Request().Context(), year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// GET /dashboard/sales/top-items?topN=5
func (h *DashboardHandler) topItems(c echo.Context) error {
	topN := 5
	if raw := c.QueryParam("topN"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid topN"})
		}
		topN = n
	}

	rows, err := h.uc.GetTopSellingItems(c.Request().Context(), topN)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *DashboardHandler) salesByHour(c echo.Context) error {
	date, err := parseDateParam(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid date"})
	}

	rows, err := h.uc.GetSalesByHour(c.Request().Context(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// "2006-01-02"優先、ダメならRFC3339
func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if d, err := time.Parse("2006-01-02", raw); err == nil {
		return &d, nil
	}
	d, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseIntParam(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
