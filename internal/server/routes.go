package server

import (
	"net/http"

	"shawarma/internal/config"
	"shawarma/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	authH *handler.AuthHandler,
	menuH *handler.MenuHandler,
	orderH *handler.OrderHandler,
	dashH *handler.DashboardHandler,
) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	authH.RegisterRoutes(e, cfg)
	menuH.RegisterRoutes(e, cfg)
	orderH.RegisterRoutes(e, cfg)
	dashH.RegisterRoutes(e, cfg)
}
