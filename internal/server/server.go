package server

import (
	"shawarma/internal/config"
	"shawarma/internal/handler"
	"shawarma/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Newはechoサーバーを組み立てる。起動はmainで。
func New(
	cfg config.Config,
	authH *handler.AuthHandler,
	menuH *handler.MenuHandler,
	orderH *handler.OrderHandler,
	dashH *handler.DashboardHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	//IPごとに20req/s
	e.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(rate.Limit(20))))
	e.Use(middleware.RequestLogger())

	RegisterRoutes(e, cfg, authH, menuH, orderH, dashH)

	return e
}
