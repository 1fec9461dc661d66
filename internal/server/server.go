package server

import (
	"socialdog/internal/config"
	"socialdog/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Newはechoを組み立てて返す。起動はmain側。
func New(
	cfg config.Config,
	authMW echo.MiddlewareFunc,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	barkH *handler.BarkHandler,
	sniffH *handler.SniffHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// リクエストログと panic回復
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// フロントからのアクセスを許可
	if cfg.FEURL != "" {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: []string{cfg.FEURL},
		}))
	}

	RegisterRoutes(e, authMW, authH, userH, barkH, sniffH)

	return e
}
