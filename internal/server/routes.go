package server

import (
	"socialdog/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(
	e *echo.Echo,
	authMW echo.MiddlewareFunc,
	authH *handler.AuthHandler,
	userH *handler.UserHandler,
	barkH *handler.BarkHandler,
	sniffH *handler.SniffHandler,
) {
	authH.RegisterRoutes(e, authMW)
	userH.RegisterRoutes(e, authMW)
	barkH.RegisterRoutes(e, authMW)
	sniffH.RegisterRoutes(e, authMW)
}
