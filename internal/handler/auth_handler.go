package handler

import (
	"errors"
	"net/http"

	"socialdog/internal/middleware"
	"socialdog/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのエラーをHTTPに変換。
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	// 500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /auth の認証API
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// 認証ルートを登録。token系は未認証で叩く。
func (h *AuthHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.POST("/auth/token", h.opaqueLogin)
	e.POST("/auth/token/refresh", h.opaqueRefresh)
	e.POST("/auth/jwt-token", h.jwtLogin)
	e.POST("/auth/jwt-token/refresh", h.jwtRefresh)
	e.POST("/auth/logout", h.logout, authMW)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// 認証系の失敗はクライアントには全部同じ401を返す。
// どのチェックで落ちたかは漏らさない。
func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	case errors.Is(err, usecase.ErrAuthentication),
		errors.Is(err, usecase.ErrTokenInvalid),
		errors.Is(err, usecase.ErrTokenExpired):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// POST /auth/token（不透明トークンのログイン）
func (h *AuthHandler) opaqueLogin(c echo.Context) error {
	var req usecase.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	}

	out, err := h.uc.OpaqueLogin(c.Request().Context(), req)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// POST /auth/token/refresh
func (h *AuthHandler) opaqueRefresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	}

	out, err := h.uc.OpaqueRefresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// POST /auth/jwt-token（JWTのログイン）
func (h *AuthHandler) jwtLogin(c echo.Context) error {
	var req usecase.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	}

	out, err := h.uc.JWTLogin(c.Request().Context(), req)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// POST /auth/jwt-token/refresh
func (h *AuthHandler) jwtRefresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	}

	out, err := h.uc.JWTRefresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

type successResponse struct {
	Message string `json:"message"`
}

// POST /auth/logout（提示中の不透明トークンを失効）
func (h *AuthHandler) logout(c echo.Context) error {
	raw, ok := middleware.BearerFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Logout(c.Request().Context(), raw); err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, successResponse{Message: "logout success"})
}
