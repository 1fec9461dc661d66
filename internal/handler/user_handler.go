package handler

import (
	"errors"
	"net/http"
	"strconv"

	"socialdog/internal/middleware"
	"socialdog/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /users のAPI
type UserHandler struct {
	uc *usecase.UserUsecase
}

// DI
func NewUserHandler(uc *usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// 登録だけ未認証。他は認証必須。
func (h *UserHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.POST("/users", h.register)
	e.GET("/users", h.list, authMW)
	e.GET("/users/me", h.me, authMW)
	e.PUT("/users/me", h.updateMe, authMW)
	e.GET("/users/:id", h.get, authMW)
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /users
func (h *UserHandler) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	}

	out, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// GET /users
func (h *UserHandler) list(c echo.Context) error {
	page, limit, err := pageAndLimit(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListUsersInput{
		Page:    page,
		Limit:   limit,
		Q:       c.QueryParam("q"),
		OrderBy: c.QueryParam("order_by"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /users/me
func (h *UserHandler) me(c echo.Context) error {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Get(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

type updateMeRequest struct {
	Username    *string `json:"username"`
	FavoriteToy *string `json:"favorite_toy"`
}

// PUT /users/me
func (h *UserHandler) updateMe(c echo.Context) error {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req updateMeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	}

	out, err := h.uc.UpdateMe(c.Request().Context(), userID, usecase.UpdateMeInput{
		Username:    req.Username,
		FavoriteToy: req.FavoriteToy,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /users/:id
func (h *UserHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// page/limitのクエリを読む（default 1/20）
func pageAndLimit(c echo.Context) (int, int, error) {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("invalid page")
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return 0, 0, errors.New("invalid limit")
		}
		limit = l
	}

	return page, limit, nil
}
