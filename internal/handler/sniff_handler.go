package handler

import (
	"net/http"

	"socialdog/internal/middleware"
	"socialdog/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /sniffs のAPI
type SniffHandler struct {
	uc *usecase.SniffUsecase
}

// DI
func NewSniffHandler(uc *usecase.SniffUsecase) *SniffHandler {
	return &SniffHandler{uc: uc}
}

func (h *SniffHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.POST("/sniffs", h.create, authMW)
}

type sniffRequest struct {
	BarkID string `json:"bark_id"`
}

// POST /sniffs（バークにいいね）
func (h *SniffHandler) create(c echo.Context) error {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req sniffRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	}
	if req.BarkID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bark_id required"})
	}

	out, err := h.uc.Create(c.Request().Context(), userID, req.BarkID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
