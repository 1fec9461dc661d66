package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"socialdog/internal/middleware"
	"socialdog/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /barks のAPI。全ルート認証必須。
type BarkHandler struct {
	uc *usecase.BarkUsecase
}

// DI
func NewBarkHandler(uc *usecase.BarkUsecase) *BarkHandler {
	return &BarkHandler{uc: uc}
}

func (h *BarkHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	e.GET("/barks", h.list, authMW)
	e.GET("/barks/export", h.exportCSV, authMW)
	e.POST("/barks", h.create, authMW)
	e.GET("/barks/:id", h.get, authMW)
	e.PUT("/barks/:id", h.update, authMW)
	e.DELETE("/barks/:id", h.delete, authMW)
}

type barkRequest struct {
	Message string `json:"message"`
}

// POST /barks
func (h *BarkHandler) create(c echo.Context) error {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req barkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateBarkInput{
		Message: req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// GET /barks
func (h *BarkHandler) list(c echo.Context) error {
	in, err := h.listInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// GET /barks/export（同じフィルタでCSVを返す）
func (h *BarkHandler) exportCSV(c echo.Context) error {
	in, err := h.listInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="barks.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"id", "username", "message", "sniff_count", "created_at"}); err != nil {
		return err
	}
	for _, b := range out.Items {
		record := []string{
			b.ID,
			b.User.Username,
			b.Message,
			strconv.FormatInt(b.SniffCount, 10),
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()

	return w.Error()
}

// GET /barks/:id
func (h *BarkHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// PUT /barks/:id
func (h *BarkHandler) update(c echo.Context) error {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req barkRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation error"})
	}

	out, err := h.uc.Update(c.Request().Context(), c.Param("id"), userID, usecase.CreateBarkInput{
		Message: req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// DELETE /barks/:id
func (h *BarkHandler) delete(c echo.Context) error {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// クエリパラメータを読む
func (h *BarkHandler) listInput(c echo.Context) (usecase.ListBarksInput, error) {
	page, limit, err := pageAndLimit(c)
	if err != nil {
		return usecase.ListBarksInput{}, err
	}

	return usecase.ListBarksInput{
		Page:     page,
		Limit:    limit,
		Q:        c.QueryParam("q"),
		Username: c.QueryParam("username"),
		OrderBy:  c.QueryParam("order_by"),
		Trending: c.QueryParam("trending") == "true",
	}, nil
}
