package handler

import (
	"errors"
	"net/http"

	"bibigin/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse は { message: string } の形に寄せます。
type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//チェックアウト系の型付きエラー
	var pnf *usecase.ProductNotFoundError
	if errors.As(err, &pnf) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: pnf.Error()})
	}
	var ins *usecase.InsufficientStockError
	if errors.As(err, &ins) {
		return c.JSON(http.StatusConflict, ErrorResponse{Error: ins.Error()})
	}
	if errors.Is(err, usecase.ErrEmptyCart) {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cart is empty"})
	}
	if errors.Is(err, usecase.ErrUserNotFound) {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
	}
	if errors.Is(err, usecase.ErrOrderPlacementFailed) {
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "order could not be placed, please retry"})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// /products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/main", h.main)
	e.GET("/products/:id", h.detail)
}

func (h *ProductHandler) list(c echo.Context) error {
	out, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// 単一商品ストアのトップ表示用
func (h *ProductHandler) main(c echo.Context) error {
	p, found, err := h.uc.MainProduct(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	if !found {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) detail(c echo.Context) error {
	p, found, err := h.uc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	if !found {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	return c.JSON(http.StatusOK, p)
}

//middleware.AuthJWT が c.Set("user_id", string) した値を取り出す

func getUserIDFromContext(c echo.Context) (string, bool) {
	v := c.Get("user_id")
	if v == nil {
		return "", false
	}

	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}
