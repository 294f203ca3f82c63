package handler

import (
	"net/http"

	"bibigin/internal/config"
	"bibigin/internal/domain/model"
	"bibigin/internal/middleware"
	"bibigin/internal/repository"
	"bibigin/internal/usecase"
	"bibigin/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	checkoutUC *usecase.CheckoutUsecase
	orderUC    *usecase.OrderUsecase
}

func NewOrderHandler(checkoutUC *usecase.CheckoutUsecase, orderUC *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{checkoutUC: checkoutUC, orderUC: orderUC}
}

type OrderCreateItem struct {
	ProductID string          `json:"product_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

type OrderCreateShipping struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// カートはクライアント側が持つ。サーバーは注文時に受け取って検証する。
type OrderCreateRequest struct {
	Email    string              `json:"email"`
	Items    []OrderCreateItem   `json:"items"`
	Shipping OrderCreateShipping `json:"shipping"`
	Notes    string              `json:"notes"`
}

type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, userRepo repository.UserRepository) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.TokenVersionGuard(userRepo))

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	lines := make([]model.CartLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, model.CartLine{
			ProductID: it.ProductID,
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
		})
	}

	shipping := model.ShippingAddress{
		FirstName:  req.Shipping.FirstName,
		LastName:   req.Shipping.LastName,
		Street:     req.Shipping.Street,
		City:       req.Shipping.City,
		PostalCode: req.Shipping.PostalCode,
		Country:    req.Shipping.Country,
		Phone:      req.Shipping.Phone,
	}

	//フォームと同じルールでサーバー側でも検証する
	if fe := validator.ValidateCheckout(req.Email, lines, shipping, req.Notes); !fe.Empty() {
		return c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "validation error",
			Fields: fe,
		})
	}

	out, err := h.checkoutUC.PlaceOrder(c.Request().Context(), usecase.CheckoutInput{
		UserID:        userID,
		CustomerEmail: req.Email,
		Lines:         lines,
		Shipping:      shipping,
		Notes:         req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.orderUC.ListByCustomer(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, found, err := h.orderUC.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}

	//他人の注文は存在しない扱い（IDの探り当てをさせない）
	if !found || out.CustomerID != userID {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	}

	return c.JSON(http.StatusOK, out)
}
