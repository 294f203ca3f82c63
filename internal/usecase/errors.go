package usecase

import (
	"errors"
	"fmt"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// チェックアウトのエラー。すべてそのリクエストでは回復不能で、
// クライアントはカートを保持したままユーザーに提示する。
var (
	//カートが空
	ErrEmptyCart = errors.New("cart is empty")

	//注文しようとしたユーザーが存在しない
	ErrUserNotFound = errors.New("user not found")

	//リトライ上限に達してコミットできなかった
	ErrOrderPlacementFailed = errors.New("order placement failed")
)

// カートが参照する商品が存在しない（またはカタログから外れている）。
// 部分的な注文は作らない。
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// 在庫不足。Availableは読み時点の在庫本数。
type InsufficientStockError struct {
	ProductID string
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: available %d", e.ProductID, e.Available)
}
