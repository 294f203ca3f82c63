package repository

import (
	"context"
	"time"

	"bibigin/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	// IDで注文を1件取得。見つからなければErrNotFound。
	FindByID(ctx context.Context, orderID string) (model.Order, error)

	// 顧客の注文を作成日時の降順で返す。0件なら空スライス。
	ListByCustomerID(ctx context.Context, customerID string) ([]model.Order, error)

	//注文作成（IDはusecase側で発行済み）
	Create(ctx context.Context, order model.Order) error

	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
