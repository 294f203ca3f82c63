package repository

import (
	"context"

	"bibigin/internal/domain/model"
)

type OrderItemRepository interface {
	//注文明細の一括作成
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error

	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
}
