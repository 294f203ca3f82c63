package repository

import (
	"context"

	"bibigin/internal/domain/model"
)

type ProductRepository interface {
	// IDで商品を1件取得。見つからなければErrNotFound。
	FindByID(ctx context.Context, productID string) (model.Product, error)

	// activeな商品を作成日時の降順で返す
	ListActive(ctx context.Context) ([]model.Product, error)

	//商品作成（seed・カタログ管理用）
	Create(ctx context.Context, p model.Product) error
}
