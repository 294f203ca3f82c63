package repository

import (
	"context"

	"bibigin/internal/domain/model"
)

type InventoryRepository interface {
	// 在庫の現在値を設定（管理者用）
	SetStock(ctx context.Context, productID string, newStock int64) error

	// 在庫が足りるときだけ減算。
	// 減らせたらtrue、在庫不足ならfalse。
	DecreaseStockIfEnough(ctx context.Context, productID string, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, productID string, qty int64) error

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
