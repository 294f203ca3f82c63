package repository

import (
	"context"
	"time"

	"bibigin/internal/domain/model"
)

// リフレッシュトークンの保存・取得・更新・削除
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error

	// hashで1件取得。見つからなければ (nil, nil)。
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)

	MarkUsed(ctx context.Context, tokenID string, usedAt time.Time) error
	DeleteByID(ctx context.Context, tokenID string) error

	//replay検知時などに全失効させる
	DeleteAllByUserID(ctx context.Context, userID string) error
}
