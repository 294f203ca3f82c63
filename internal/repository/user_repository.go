package repository

import (
	"context"

	"bibigin/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error

	// IDからユーザーを1件取得。見つからなければ (nil, nil)。
	FindByID(ctx context.Context, userID string) (*model.User, error)

	// メールからユーザーを1件取得。見つからなければ (nil, nil)。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// ユーザー情報の更新（最終ログイン・プロフィールなど）
	Update(ctx context.Context, user *model.User) error

	// 注文IDをordersに追記し、total_spentにtotalを加算する。
	// チェックアウトのトランザクション内だけで呼ぶこと。
	// ユーザーが存在しなければErrUserNotFound。
	AppendOrder(ctx context.Context, userID string, orderID string, total decimal.Decimal) error

	//トークンのバージョンを＋1（強制ログアウト）
	IncrementTokenVersion(ctx context.Context, userID string) error
}
