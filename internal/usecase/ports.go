package usecase

import (
	"context"
	"time"
)

// UUID等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 注文確認メールに渡す顧客情報
type OrderEmailData struct {
	OrderID   string `json:"orderId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// 注文確認メールの送信。顧客向けと管理者向けをまとめて送る。
// 失敗しても注文は失敗にしない（呼び出し側がログだけ残す）。
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, data OrderEmailData) error
}
