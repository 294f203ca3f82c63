package model

import "github.com/shopspring/decimal"

// カート1行。カートはクライアント側が持ち、
// チェックアウトのリクエストボディでそのまま送られてくる。
// サーバー側にカートのテーブルは無い。
type CartLine struct {
	ProductID string `json:"product_id"`

	//カート追加時点の単価スナップショット
	UnitPrice decimal.Decimal `json:"price"`

	//数量（1以上）。0の行はクライアントが削除する。
	Quantity int64 `json:"quantity"`
}
