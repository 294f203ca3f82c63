package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ステータス文字列が既知の値か
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// 配送先。注文に埋め込んで保存し、注文後は変更しない。
type ShippingAddress struct {
	FirstName  string `gorm:"type:varchar(50);not null" json:"first_name"`
	LastName   string `gorm:"type:varchar(50);not null" json:"last_name"`
	Street     string `gorm:"type:varchar(100);not null" json:"street"`
	City       string `gorm:"type:varchar(50);not null" json:"city"`
	PostalCode string `gorm:"type:varchar(10);not null" json:"postal_code"`
	Country    string `gorm:"type:varchar(50);not null" json:"country"`
	Phone      string `gorm:"type:varchar(30)" json:"phone"`
}

// 注文。チェックアウトのトランザクションだけが作成する。
// 作成後のステータス変更は管理側（gestionale相当）の仕事。
type Order struct {
	ID string `gorm:"type:varchar(36);primaryKey" json:"id"`

	CustomerID    string `gorm:"type:varchar(36);not null;index" json:"customer_id"`
	CustomerEmail string `gorm:"type:varchar(100);not null" json:"customer_email"`

	Shipping ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping"`

	Subtotal     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	ShippingCost decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"shipping_cost"`
	Total        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`

	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`

	//今はmanual（銀行振込）のみ
	PaymentMethod string `gorm:"type:varchar(20);not null" json:"payment_method"`

	Notes string `gorm:"type:varchar(500)" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
