package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// 会員（顧客）。IDは登録時に発行するUUID。
// OrdersとTotalSpentはチェックアウトのトランザクションだけが更新する。
// コミットされた注文と常に一致していなければならない。
type User struct {
	ID           string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`

	FirstName string `gorm:"type:varchar(50)" json:"first_name"`
	LastName  string `gorm:"type:varchar(50)" json:"last_name"`
	Phone     string `gorm:"type:varchar(30)" json:"phone"`

	//プロフィールの住所（注文の配送先とは別物）
	Street     string `gorm:"type:varchar(100)" json:"street"`
	City       string `gorm:"type:varchar(50)" json:"city"`
	Province   string `gorm:"type:varchar(50)" json:"province"`
	PostalCode string `gorm:"type:varchar(10)" json:"postal_code"`
	Country    string `gorm:"type:varchar(50)" json:"country"`

	Role         Role `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	TokenVersion int  `gorm:"not null;default:0" json:"-"`
	IsActive     bool `gorm:"not null;default:true" json:"is_active"`

	//注文IDの追記専用リスト
	Orders pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"orders"`

	//累計購入額（注文totalの合計）
	TotalSpent decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_spent"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
