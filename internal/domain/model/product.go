package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// 商品（ジン1銘柄＋サイズ違いを想定）。
// IDは "bibigin-750" のようなスラッグで、カタログ管理側と共有する。
type Product struct {
	ID          string `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	//単価（EUR、小数2桁）
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`

	//在庫本数。負になってはいけない。
	//減算はチェックアウトのトランザクションだけが行う。
	Stock int64 `gorm:"not null" json:"stock"`

	Status ProductStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	ImageURL string `gorm:"type:varchar(500)" json:"image_url"`

	//ボトル容量（L）
	BottleSize float64 `gorm:"not null;default:0" json:"bottle_size"`

	//アルコール度数
	AlcoholContent float64 `gorm:"not null;default:0" json:"alcohol_content"`

	SKU      string `gorm:"type:varchar(100)" json:"sku"`
	Featured bool   `gorm:"not null;default:false" json:"featured"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
