package products

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusAvailable = "available"
	StatusSold      = "sold"
)

type Product struct {
	ID          string         `gorm:"primaryKey;type:char(36)"`
	SellerID    string         `gorm:"type:char(36);not null;index:ix_products_seller_id"`
	Name        string         `gorm:"type:varchar(160);not null"`
	Slug        string         `gorm:"type:varchar(180);not null;uniqueIndex:ux_products_slug"`
	Description string         `gorm:"type:text"`
	PriceCents  int64          `gorm:"not null"`
	Currency    string         `gorm:"type:char(3);not null;default:'KES'"`
	Status      string         `gorm:"type:varchar(16);not null;default:'available'"`
	SoldAt      *time.Time     `gorm:"type:datetime(3)"`
	Attributes  datatypes.JSON `gorm:"type:json"`
	ImageKey    string         `gorm:"type:varchar(255)"`
	ImageURL    string         `gorm:"type:varchar(512)"`
	CreatedAt   time.Time      `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time      `gorm:"type:datetime(3);not null"`
}

func (Product) TableName() string { return "products" }

// Sold reports whether the product is currently marked sold.
// Invariant (eventually consistent): SoldAt is set iff Sold.
func (p Product) Sold() bool { return p.Status == StatusSold }

func statusFor(sold bool) string {
	if sold {
		return StatusSold
	}
	return StatusAvailable
}
