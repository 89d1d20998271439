package orders

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Order struct {
	ID         string         `gorm:"primaryKey;type:char(36)"`
	SellerID   string         `gorm:"type:char(36);not null;index:ix_orders_seller_id"`
	BuyerName  string         `gorm:"type:varchar(120);not null"`
	BuyerEmail string         `gorm:"type:varchar(254);not null"`
	Status     string         `gorm:"type:varchar(24);not null;default:'pending'"`
	TotalCents int64          `gorm:"not null"`
	Currency   string         `gorm:"type:char(3);not null;default:'KES'"`
	Items      datatypes.JSON `gorm:"type:json"`
	CreatedAt  time.Time      `gorm:"type:datetime(3);not null"`
	UpdatedAt  time.Time      `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

// Item is one line of the order's JSON item snapshot. Snapshotted at order
// time so later product edits don't rewrite history.
type Item struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

func (o Order) ItemList() []Item {
	var items []Item
	if len(o.Items) == 0 {
		return nil
	}
	if err := json.Unmarshal(o.Items, &items); err != nil {
		return nil
	}
	return items
}
