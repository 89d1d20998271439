package sellers

import "time"

type Seller struct {
	ID           string    `gorm:"primaryKey;type:char(36)"`
	Email        string    `gorm:"type:varchar(254);not null;uniqueIndex:ux_sellers_email"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	DisplayName  string    `gorm:"type:varchar(120);not null"`
	Phone        *string   `gorm:"type:varchar(32)"`
	CreatedAt    time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt    time.Time `gorm:"type:datetime(3);not null"`
}

func (Seller) TableName() string { return "sellers" }
