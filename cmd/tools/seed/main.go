package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Mwvndva/byblos/internal/modules/orders"
	"github.com/Mwvndva/byblos/internal/modules/products"
	"github.com/Mwvndva/byblos/internal/modules/sellers"
)

// Seeds a demo seller with a handful of products and orders.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "byblos:byblos@tcp(localhost:3306)/byblos?parseTime=true&multiStatements=true&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	seller, err := sellers.NewRepo(db).Create(ctx, sellers.Seller{
		Email:        "demo@byblos.test",
		PasswordHash: string(hash),
		DisplayName:  "Demo Shop",
	})
	if err != nil {
		log.Fatalf("Failed to create seller: %v", err)
	}

	repo := products.NewRepo(db)
	names := []struct {
		name  string
		slug  string
		cents int64
	}{
		{"Leather Satchel", "leather-satchel", 450000},
		{"Beaded Necklace", "beaded-necklace", 120000},
		{"Kitenge Tote Bag", "kitenge-tote-bag", 180000},
	}
	var first products.Product
	for i, n := range names {
		p, err := repo.CreateProduct(ctx, products.Product{
			SellerID:    seller.ID,
			Name:        n.name,
			Slug:        n.slug,
			Description: "Handmade, one of a kind.",
			PriceCents:  n.cents,
			Currency:    "KES",
			Status:      products.StatusAvailable,
		})
		if err != nil {
			log.Fatalf("Failed to create product: %v", err)
		}
		if i == 0 {
			first = p
		}
	}

	items, _ := json.Marshal([]orders.Item{{
		ProductID:      first.ID,
		ProductName:    first.Name,
		Quantity:       1,
		UnitPriceCents: first.PriceCents,
	}})
	order := orders.Order{
		ID:         uuid.NewString(),
		SellerID:   seller.ID,
		BuyerName:  "Amina K.",
		BuyerEmail: "amina@example.com",
		Status:     "paid",
		TotalCents: first.PriceCents,
		Currency:   "KES",
		Items:      datatypes.JSON(items),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := db.WithContext(ctx).Create(&order).Error; err != nil {
		log.Fatalf("Failed to create order: %v", err)
	}

	fmt.Println("✓ Demo data seeded: demo@byblos.test / password123")
}
