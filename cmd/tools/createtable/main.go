package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

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

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sellers (
			id CHAR(36) PRIMARY KEY,
			email VARCHAR(254) NOT NULL,
			password_hash VARCHAR(100) NOT NULL,
			display_name VARCHAR(120) NOT NULL,
			phone VARCHAR(32) NULL,
			created_at DATETIME(3) NOT NULL,
			updated_at DATETIME(3) NOT NULL,
			UNIQUE KEY ux_sellers_email (email)
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id CHAR(36) PRIMARY KEY,
			seller_id CHAR(36) NOT NULL,
			expires_at DATETIME(3) NOT NULL,
			created_at DATETIME(3) NOT NULL,
			last_seen_at DATETIME(3) NOT NULL,
			KEY ix_sessions_seller_id (seller_id)
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id CHAR(36) PRIMARY KEY,
			seller_id CHAR(36) NOT NULL,
			name VARCHAR(160) NOT NULL,
			slug VARCHAR(180) NOT NULL,
			description TEXT,
			price_cents BIGINT NOT NULL,
			currency CHAR(3) NOT NULL DEFAULT 'KES',
			status VARCHAR(16) NOT NULL DEFAULT 'available',
			attributes JSON NULL,
			image_key VARCHAR(255),
			image_url VARCHAR(512),
			created_at DATETIME(3) NOT NULL,
			updated_at DATETIME(3) NOT NULL,
			UNIQUE KEY ux_products_slug (slug),
			KEY ix_products_seller_id (seller_id)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id CHAR(36) PRIMARY KEY,
			seller_id CHAR(36) NOT NULL,
			buyer_name VARCHAR(120) NOT NULL,
			buyer_email VARCHAR(254) NOT NULL,
			status VARCHAR(24) NOT NULL DEFAULT 'pending',
			total_cents BIGINT NOT NULL,
			currency CHAR(3) NOT NULL DEFAULT 'KES',
			items JSON NULL,
			created_at DATETIME(3) NOT NULL,
			updated_at DATETIME(3) NOT NULL,
			KEY ix_orders_seller_id (seller_id)
		)`,
	}

	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			log.Fatalf("Failed: %v", err)
		}
	}

	fmt.Println("✓ Tables created successfully!")
}
