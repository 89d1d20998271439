package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Adds the sold_at column used by the status toggle. Safe to re-run.
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

	addCol := func(sql string) {
		if err := db.Exec(sql).Error; err != nil {
			// 1060: duplicate column, already applied
			if !strings.Contains(err.Error(), "Error 1060") {
				log.Fatalf("Failed: %v", err)
			}
		}
	}

	addCol(`ALTER TABLE products ADD COLUMN sold_at DATETIME(3) NULL AFTER status`)

	fmt.Println("✓ sold_at column added successfully!")
}
