package main

import (
	"log"
	"os"
	"strings"

	"nexafin/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true). Any
	// permission errors are logged and ignored.
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	if !shouldMigrate {
		return
	}
	// Migrate models individually so a failure on one doesn't block others.
	// Users first: everything else hangs off them.
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Printf("migration warning (users): %v", err)
	}
	if err := db.AutoMigrate(&models.FinancialProfile{}); err != nil {
		log.Printf("migration warning (financial_profiles): %v", err)
	}
	if err := db.AutoMigrate(&models.Portfolio{}); err != nil {
		log.Printf("migration warning (portfolios): %v", err)
	}
	if err := db.AutoMigrate(&models.Startup{}); err != nil {
		log.Printf("migration warning (startups): %v", err)
	}
	if err := db.AutoMigrate(&models.InvestmentRequest{}); err != nil {
		log.Printf("migration warning (investment_requests): %v", err)
	}
	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		log.Printf("migration warning (notifications): %v", err)
	}
}
