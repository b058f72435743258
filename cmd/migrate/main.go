package main

import (
	"log"
	"os"

	"shop-assistant-be/internal/model"
	"shop-assistant-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS pg_trgm;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Product{},
		&model.ProductItem{},
		&model.ProductPrice{},
		&model.UnitAlias{},
		&model.ConversationContext{},
		&model.Cart{},
		&model.CartItem{},
		&model.InteractionLog{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Search Function & Indexes
	log.Println("Step 3: Creating Search Function and Indexes...")

	postMigrationSQL := []string{
		// Function: the catalog full-text document. IMMUTABLE so the
		// expression index below stays valid.
		`CREATE OR REPLACE FUNCTION product_search_document(
			description text, web_description text, brand text, category text, department text
		) RETURNS tsvector LANGUAGE sql IMMUTABLE AS $$
			SELECT to_tsvector('portuguese',
				coalesce(description, '') || ' ' ||
				coalesce(web_description, '') || ' ' ||
				coalesce(brand, '') || ' ' ||
				coalesce(category, '') || ' ' ||
				coalesce(department, ''))
		$$;`,

		// Index: full-text search over the catalog document
		`CREATE INDEX IF NOT EXISTS idx_products_search_document ON products
		 USING GIN (product_search_document(description, web_description, brand, category, department));`,

		// Index: trigram similarity fallback
		`CREATE INDEX IF NOT EXISTS idx_products_description_trgm ON products
		 USING GIN (description gin_trgm_ops);`,

		// Index: one open cart per session
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_carts_open_session ON carts (session_id)
		 WHERE status = 'open';`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
