package main

import (
	"log"
	"os"

	"shop-assistant-be/internal/model"
	"shop-assistant-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding unit aliases...")
	seedUnitAliases(db)

	log.Println("Seeding sample catalog...")
	seedCatalog(db)

	log.Println("✅ Success: Seed completed.")
}

func seedUnitAliases(db *gorm.DB) {
	aliases := []model.UnitAlias{
		{Alias: "caixa", Unit: "CX", Active: true},
		{Alias: "cx", Unit: "CX", Active: true},
		{Alias: "lata", Unit: "LT", Active: true},
		{Alias: "garrafa", Unit: "GF", Active: true},
		{Alias: "pack", Unit: "PK", Active: true},
		{Alias: "fardo", Unit: "FD", Active: true},
		{Alias: "unidade", Unit: "UN", Active: true},
		{Alias: "pacote", Unit: "PC", Active: true},
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "alias"}},
		DoNothing: true,
	}).Create(&aliases).Error; err != nil {
		log.Fatalf("Error: Failed to seed unit aliases: %v", err)
	}
}

func seedCatalog(db *gorm.DB) {
	offer := func(v float64) *float64 { return &v }

	products := []model.Product{
		{
			Id:             4210,
			Description:    "Leite Integral Itambé 1L",
			WebDescription: "Leite integral UHT Itambé caixa 1 litro",
			Brand:          "Itambé",
			Category:       "Laticínios",
			Department:     "Mercearia",
		},
		{
			Id:             5077,
			Description:    "Café Torrado e Moído Pilão 500g",
			WebDescription: "Café Pilão tradicional torrado e moído 500g",
			Brand:          "Pilão",
			Category:       "Cafés",
			Department:     "Mercearia",
		},
		{
			Id:             6301,
			Description:    "Refrigerante Guaraná Antarctica 350ml",
			WebDescription: "Guaraná Antarctica lata 350ml",
			Brand:          "Antarctica",
			Category:       "Refrigerantes",
			Department:     "Bebidas",
		},
	}

	items := []model.ProductItem{
		{Id: 18134, ProductId: 4210, Unit: "UN", PackageQty: 1},
		{Id: 18135, ProductId: 4210, Unit: "CX", PackageQty: 12},
		{Id: 19220, ProductId: 5077, Unit: "UN", PackageQty: 1},
		{Id: 20416, ProductId: 6301, Unit: "LT", PackageQty: 1},
		{Id: 20417, ProductId: 6301, Unit: "PK", PackageQty: 6},
	}

	prices := []model.ProductPrice{
		{ItemId: 18134, BranchId: 1, ListPrice: 5.49},
		{ItemId: 18135, BranchId: 1, ListPrice: 62.90, OfferPrice: offer(57.90)},
		{ItemId: 19220, BranchId: 1, ListPrice: 18.90},
		{ItemId: 20416, BranchId: 1, ListPrice: 3.99, OfferPrice: offer(2.99)},
		{ItemId: 20417, BranchId: 1, ListPrice: 21.90},
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
		log.Fatalf("Error: Failed to seed products: %v", err)
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&items).Error; err != nil {
		log.Fatalf("Error: Failed to seed product items: %v", err)
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "branch_id"}},
		DoNothing: true,
	}).Create(&prices).Error; err != nil {
		log.Fatalf("Error: Failed to seed prices: %v", err)
	}
}
