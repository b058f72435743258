package integration

import (
	"context"
	"testing"

	"shop-assistant-be/internal/model"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/internal/repository/implementation"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const (
	beerProductA = int64(992001)
	beerProductB = int64(992002)
	beerItemA    = int64(993001)
	beerItemB    = int64(993002)
)

func seedSearchFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()

	offer := 1.00
	products := []model.Product{
		{
			Id:          beerProductA,
			Description: "Cerveja Pilsen Especial 350ml",
			Brand:       "Especial",
			Category:    "Cervejas",
			Department:  "Bebidas",
		},
		{
			Id:          beerProductB,
			Description: "Cerveja Puro Malte 350ml",
			Brand:       "Puro Malte",
			Category:    "Cervejas",
			Department:  "Bebidas",
		},
	}
	items := []model.ProductItem{
		{Id: beerItemA, ProductId: beerProductA, Unit: "LT", PackageQty: 1},
		{Id: beerItemB, ProductId: beerProductB, Unit: "LT", PackageQty: 1},
	}
	prices := []model.ProductPrice{
		{ItemId: beerItemA, BranchId: 1, ListPrice: 5.00},
		// A steep promo on another branch; it must not reorder branch 1.
		{ItemId: beerItemA, BranchId: 2, ListPrice: 5.00, OfferPrice: &offer},
		{ItemId: beerItemB, BranchId: 1, ListPrice: 3.00},
	}

	for i := range products {
		assert.NoError(t, db.Save(&products[i]).Error)
	}
	for i := range items {
		assert.NoError(t, db.Save(&items[i]).Error)
	}
	assert.NoError(t, db.Where("item_id IN ?", []int64{beerItemA, beerItemB}).Delete(&model.ProductPrice{}).Error)
	for i := range prices {
		assert.NoError(t, db.Create(&prices[i]).Error)
	}

	t.Cleanup(func() {
		db.Where("item_id IN ?", []int64{beerItemA, beerItemB}).Delete(&model.ProductPrice{})
		db.Where("id IN ?", []int64{beerItemA, beerItemB}).Delete(&model.ProductItem{})
		db.Where("id IN ?", []int64{beerProductA, beerProductB}).Delete(&model.Product{})
	})
}

func TestSearchFullTextFilterOnly(t *testing.T) {
	db := openTestDB(t)
	seedSearchFixtures(t, db)

	repo := implementation.NewProductRepository(db)
	ctx := context.Background()

	// No residual tokens, only a unit filter. The query must still run
	// and match products with an LT item.
	rows, err := repo.SearchFullText(ctx, contract.SearchParams{
		Units:    []string{"LT"},
		BranchID: 1,
		Limit:    50,
	})
	assert.NoError(t, err)
	found := map[int64]bool{}
	for _, p := range rows {
		found[p.Id] = true
	}
	assert.True(t, found[beerProductA], "unit-only search should match product %d", beerProductA)
	assert.True(t, found[beerProductB], "unit-only search should match product %d", beerProductB)

	// Volume-only works the same way through the description pattern.
	rows, err = repo.SearchFullText(ctx, contract.SearchParams{
		VolumePattern: "%350ml%",
		BranchID:      1,
		Limit:         50,
	})
	assert.NoError(t, err)
	found = map[int64]bool{}
	for _, p := range rows {
		found[p.Id] = true
	}
	assert.True(t, found[beerProductA])
	assert.True(t, found[beerProductB])

	// Nothing extracted at all still short-circuits.
	rows, err = repo.SearchFullText(ctx, contract.SearchParams{BranchID: 1, Limit: 50})
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSearchFullTextPriceSortIsBranchScoped(t *testing.T) {
	db := openTestDB(t)
	seedSearchFixtures(t, db)

	repo := implementation.NewProductRepository(db)

	// Branch 1 prices: A=5.00, B=3.00. Branch 2 has A on offer at 1.00,
	// which must not leak into branch 1's ordering.
	rows, err := repo.SearchFullText(context.Background(), contract.SearchParams{
		Tokens:   []string{"cerveja"},
		Sort:     "price_asc",
		BranchID: 1,
		Limit:    50,
	})
	assert.NoError(t, err)

	positions := map[int64]int{}
	for i, p := range rows {
		positions[p.Id] = i
	}
	if assert.Contains(t, positions, beerProductA) && assert.Contains(t, positions, beerProductB) {
		assert.Less(t, positions[beerProductB], positions[beerProductA],
			"cheapest at branch 1 must sort first")
	}
}
