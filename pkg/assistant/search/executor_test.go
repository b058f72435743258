package search

import (
	"context"
	"errors"
	"testing"

	"shop-assistant-be/internal/entity"
	"shop-assistant-be/internal/pkg/logger"
	"shop-assistant-be/internal/repository/contract"
	"shop-assistant-be/internal/repository/specification"
	"shop-assistant-be/pkg/assistant/query"
)

type fakeDict struct {
	aliases map[string]string
}

func (d *fakeDict) Aliases(ctx context.Context) (map[string]string, error) {
	return d.aliases, nil
}

// fakeProductRepo records tier invocations and serves canned rows.
type fakeProductRepo struct {
	fullTextCalls []contract.SearchParams
	trigramCalls  int

	strictRows   []*entity.Product
	fallbackRows []*entity.Product
	trigramRows  []*entity.Product
	items        map[int64][]*entity.ProductItem

	fullTextErr error
}

func (f *fakeProductRepo) SearchFullText(ctx context.Context, params contract.SearchParams) ([]*entity.Product, error) {
	f.fullTextCalls = append(f.fullTextCalls, params)
	if f.fullTextErr != nil {
		return nil, f.fullTextErr
	}
	if len(params.Units) > 0 {
		return f.strictRows, nil
	}
	// Unit-relaxed call; when no unit filter existed in the first place
	// the strict rows double as the answer.
	if len(f.fullTextCalls) == 1 {
		return f.strictRows, nil
	}
	return f.fallbackRows, nil
}

func (f *fakeProductRepo) SearchTrigram(ctx context.Context, raw string, threshold float64, limit int) ([]*entity.Product, error) {
	f.trigramCalls++
	return f.trigramRows, nil
}

func (f *fakeProductRepo) FindItems(ctx context.Context, productID int64, branchID int, units []string) ([]*entity.ProductItem, error) {
	return f.items[productID], nil
}

func (f *fakeProductRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func product(id int64, description string) *entity.Product {
	return &entity.Product{Id: id, Description: description}
}

func item(id, productID int64, unit string, listPrice float64) *entity.ProductItem {
	return &entity.ProductItem{Id: id, ProductId: productID, Unit: unit, PackageQty: 1, ListPrice: listPrice}
}

func newTestExecutor(repo *fakeProductRepo, aliases map[string]string) *Executor {
	extractor := query.NewExtractor(&fakeDict{aliases: aliases})
	return NewExecutor(extractor, repo, logger.NewNoopLogger())
}

func TestSearchStrictTierShortCircuits(t *testing.T) {
	repo := &fakeProductRepo{
		strictRows: []*entity.Product{product(1, "cafe pilao 500g")},
		items:      map[int64][]*entity.ProductItem{1: {item(10, 1, "UN", 12.5)}},
	}
	e := newTestExecutor(repo, nil)

	outcome, err := e.Search(context.Background(), Query{RawText: "cafe pilao", BranchID: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if outcome.Status != "success" {
		t.Errorf("status = %q, want success", outcome.Status)
	}
	if len(repo.fullTextCalls) != 1 || repo.trigramCalls != 0 {
		t.Errorf("call counts = {%d,%d}, want {1,0}", len(repo.fullTextCalls), repo.trigramCalls)
	}
	if len(outcome.Products) != 1 || len(outcome.Products[0].Items) != 1 {
		t.Fatalf("unexpected outcome products %+v", outcome.Products)
	}
}

func TestSearchFilterOnlyQueryStillRunsStrictTier(t *testing.T) {
	repo := &fakeProductRepo{
		strictRows: []*entity.Product{product(3, "leite integral itambe")},
		items:      map[int64][]*entity.ProductItem{3: {item(30, 3, "CX", 54.0)}},
	}
	e := newTestExecutor(repo, map[string]string{"caixa": "CX"})

	// "caixa" extracts entirely into a unit filter; the residual text
	// is empty but the strict tier must still be consulted.
	outcome, err := e.Search(context.Background(), Query{RawText: "caixa", BranchID: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(repo.fullTextCalls) != 1 {
		t.Fatalf("full-text calls = %d, want 1", len(repo.fullTextCalls))
	}
	first := repo.fullTextCalls[0]
	if len(first.Tokens) != 0 {
		t.Errorf("strict tier tokens = %v, want none", first.Tokens)
	}
	if len(first.Units) != 1 || first.Units[0] != "CX" {
		t.Errorf("strict tier units = %v, want [CX]", first.Units)
	}
	if outcome.Status != "success" {
		t.Errorf("status = %q, want success", outcome.Status)
	}
	if len(outcome.Products) != 1 {
		t.Fatalf("products = %d, want 1", len(outcome.Products))
	}
}

func TestSearchUnitRelaxedFallback(t *testing.T) {
	repo := &fakeProductRepo{
		strictRows:   nil,
		fallbackRows: []*entity.Product{product(2, "leite integral")},
		items:        map[int64][]*entity.ProductItem{2: {item(20, 2, "UN", 4.99), item(21, 2, "CX", 54.0)}},
	}
	e := newTestExecutor(repo, map[string]string{"caixa": "CX"})

	outcome, err := e.Search(context.Background(), Query{RawText: "leite caixa", BranchID: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if outcome.Status != "fallback" {
		t.Errorf("status = %q, want fallback", outcome.Status)
	}
	if len(repo.fullTextCalls) != 2 {
		t.Errorf("full-text calls = %d, want 2", len(repo.fullTextCalls))
	}
	if len(repo.fullTextCalls[1].Units) != 0 {
		t.Errorf("fallback call kept unit filter %v", repo.fullTextCalls[1].Units)
	}
	if repo.trigramCalls != 0 {
		t.Errorf("trigram calls = %d, want 0", repo.trigramCalls)
	}
	// Fallback shows every packaging variant.
	if len(outcome.Products[0].Items) != 2 {
		t.Errorf("items = %d, want 2", len(outcome.Products[0].Items))
	}
}

func TestSearchVolumeFilterNeverFallsToTrigram(t *testing.T) {
	repo := &fakeProductRepo{
		trigramRows: []*entity.Product{product(3, "refrigerante cola")},
	}
	e := newTestExecutor(repo, nil)

	outcome, err := e.Search(context.Background(), Query{RawText: "refrigerante 500ml", BranchID: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if outcome.Status != "no_results" {
		t.Errorf("status = %q, want no_results", outcome.Status)
	}
	if repo.trigramCalls != 0 {
		t.Errorf("trigram ran despite a volume filter being present")
	}
	// No unit filter was extracted, so the unit-relaxed tier is skipped too.
	if len(repo.fullTextCalls) != 1 {
		t.Errorf("full-text calls = %d, want 1", len(repo.fullTextCalls))
	}
}

func TestSearchTrigramOnlyForUnfilteredQueries(t *testing.T) {
	repo := &fakeProductRepo{
		trigramRows: []*entity.Product{product(4, "nescau achocolatado")},
		items:       map[int64][]*entity.ProductItem{4: {item(40, 4, "UN", 9.9)}},
	}
	e := newTestExecutor(repo, nil)

	outcome, err := e.Search(context.Background(), Query{RawText: "nescaw", BranchID: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if outcome.Status != "trigram_success" {
		t.Errorf("status = %q, want trigram_success", outcome.Status)
	}
	if repo.trigramCalls != 1 {
		t.Errorf("trigram calls = %d, want 1", repo.trigramCalls)
	}
}

func TestSearchStoreFailurePropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	repo := &fakeProductRepo{fullTextErr: wantErr}
	e := newTestExecutor(repo, nil)

	_, err := e.Search(context.Background(), Query{RawText: "cafe", BranchID: 1})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected store error to propagate, got %v", err)
	}
	if repo.trigramCalls != 0 {
		t.Errorf("a failed tier must not advance the ladder")
	}
}

func TestSearchDropsProductsWithoutItems(t *testing.T) {
	repo := &fakeProductRepo{
		strictRows: []*entity.Product{product(5, "cafe especial"), product(6, "cafe premium")},
		items:      map[int64][]*entity.ProductItem{5: {item(50, 5, "UN", 19.9)}},
	}
	e := newTestExecutor(repo, nil)

	outcome, err := e.Search(context.Background(), Query{RawText: "cafe", BranchID: 1})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(outcome.Products) != 1 || outcome.Products[0].Id != 5 {
		t.Errorf("expected only the product with items to survive, got %+v", outcome.Products)
	}
}

func TestSearchOffersOnlyStatuses(t *testing.T) {
	offer := 7.5
	repo := &fakeProductRepo{
		strictRows: []*entity.Product{product(7, "cerveja lata")},
		items: map[int64][]*entity.ProductItem{7: {
			{Id: 70, ProductId: 7, Unit: "UN", PackageQty: 1, ListPrice: 9.9, OfferPrice: &offer},
			item(71, 7, "UN", 9.9),
		}},
	}
	e := newTestExecutor(repo, nil)

	outcome, err := e.Search(context.Background(), Query{RawText: "cerveja", BranchID: 1, OffersOnly: true})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if outcome.Status != "offers_found" {
		t.Errorf("status = %q, want offers_found", outcome.Status)
	}
	if len(outcome.Products[0].Items) != 1 || outcome.Products[0].Items[0].Id != 70 {
		t.Errorf("expected only the discounted item, got %+v", outcome.Products[0].Items)
	}

	// Same query with no discounted rows anywhere.
	repo2 := &fakeProductRepo{}
	e2 := newTestExecutor(repo2, nil)
	outcome2, err := e2.Search(context.Background(), Query{RawText: "cerveja", BranchID: 1, OffersOnly: true})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if outcome2.Status != "no_offers" {
		t.Errorf("status = %q, want no_offers", outcome2.Status)
	}
}
