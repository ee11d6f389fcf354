package services

import (
	"context"
	"testing"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

func seedCatalog(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	svc := env.services.CatalogService

	for _, name := range []string{"Trà", "Cà phê", "Bánh"} {
		if _, err := svc.CreateCategory(ctx, &SaveCategoryRequest{Name: name}); err != nil {
			t.Fatalf("CreateCategory(%s) error = %v", name, err)
		}
	}

	products := []CreateProductRequest{
		{Name: "Trà đào cam sả", Category: "Trà", Prices: models.SizePrices{S: 35000, M: 45000, L: 55000}},
		{Name: "Trà sữa trân châu", Category: "trà", Prices: models.SizePrices{M: 39000}},
		{Name: "Cà phê sữa đá", Category: "Cà phê", Prices: models.SizePrices{M: 29000}, Ingredients: "Robusta"},
		{Name: "Bánh flan", Category: "Bánh", Prices: models.SizePrices{M: 15000}},
	}
	for i := range products {
		if _, err := svc.CreateProduct(ctx, &products[i]); err != nil {
			t.Fatalf("CreateProduct(%s) error = %v", products[i].Name, err)
		}
	}
}

func TestCategoryLifecycle(t *testing.T) {
	env := setupTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()
	svc := env.services.CatalogService

	page, err := svc.ListCategories(ctx, nil)
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if page.TotalCount != 3 || page.PageSize != models.CategoryPageSize || page.TotalPages != 1 {
		t.Errorf("ListCategories() = %+v", page)
	}

	tests := []struct {
		name  string
		req   *SaveCategoryRequest
		check func(error) bool
	}{
		{"blank name", &SaveCategoryRequest{Name: "   "}, IsValidation},
		{"nil request", nil, IsValidation},
		{"duplicate ignoring case", &SaveCategoryRequest{Name: "bánh"}, repositories.IsDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCategory(ctx, tt.req)
			if !tt.check(err) {
				t.Errorf("CreateCategory() error = %v", err)
			}
		})
	}

	var cafe *models.Category
	for _, c := range page.Categories {
		if c.Name == "Cà phê" {
			cafe = c
		}
	}
	if cafe == nil {
		t.Fatal("Cà phê category missing")
	}

	renamed, err := svc.RenameCategory(ctx, cafe.ID, &SaveCategoryRequest{Name: " Coffee "})
	if err != nil {
		t.Fatalf("RenameCategory() error = %v", err)
	}
	if renamed.Name != "Coffee" {
		t.Errorf("RenameCategory() name = %q", renamed.Name)
	}

	products, err := svc.SearchProducts(ctx, &SearchProductsRequest{Category: "coffee"})
	if err != nil {
		t.Fatalf("SearchProducts() error = %v", err)
	}
	if products.TotalCount != 1 || products.Products[0].Category != "Coffee" {
		t.Errorf("products did not follow the rename: %+v", products.Products)
	}

	if err := svc.DeleteCategory(ctx, cafe.ID); !repositories.IsConflict(err) {
		t.Errorf("Expected conflict deleting a category in use, got %v", err)
	}

	if err := svc.DeleteProduct(ctx, products.Products[0].ID); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}
	if err := svc.DeleteCategory(ctx, cafe.ID); err != nil {
		t.Errorf("DeleteCategory() error = %v", err)
	}
	if _, err := svc.GetCategory(ctx, cafe.ID); !repositories.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}
}

func TestSearchProducts(t *testing.T) {
	env := setupTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()
	svc := env.services.CatalogService

	tests := []struct {
		name      string
		req       *SearchProductsRequest
		wantCount int
		wantPages int
	}{
		{"all", nil, 4, 1},
		{"name match", &SearchProductsRequest{Query: "TRÀ SỮA"}, 1, 1},
		{"category match", &SearchProductsRequest{Query: "bánh"}, 1, 1},
		{"category filter", &SearchProductsRequest{Category: "TRÀ"}, 2, 1},
		{"small pages", &SearchProductsRequest{PageSize: 3}, 4, 2},
		{"no match", &SearchProductsRequest{Query: "sinh tố"}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.SearchProducts(ctx, tt.req)
			if err != nil {
				t.Fatalf("SearchProducts() error = %v", err)
			}
			if page.TotalCount != tt.wantCount || page.TotalPages != tt.wantPages {
				t.Errorf("SearchProducts() = %d items in %d pages, want %d in %d",
					page.TotalCount, page.TotalPages, tt.wantCount, tt.wantPages)
			}
		})
	}

	if _, err := svc.SearchProducts(ctx, &SearchProductsRequest{Status: "sold-out"}); !IsValidation(err) {
		t.Errorf("Expected validation error for unknown status, got %v", err)
	}

	page, _ := svc.SearchProducts(ctx, nil)
	if page.PageSize != models.ProductPageSize {
		t.Errorf("default page size = %d, want %d", page.PageSize, models.ProductPageSize)
	}
	if page.Products[0].Name != "Bánh flan" {
		t.Errorf("Expected newest product first, got %s", page.Products[0].Name)
	}
}

func TestCreateAndUpdateProduct(t *testing.T) {
	env := setupTestEnv(t)
	seedCatalog(t, env)
	ctx := context.Background()
	svc := env.services.CatalogService

	created, err := svc.CreateProduct(ctx, &CreateProductRequest{
		Name:      "  Matcha latte ",
		Category:  "trà",
		Prices:    models.SizePrices{M: 49000, L: 59000},
		ImageLink: "https://example.com/matcha.png",
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if created.Name != "Matcha latte" || created.Category != "Trà" || created.Index != 5 || created.Status != models.ProductActive {
		t.Errorf("CreateProduct() = %+v", created)
	}

	rejected := []struct {
		name string
		req  *CreateProductRequest
	}{
		{"unknown category", &CreateProductRequest{Name: "X", Category: "Sinh tố", Prices: models.SizePrices{M: 1}}},
		{"missing M price", &CreateProductRequest{Name: "X", Category: "Trà", Prices: models.SizePrices{S: 1}}},
		{"negative price", &CreateProductRequest{Name: "X", Category: "Trà", Prices: models.SizePrices{M: 1, L: -1}}},
		{"bad image link", &CreateProductRequest{Name: "X", Category: "Trà", Prices: models.SizePrices{M: 1}, ImageLink: "not a url"}},
		{"nil", nil},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateProduct(ctx, tt.req); !IsValidation(err) {
				t.Errorf("CreateProduct() error = %v, want validation", err)
			}
		})
	}

	inactive := models.ProductInactive
	category := "Bánh"
	updated, err := svc.UpdateProduct(ctx, created.ID, &UpdateProductRequest{Status: &inactive, Category: &category})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
	if updated.Status != models.ProductInactive || updated.Category != "Bánh" || updated.Prices.L != 59000 {
		t.Errorf("UpdateProduct() = %+v", updated)
	}

	unknown := "Sinh tố"
	if _, err := svc.UpdateProduct(ctx, created.ID, &UpdateProductRequest{Category: &unknown}); !IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
	if _, err := svc.UpdateProduct(ctx, "missing", &UpdateProductRequest{Status: &inactive}); !repositories.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}

	active, err := svc.SearchProducts(ctx, &SearchProductsRequest{Status: models.ProductActive})
	if err != nil {
		t.Fatalf("SearchProducts() error = %v", err)
	}
	if active.TotalCount != 4 {
		t.Errorf("active products = %d, want 4", active.TotalCount)
	}
}

func TestImportCatalog(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	svc := env.services.CatalogService

	categories := []*models.Category{models.NewCategory("Trà")}
	tea := models.NewProduct("Trà đào", "Trà", models.SizePrices{M: 30000})
	cake := models.NewProduct("Tiramisu", "Bánh", models.SizePrices{M: 45000})

	cats, prods, err := svc.ImportCatalog(ctx, categories, []*models.Product{tea, cake})
	if err != nil {
		t.Fatalf("ImportCatalog() error = %v", err)
	}
	if cats != 2 || prods != 2 {
		t.Errorf("ImportCatalog() = %d categories, %d products, want 2, 2", cats, prods)
	}

	tea.Prices.M = 32000
	cats, _, err = svc.ImportCatalog(ctx, categories, []*models.Product{tea})
	if err != nil {
		t.Fatalf("second ImportCatalog() error = %v", err)
	}
	if cats != 0 {
		t.Errorf("reimport created %d categories", cats)
	}
	got, err := svc.GetProduct(ctx, tea.ID)
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if got.Prices.M != 32000 {
		t.Errorf("reimport did not update price: %+v", got.Prices)
	}

	bad := models.NewProduct("Broken", "Trà", models.SizePrices{})
	if _, _, err := svc.ImportCatalog(ctx, nil, []*models.Product{bad}); !IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}
}
