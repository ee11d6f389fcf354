package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
)

func TestCategoryRepository(t *testing.T) {
	m, cleanup := setupTestManager(t)
	defer cleanup()
	ctx := context.Background()
	repo := m.Categories()

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	tea := models.NewCategory("  Trà sữa ")
	tea.CreatedAt = base
	coffee := models.NewCategory("Cà phê")
	coffee.CreatedAt = base.Add(time.Hour)

	for _, c := range []*models.Category{tea, coffee} {
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create(%s) failed: %v", c.Name, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != coffee.ID {
		t.Errorf("List() not newest first: %+v", list)
	}

	got, err := repo.GetByName(ctx, "trà sữa")
	if err != nil || got.ID != tea.ID {
		t.Fatalf("GetByName() = %+v, %v", got, err)
	}

	if err := repo.Create(ctx, models.NewCategory("cà phê")); !repositories.IsDuplicate(err) {
		t.Errorf("Expected duplicate name error, got %v", err)
	}
	if err := repo.Create(ctx, models.NewCategory("   ")); !repositories.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}

	product := models.NewProduct("Bạc xỉu", "Cà phê", models.SizePrices{M: 29000})
	if err := m.Products().Create(ctx, product); err != nil {
		t.Fatalf("Create(product) failed: %v", err)
	}

	t.Run("rename moves products", func(t *testing.T) {
		if err := repo.Rename(ctx, coffee.ID, "Coffee"); err != nil {
			t.Fatalf("Rename() failed: %v", err)
		}
		moved, err := m.Products().GetByID(ctx, product.ID)
		if err != nil {
			t.Fatalf("GetByID() failed: %v", err)
		}
		if moved.Category != "Coffee" {
			t.Errorf("product category = %q, want Coffee", moved.Category)
		}
		if err := repo.Rename(ctx, coffee.ID, "Trà sữa"); !repositories.IsDuplicate(err) {
			t.Errorf("Expected duplicate error, got %v", err)
		}
		if err := repo.Rename(ctx, "missing", "Other"); !repositories.IsNotFound(err) {
			t.Errorf("Expected not found, got %v", err)
		}
	})

	t.Run("delete refuses a category in use", func(t *testing.T) {
		if err := repo.Delete(ctx, coffee.ID); !repositories.IsConflict(err) {
			t.Errorf("Expected conflict, got %v", err)
		}
		if err := repo.Delete(ctx, tea.ID); err != nil {
			t.Errorf("Delete() failed: %v", err)
		}
		if _, err := repo.GetByID(ctx, tea.ID); !repositories.IsNotFound(err) {
			t.Errorf("Expected deleted category to be gone, got %v", err)
		}
		if err := repo.Delete(ctx, tea.ID); !repositories.IsNotFound(err) {
			t.Errorf("Expected not found on second delete, got %v", err)
		}
	})
}

func TestProductRepository(t *testing.T) {
	m, cleanup := setupTestManager(t)
	defer cleanup()
	ctx := context.Background()
	repo := m.Products()

	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	first := models.NewProduct("Trà đào", "Trà", models.SizePrices{S: 25000, M: 30000, L: 35000})
	first.CreatedAt = base
	second := models.NewProduct("Cà phê sữa", "Cà phê", models.SizePrices{M: 29000})
	second.CreatedAt = base.Add(time.Minute)
	second.Ingredients = "Robusta, sữa đặc"

	for _, p := range []*models.Product{first, second} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create(%s) failed: %v", p.Name, err)
		}
	}
	if first.Index != 1 || second.Index != 2 {
		t.Errorf("menu index = %d, %d, want 1, 2", first.Index, second.Index)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Errorf("List() not newest first: %+v", list)
	}

	got, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got.Prices != first.Prices || got.Status != models.ProductActive {
		t.Errorf("unexpected product: %+v", got)
	}

	got.Prices.M = 32000
	got.Status = models.ProductInactive
	got.Index = 99
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	updated, _ := repo.GetByID(ctx, first.ID)
	if updated.Prices.M != 32000 || updated.Status != models.ProductInactive {
		t.Errorf("Update() not stored: %+v", updated)
	}
	if updated.Index != 1 {
		t.Errorf("Update() moved menu index to %d", updated.Index)
	}

	invalid := *updated
	invalid.Prices.M = 0
	if err := repo.Update(ctx, &invalid); !repositories.IsValidation(err) {
		t.Errorf("Expected validation error, got %v", err)
	}

	ghost := models.NewProduct("Ghost", "Trà", models.SizePrices{M: 1})
	if err := repo.Update(ctx, ghost); !repositories.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}

	count, err := repo.CountByCategory(ctx, "cà phê")
	if err != nil {
		t.Fatalf("CountByCategory() failed: %v", err)
	}
	if count != 1 {
		t.Errorf("CountByCategory() = %d, want 1", count)
	}

	if err := repo.Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := repo.Delete(ctx, second.ID); !repositories.IsNotFound(err) {
		t.Errorf("Expected not found, got %v", err)
	}

	third := models.NewProduct("Matcha", "Trà", models.SizePrices{M: 40000})
	if err := repo.Create(ctx, third); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if third.Index != 2 {
		t.Errorf("Expected index after the highest remaining, got %d", third.Index)
	}
}
