package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/adapters/storage"
	"github.com/tuanvy6922/caketeaadmin/internal/database"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories/sqlite"
)

var (
	ict     = time.FixedZone("ICT", 7*3600)
	refTime = time.Date(2024, 3, 15, 10, 30, 0, 0, ict)
)

type testEnv struct {
	services *ServiceContainer
	repos    repositories.RepositoryManager
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "services_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	db, err := database.Open(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := database.NewMigrationManager(db, "", logger).RunMigrations(); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	fs, err := storage.NewLocalFileStorage(filepath.Join(tempDir, "files"))
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	repos := sqlite.NewSQLiteRepositoryManager(db, logger)
	t.Cleanup(func() {
		repos.Close()
		os.RemoveAll(tempDir)
	})

	container, err := NewServiceContainer(repos, fs, &ServiceConfig{
		PageSize: 2,
		Location: ict,
		Logger:   logger,
		Now:      func() time.Time { return refTime },
	})
	if err != nil {
		t.Fatalf("NewServiceContainer() error = %v", err)
	}
	if err := container.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	return &testEnv{services: container, repos: repos}
}

func at(days int, hour int) *time.Time {
	y, m, d := refTime.AddDate(0, 0, -days).Date()
	t := time.Date(y, m, d, hour, 0, 0, 0, ict)
	return &t
}

// seed stores five orders:
//
//	o1 completed today 09:00, 100000
//	o3 pending today 08:00, 20000
//	o2 completed 3 days ago, "50,000đ"
//	o4 cancelled 10 days ago, 70000
//	o5 completed without a date, 30000
func seed(t *testing.T, env *testEnv) {
	t.Helper()

	orders := []*models.Order{
		{ID: "o1", CustomerName: "Nguyen An", CustomerID: "an@example.com", Date: at(0, 9), Status: models.OrderStatusCompleted,
			Items: []models.LineItem{{ProductName: "Latte", UnitPrice: 50000, Quantity: 2}}, TotalAmount: models.AmountOf(100000)},
		{ID: "o2", CustomerName: "Tran Binh", CustomerID: "binh@example.com", Date: at(3, 12), Status: models.OrderStatusCompleted,
			Items: []models.LineItem{{ProductName: "Cheesecake", UnitPrice: 50000, Quantity: 1}}, TotalAmount: models.AmountText("50,000đ")},
		{ID: "o3", CustomerName: "Le Chi", CustomerID: "chi@example.com", Date: at(0, 8), Status: models.OrderStatusPending,
			Items: []models.LineItem{{ProductName: "Tea", UnitPrice: 20000, Quantity: 1}}, TotalAmount: models.AmountOf(20000)},
		{ID: "o4", CustomerName: "Pham Dung", CustomerID: "dung@example.com", Date: at(10, 12), Status: models.OrderStatusCancelled,
			Items: []models.LineItem{{ProductName: "Latte", UnitPrice: 35000, Quantity: 2}}, TotalAmount: models.AmountOf(70000)},
		{ID: "o5", CustomerName: "Vo Em", CustomerID: "em@example.com", Status: models.OrderStatusCompleted,
			Items: []models.LineItem{{ProductName: "Tea", UnitPrice: 30000, Quantity: 1}}, TotalAmount: models.AmountOf(30000)},
	}

	n, err := env.services.OrderService.ImportOrders(context.Background(), orders)
	if err != nil {
		t.Fatalf("ImportOrders() error = %v", err)
	}
	if n != len(orders) {
		t.Fatalf("ImportOrders() = %d, want %d", n, len(orders))
	}

	staff := []*models.Staff{
		{FullName: "Hoang Giang", Email: "giang@example.com", PhoneNumber: "0912345678"},
		{FullName: "Dang Hoa", Email: "hoa@example.com", State: models.StaffInactive},
	}
	if _, err := env.services.StaffService.ImportStaff(context.Background(), staff); err != nil {
		t.Fatalf("ImportStaff() error = %v", err)
	}
}

func orderIDs(orders []*models.Order) []string {
	out := make([]string, len(orders))
	for i, o := range orders {
		out[i] = o.ID
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
