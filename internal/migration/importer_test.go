package migration

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/adapters/storage"
	"github.com/tuanvy6922/caketeaadmin/internal/database"
	"github.com/tuanvy6922/caketeaadmin/internal/models"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories"
	"github.com/tuanvy6922/caketeaadmin/internal/repositories/sqlite"
	"github.com/tuanvy6922/caketeaadmin/internal/services"
)

func setupServices(t *testing.T) (*services.ServiceContainer, *logrus.Logger) {
	t.Helper()

	tempDir := t.TempDir()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	db, err := database.Open(filepath.Join(tempDir, "import.db"))
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
	t.Cleanup(func() { repos.Close() })

	container, err := services.NewServiceContainer(repos, fs, &services.ServiceConfig{
		PageSize: 6,
		Location: ict,
		Logger:   logger,
		Now:      func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, ict) },
	})
	if err != nil {
		t.Fatalf("NewServiceContainer() error = %v", err)
	}
	return container, logger
}

func TestConvertBill(t *testing.T) {
	snap, err := ParseSnapshot(strings.NewReader(sampleSnapshot))
	if err != nil {
		t.Fatalf("ParseSnapshot() error = %v", err)
	}

	t.Run("formatted amounts and placeholder voucher", func(t *testing.T) {
		order, warn, err := ConvertBill(snap.Bills[0])
		if err != nil {
			t.Fatalf("ConvertBill() error = %v", err)
		}
		if warn != "" {
			t.Errorf("unexpected warning %q", warn)
		}
		if order.Status != models.OrderStatusCompleted {
			t.Errorf("Status = %s, want completed", order.Status)
		}
		if order.DeliveryStatus != models.DeliveryStatusPending {
			t.Errorf("DeliveryStatus = %s, want pending", order.DeliveryStatus)
		}
		if order.VoucherCode != nil {
			t.Errorf("VoucherCode = %q, want nil", *order.VoucherCode)
		}
		if order.CustomerID != "lan@example.com" || order.CustomerName != "Lan" {
			t.Errorf("customer = %s/%s", order.CustomerID, order.CustomerName)
		}
		if got := order.Items[0].UnitPrice; got != 25000 {
			t.Errorf("UnitPrice = %d, want 25000", got)
		}
		if order.Date == nil || !order.Date.Equal(time.Date(2024, 3, 15, 9, 30, 0, 0, ict)) {
			t.Errorf("Date = %v", order.Date)
		}
	})

	t.Run("generated id and voucher", func(t *testing.T) {
		order, warn, err := ConvertBill(snap.Bills[1])
		if err != nil {
			t.Fatalf("ConvertBill() error = %v", err)
		}
		if order.ID == "" {
			t.Fatal("expected generated ID")
		}
		if !strings.Contains(warn, "generated") {
			t.Errorf("warning = %q, want generated id note", warn)
		}
		if order.VoucherCode == nil || *order.VoucherCode != "SALE10" {
			t.Errorf("VoucherCode = %v, want SALE10", order.VoucherCode)
		}
		if order.VoucherDiscount != 3000 {
			t.Errorf("VoucherDiscount = %d, want 3000", order.VoucherDiscount)
		}
	})

	t.Run("missing date is kept with a warning", func(t *testing.T) {
		order, warn, err := ConvertBill(snap.Bills[3])
		if err != nil {
			t.Fatalf("ConvertBill() error = %v", err)
		}
		if order.HasDate() {
			t.Error("expected undated order")
		}
		if order.DeliveryStatus != models.DeliveryStatusDelivered {
			t.Errorf("DeliveryStatus = %s, want delivered", order.DeliveryStatus)
		}
		if !strings.Contains(warn, "no order date") {
			t.Errorf("warning = %q", warn)
		}
	})

	rejects := []struct {
		name string
		doc  BillDocument
	}{
		{name: "unknown status", doc: snap.Bills[2]},
		{name: "unnamed item", doc: snap.Bills[4]},
		{name: "unparseable price", doc: BillDocument{ID: "x", Items: []BillItem{{Name: "Tea", Price: models.AmountText("free"), Quantity: 1}}}},
		{name: "unknown delivery status", doc: BillDocument{ID: "x", DeliveryStatus: "lost"}},
	}
	for _, tt := range rejects {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ConvertBill(tt.doc); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestConvertStaff(t *testing.T) {
	tests := []struct {
		name      string
		doc       StaffDocument
		wantRole  string
		wantState models.StaffState
		wantErr   bool
	}{
		{
			name:      "admin lowercased",
			doc:       StaffDocument{FullName: "Giang", Email: "Giang@Example.com", Role: "Admin", State: "Active"},
			wantRole:  models.RoleAdmin,
			wantState: models.StaffActive,
		},
		{
			name:      "defaults",
			doc:       StaffDocument{FullName: "Hoa", Email: "hoa@example.com"},
			wantRole:  models.RoleStaff,
			wantState: models.StaffActive,
		},
		{
			name:      "inactive any case",
			doc:       StaffDocument{FullName: "Hoa", Email: "hoa@example.com", State: "inactive"},
			wantRole:  models.RoleStaff,
			wantState: models.StaffInactive,
		},
		{name: "missing email", doc: StaffDocument{FullName: "Hoa"}, wantErr: true},
		{name: "unknown role", doc: StaffDocument{FullName: "Hoa", Email: "hoa@example.com", Role: "Owner"}, wantErr: true},
		{name: "bad phone", doc: StaffDocument{FullName: "Hoa", Email: "hoa@example.com", PhoneNumber: "12"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			member, err := ConvertStaff(tt.doc, ict)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ConvertStaff() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if member.ID != strings.ToLower(tt.doc.Email) {
				t.Errorf("ID = %s", member.ID)
			}
			if member.Role != tt.wantRole {
				t.Errorf("Role = %s, want %s", member.Role, tt.wantRole)
			}
			if member.State != tt.wantState {
				t.Errorf("State = %s, want %s", member.State, tt.wantState)
			}
		})
	}
}

func TestImporter(t *testing.T) {
	ctx := context.Background()

	t.Run("dry run writes nothing", func(t *testing.T) {
		container, logger := setupServices(t)
		snap, _ := ParseSnapshot(strings.NewReader(sampleSnapshot))

		result, err := NewImporter(container, ict, logger).Import(ctx, snap, true)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if result.OrdersImported != 3 || result.StaffImported != 1 {
			t.Errorf("imported = %d orders, %d staff; want 3, 1", result.OrdersImported, result.StaffImported)
		}
		if _, err := container.OrderService.GetOrder(ctx, "b1"); !repositories.IsNotFound(err) {
			t.Errorf("GetOrder() error = %v, want not found", err)
		}
	})

	t.Run("import stores converted records", func(t *testing.T) {
		container, logger := setupServices(t)
		snap, _ := ParseSnapshot(strings.NewReader(sampleSnapshot))

		result, err := NewImporter(container, ict, logger).Import(ctx, snap, false)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if result.OrdersImported != 3 || result.OrdersSkipped != 2 {
			t.Errorf("orders = %d imported, %d skipped; want 3, 2", result.OrdersImported, result.OrdersSkipped)
		}
		if result.StaffImported != 1 || result.StaffSkipped != 1 {
			t.Errorf("staff = %d imported, %d skipped; want 1, 1", result.StaffImported, result.StaffSkipped)
		}
		if len(result.Warnings) != 5 {
			t.Errorf("Warnings = %v, want 5 entries", result.Warnings)
		}

		order, err := container.OrderService.GetOrder(ctx, "b1")
		if err != nil {
			t.Fatalf("GetOrder() error = %v", err)
		}
		if order.TotalAmount.Text != "50,000đ" {
			t.Errorf("TotalAmount = %+v, want original text", order.TotalAmount)
		}

		staff, err := container.StaffService.GetStaff(ctx, "giang@example.com")
		if err != nil {
			t.Fatalf("GetStaff() error = %v", err)
		}
		if staff.Role != models.RoleAdmin || staff.EndActivityTime != "17:00" {
			t.Errorf("staff = %+v", staff)
		}
	})

	t.Run("reimport is idempotent", func(t *testing.T) {
		container, logger := setupServices(t)
		importer := NewImporter(container, ict, logger)

		for i := 0; i < 2; i++ {
			snap, _ := ParseSnapshot(strings.NewReader(sampleSnapshot))
			if _, err := importer.Import(ctx, snap, false); err != nil {
				t.Fatalf("Import() #%d error = %v", i, err)
			}
		}

		page, err := container.OrderService.ListOrders(ctx, &services.ListOrdersRequest{Criteria: models.DefaultCriteria(), Page: 1, PageSize: 10})
		if err != nil {
			t.Fatalf("ListOrders() error = %v", err)
		}
		// the bill without an id gets a fresh one on each run
		if page.TotalCount != 4 {
			t.Errorf("TotalCount = %d, want 4", page.TotalCount)
		}
	})
}
