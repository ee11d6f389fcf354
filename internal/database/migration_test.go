package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

// latestVersion is the number of the newest embedded migration
const latestVersion = 5

func setupTestManager(t *testing.T) (*ConnectionManager, func()) {
	tempDir, err := os.MkdirTemp("", "database_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	cm := NewConnectionManager(&ConnectionConfig{
		DatabasePath:    filepath.Join(tempDir, "test.db"),
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		Logger:          logger,
	})

	if err := cm.Connect(); err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("Connect() failed: %v", err)
	}

	cleanup := func() {
		cm.Close()
		os.RemoveAll(tempDir)
	}

	return cm, cleanup
}

func TestConnectRunsEmbeddedMigrations(t *testing.T) {
	cm, cleanup := setupTestManager(t)
	defer cleanup()

	mm := cm.GetMigrationManager()
	if err := mm.ValidateSchema(); err != nil {
		t.Errorf("ValidateSchema() failed: %v", err)
	}

	info, err := mm.GetMigrationStatus()
	if err != nil {
		t.Fatalf("GetMigrationStatus() failed: %v", err)
	}
	if info.Version != latestVersion || info.Dirty || !info.Applied {
		t.Errorf("Unexpected migration status: %+v", info)
	}

	// migrating again is a no-op and must leave the connection usable
	if err := mm.RunMigrations(); err != nil {
		t.Errorf("second RunMigrations() failed: %v", err)
	}
	if err := cm.GetDB().Ping(); err != nil {
		t.Errorf("connection closed by migrator: %v", err)
	}
}

func TestRollbackMigration(t *testing.T) {
	cm, cleanup := setupTestManager(t)
	defer cleanup()

	mm := cm.GetMigrationManager()
	if err := mm.RollbackMigration(); err != nil {
		t.Fatalf("RollbackMigration() failed: %v", err)
	}

	info, err := mm.GetMigrationStatus()
	if err != nil {
		t.Fatalf("GetMigrationStatus() failed: %v", err)
	}
	if info.Version != latestVersion-1 {
		t.Errorf("Expected version %d after rollback, got %d", latestVersion-1, info.Version)
	}

	if err := mm.ValidateSchema(); err == nil {
		t.Error("Expected ValidateSchema() to fail without the vouchers table")
	}

	if err := mm.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() failed: %v", err)
	}
	if err := mm.ValidateSchema(); err != nil {
		t.Errorf("ValidateSchema() failed after re-applying: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	cm, cleanup := setupTestManager(t)
	defer cleanup()

	status := cm.HealthCheck(context.Background())
	if !status.Healthy {
		t.Errorf("Expected healthy database, got %q", status.Message)
	}

	cm.Close()
	status = cm.HealthCheck(context.Background())
	if status.Healthy {
		t.Error("Expected unhealthy status after close")
	}
}
