package lambda

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"github.com/tuanvy6922/caketeaadmin/internal/config"
	"github.com/tuanvy6922/caketeaadmin/pkg/server"
)

func TestAPIGatewayConversion(t *testing.T) {
	req := FromAPIGateway(events.APIGatewayProxyRequest{
		HTTPMethod:            "GET",
		Path:                  "/orders/o1",
		Headers:               map[string]string{"authorization": "Bearer abc"},
		QueryStringParameters: map[string]string{"status": "pending"},
		PathParameters:        map[string]string{"id": "o1"},
		Body:                  "",
	})

	if req.Method != "GET" || req.Path != "/orders/o1" {
		t.Errorf("request = %+v", req)
	}
	if req.QueryParams["status"] != "pending" || req.PathParams["id"] != "o1" {
		t.Errorf("params = %v %v", req.QueryParams, req.PathParams)
	}
	if got := req.Header("Authorization"); got != "Bearer abc" {
		t.Errorf("Header(Authorization) = %q", got)
	}
	if got := req.Header("X-Missing"); got != "" {
		t.Errorf("Header(X-Missing) = %q", got)
	}

	resp := (&Response{
		StatusCode: 201,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(`{"ok":true}`),
	}).ToAPIGateway()
	if resp.StatusCode != 201 || resp.Body != `{"ok":true}` || resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("response = %+v", resp)
	}
}

func TestConnectionManagerReusesWarmContainer(t *testing.T) {
	dir := t.TempDir()
	db := config.DefaultDatabaseConfig()
	db.Path = filepath.Join(dir, "caketea.db")
	cfg := &config.Config{
		Timezone: "UTC",
		PageSize: 6,
		Database: db,
		Storage:  config.StorageConfig{LocalPath: filepath.Join(dir, "files")},
		JWT:      config.JWTConfig{Secret: "s", ExpiryHours: 1},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	opened := 0
	cm := NewConnectionManager(cfg, func(cfg *config.Config) (*server.Container, error) {
		opened++
		return server.NewContainerWithLogger(cfg, logger)
	})
	clock := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	cm.now = func() time.Time { return clock }
	defer cm.Cleanup()

	ctx := context.Background()
	first, err := cm.GetContainer(ctx)
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}
	second, err := cm.GetContainer(ctx)
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}
	if first != second || opened != 1 {
		t.Fatalf("warm container not reused: opened %d times", opened)
	}
	if !cm.IsHealthy() {
		t.Error("IsHealthy() = false for a fresh container")
	}

	clock = clock.Add(IdleTimeout + time.Second)
	if cm.IsHealthy() {
		t.Error("IsHealthy() = true for a stale container")
	}
	third, err := cm.GetContainer(ctx)
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}
	if third == first || opened != 2 {
		t.Errorf("stale container not replaced: opened %d times", opened)
	}

	if err := cm.Cleanup(); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	if cm.IsHealthy() {
		t.Error("IsHealthy() = true after Cleanup")
	}
}
