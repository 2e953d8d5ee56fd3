package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"propertyhub/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.App.Env = "test"
	return cfg
}

func TestBuildInMemoryStartsRelay(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cart.Lock.Mode = "local"

	app, err := NewBuilder(cfg).WithoutLoggerInit().Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer app.release(context.Background())

	if app.worker == nil {
		t.Error("in-memory build should run the outbox relay in process")
	}
	if app.infra.Locker == nil {
		t.Error("local lock mode should install a locker")
	}

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if w.Code != http.StatusOK {
		t.Errorf("ready = %d", w.Code)
	}
}

func TestBuildSQLite(t *testing.T) {
	cfg := testConfig(t)
	cfg.Database.Type = "sqlite"
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "propertyhub.db")
	cfg.Database.LogLevel = "silent"

	app, err := NewBuilder(cfg).WithoutLoggerInit().Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	defer app.release(context.Background())

	if app.worker != nil {
		t.Error("relational builds leave relaying to cmd/worker")
	}
	if _, ok := app.infra.Checks["database"]; !ok {
		t.Error("database health check not registered")
	}

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("health = %d %s", w.Code, w.Body.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Port = "0"

	app, err := NewBuilder(cfg).WithoutLoggerInit().Build(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != nil {
		t.Errorf("Run() = %v", err)
	}
}
