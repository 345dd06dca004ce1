package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/ugchub/internal/app/store/descriptor"
	"github.com/dalemusser/ugchub/internal/app/system/paging"
	"github.com/dalemusser/ugchub/internal/app/system/timeouts"
	"github.com/dalemusser/ugchub/internal/domain/models"
	"github.com/dalemusser/ugchub/internal/testutil"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validConfig() AppConfig {
	return AppConfig{
		MongoURI:            "mongodb://localhost:27017",
		MongoDatabase:       "ugc",
		MongoMaxPoolSize:    100,
		MongoMinPoolSize:    10,
		MongoConnectTimeout: 10 * time.Second,
		DefaultPageSize:     10,
		MaxPageSize:         100,
		TimeoutShort:        5 * time.Second,
		TimeoutMedium:       10 * time.Second,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"valid", func(*AppConfig) {}, false},
		{"bad uri", func(c *AppConfig) { c.MongoURI = "" }, true},
		{"empty database", func(c *AppConfig) { c.MongoDatabase = "" }, true},
		{"min pool above max", func(c *AppConfig) { c.MongoMinPoolSize = 200 }, true},
		{"zero max page", func(c *AppConfig) { c.MaxPageSize = 0 }, true},
		{"default above max", func(c *AppConfig) { c.DefaultPageSize = 500 }, true},
		{"zero default", func(c *AppConfig) { c.DefaultPageSize = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(nil, cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStartup_AppliesLimits(t *testing.T) {
	t.Cleanup(func() {
		timeouts.Reset()
		paging.Reset()
	})

	cfg := validConfig()
	cfg.DefaultPageSize = 25
	cfg.MaxPageSize = 50
	cfg.TimeoutShort = 3 * time.Second

	if err := Startup(context.Background(), nil, cfg, DBDeps{}, testLogger()); err != nil {
		t.Fatalf("Startup failed: %v", err)
	}

	if got := timeouts.Short(); got != 3*time.Second {
		t.Errorf("timeouts.Short() = %v, want 3s", got)
	}
	def, upper := paging.Limits()
	if def != 25 || upper != 50 {
		t.Errorf("paging.Limits() = (%d, %d), want (25, 50)", def, upper)
	}
}

func TestClientOptions(t *testing.T) {
	opts := clientOptions(validConfig())
	if opts.Registry == nil {
		t.Error("expected UUID registry on client options")
	}
	if opts.MaxPoolSize == nil || *opts.MaxPoolSize != 100 {
		t.Errorf("MaxPoolSize = %v, want 100", opts.MaxPoolSize)
	}
	if opts.MinPoolSize == nil || *opts.MinPoolSize != 10 {
		t.Errorf("MinPoolSize = %v, want 10", opts.MinPoolSize)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{UGCMongoClient: db.Client(), UGCMongoDatabase: db}
	for i := 0; i < 2; i++ {
		if err := EnsureSchema(ctx, nil, validConfig(), deps, testLogger()); err != nil {
			t.Fatalf("EnsureSchema run %d failed: %v", i+1, err)
		}
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames: %v", err)
	}
	if len(names) < 3 {
		t.Errorf("expected users, films and reviews, got %v", names)
	}
}

func TestNewUGCService_UsesDatabase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	svc := NewUGCService(DBDeps{UGCMongoClient: db.Client(), UGCMongoDatabase: db}, testLogger())

	film := uuid.New()
	if _, err := svc.AddRating(ctx, uuid.New(), descriptor.TargetFilm, film, models.Like); err != nil {
		t.Fatalf("AddRating: %v", err)
	}
	n, err := db.Collection(descriptor.Films).CountDocuments(ctx, bson.M{"_id": film})
	if err != nil {
		t.Fatalf("CountDocuments: %v", err)
	}
	if n != 1 {
		t.Errorf("expected film shell in %s, found %d", db.Name(), n)
	}
}

func TestBuildHandler_ServesHealth(t *testing.T) {
	db := testutil.SetupTestDB(t)
	deps := DBDeps{UGCMongoClient: db.Client(), UGCMongoDatabase: db}

	h, err := BuildHandler(nil, validConfig(), deps, testLogger())
	if err != nil {
		t.Fatalf("BuildHandler failed: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health = %d, want %d", rec.Code, http.StatusOK)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/films", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /films = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
