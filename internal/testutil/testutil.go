package testutil

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dom/petshop-api/internal/api"
	"github.com/dom/petshop-api/internal/config"
	"github.com/dom/petshop-api/internal/repository"
	"github.com/dom/petshop-api/internal/repository/gormrepo"
	"github.com/dom/petshop-api/internal/service"
	"github.com/dom/petshop-api/internal/storage"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB creates a new PostgreSQL testcontainer and returns a migrated connection
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_petshop"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gormrepo.NewConnection("postgres", dsn, logger.Silent)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := gormrepo.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	testDB := &TestDB{
		Container: container,
		DB:        db,
		DSN:       dsn,
	}

	t.Cleanup(func() {
		testDB.Cleanup()
	})

	return testDB
}

// Cleanup terminates the container
func (tdb *TestDB) Cleanup() {
	if tdb.Container != nil {
		tdb.Container.Terminate(context.Background())
	}
}

// Truncate clears all tables for test isolation
func (tdb *TestDB) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		"orders",
		"payments",
		"order_statuses",
		"files",
		"products",
		"categories",
		"password_reset_tokens",
		"jwt_tokens",
		"users",
	}

	for _, table := range tables {
		if err := tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			t.Logf("warning: failed to truncate %s: %v", table, err)
		}
	}
}

var (
	keysOnce sync.Once
	keys     *service.KeyPair
	keysErr  error
)

// TestKeys returns an RSA key pair shared by every test in the process.
func TestKeys(t *testing.T) *service.KeyPair {
	t.Helper()

	keysOnce.Do(func() {
		var privatePEM, publicPEM []byte
		privatePEM, publicPEM, keysErr = service.GenerateKeyPair(2048, "test-passphrase")
		if keysErr == nil {
			keys, keysErr = service.ParseKeyPair(privatePEM, publicPEM, "test-passphrase")
		}
	})
	if keysErr != nil {
		t.Fatalf("failed to generate test keys: %v", keysErr)
	}
	return keys
}

// TestConfig returns a configuration suitable for testing
func TestConfig() *config.Config {
	return &config.Config{
		Port:               "0", // Random port
		Environment:        "test",
		AppURL:             "http://petshop.test",
		LogLevel:           "error",
		DatabaseDriver:     "postgres",
		JWTPassphrase:      "test-passphrase",
		JWTTTL:             time.Hour,
		MaxUploadKB:        2048,
		RateLimitPerMinute: 10,
		CORSAllowedOrigins: []string{"*"},
	}
}

// NewTokenService builds a token service over repos using the shared test keys.
func NewTokenService(t *testing.T, repos *repository.Repositories, opts ...service.TokenServiceOption) *service.TokenService {
	t.Helper()
	cfg := TestConfig()
	return service.NewTokenService(TestKeys(t), repos.Token, repos.User, cfg.AppURL, cfg.JWTTTL, opts...)
}

// TestServer holds all components for integration testing
type TestServer struct {
	Server   *httptest.Server
	DB       *TestDB
	Repos    *repository.Repositories
	Services *service.Services
	Config   *config.Config
}

// NewTestServer creates a complete test server with all dependencies
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testDB := NewTestDB(t)
	cfg := TestConfig()
	cfg.StorageDir = t.TempDir()

	store, err := storage.NewDisk(cfg.StorageDir)
	if err != nil {
		t.Fatalf("failed to open storage: %v", err)
	}

	repos := gormrepo.NewRepositories(testDB.DB)
	tokens := NewTokenService(t, repos)
	services := service.NewServices(repos, tokens, store, cfg)
	router := api.NewRouter(services, nil, cfg, slog.New(slog.DiscardHandler))

	server := httptest.NewServer(router)

	ts := &TestServer{
		Server:   server,
		DB:       testDB,
		Repos:    repos,
		Services: services,
		Config:   cfg,
	}

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return ts
}

// BaseURL returns the test server's base URL
func (ts *TestServer) BaseURL() string {
	return ts.Server.URL
}

// APIURL returns the full API URL for a given path
func (ts *TestServer) APIURL(path string) string {
	return fmt.Sprintf("%s/v1%s", ts.Server.URL, path)
}
