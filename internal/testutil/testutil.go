// Package testutil provides utilities for testing
package testutil

import (
	"context"
	"database/sql"
	"kumpisahko/internal/auth"
	"kumpisahko/internal/config"
	"kumpisahko/internal/models"
	"kumpisahko/internal/repository"
	"kumpisahko/internal/repository/postgres"
	"kumpisahko/internal/testutil/db"
	"kumpisahko/internal/validation"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	// AdminPassword is the admin password accepted by TestConfig
	AdminPassword = "test-admin-password"
	// JWTSecret is the signing secret used by TestConfig
	JWTSecret = "test_secret_key"
)

var (
	setupOnce sync.Once
	adminHash string
)

// SetupGin puts gin in test mode and registers the custom validators once per test binary
func SetupGin(t *testing.T) {
	t.Helper()
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Initialize()

		hash, err := auth.HashPassword(AdminPassword)
		if err != nil {
			panic(err)
		}
		adminHash = hash
	})
}

// TestConfig returns a configuration that needs no environment
func TestConfig(t *testing.T) *config.Config {
	t.Helper()
	SetupGin(t)

	cfg := &config.Config{
		API: config.APIConfig{
			Port:                  "8080",
			MaxConsumptionEntries: 1000,
		},
		Auth: config.AuthConfig{
			JWTSecret:         JWTSecret,
			JWTExpiration:     1,
			AdminPasswordHash: adminHash,
		},
		Pricing: config.PricingConfig{
			LookupTimeout: 5 * time.Second,
		},
		RateLimit: config.RateLimitConfig{
			Requests: 1000,
			Window:   60,
			Burst:    50,
		},
	}
	return cfg
}

// AdminToken issues a valid admin token for cfg
func AdminToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := auth.NewService(cfg.Auth).GenerateAdminToken()
	require.NoError(t, err, "Failed to generate admin token")
	return token
}

// TestContext holds the dependencies of a database-backed test
type TestContext struct {
	T             *testing.T
	DB            *sql.DB
	Config        *config.Config
	SpotPriceRepo repository.SpotPriceRepository
	AuthService   *auth.Service
}

// NewTestContext creates a test context on a clean, migrated test database.
// The test is skipped when .env.test or the database is unavailable.
func NewTestContext(t *testing.T) *TestContext {
	t.Helper()
	SetupGin(t)

	cfg := db.LoadTestConfig(t)
	testDB := db.SetupTestDB(t, &cfg.Database)

	tc := &TestContext{
		T:             t,
		DB:            testDB,
		Config:        cfg,
		SpotPriceRepo: postgres.NewSpotPriceRepository(testDB),
		AuthService:   auth.NewService(cfg.Auth),
	}

	t.Cleanup(func() {
		tc.cleanup()
	})

	return tc
}

// cleanup performs necessary cleanup after tests
func (tc *TestContext) cleanup() {
	if tc.DB != nil {
		if err := db.CleanupTestDB(tc.DB); err != nil {
			tc.T.Errorf("Failed to cleanup test database: %v", err)
		}
		tc.DB.Close()
	}
}

// CreateSpotPrice stores a spot price and returns it
func (tc *TestContext) CreateSpotPrice(timestamp time.Time, price float64) *models.SpotPrice {
	tc.T.Helper()

	sp := &models.SpotPrice{Timestamp: timestamp, Price: price}
	err := tc.SpotPriceRepo.Upsert(context.Background(), sp)
	require.NoError(tc.T, err, "Failed to create test spot price")
	return sp
}
