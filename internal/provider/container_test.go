package provider

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/vitrine-next/internal/config"
	"github.com/vitrine-next/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
)

func testConfig(driver, dsn string) *config.Config {
	return &config.Config{
		Store:   config.StoreConfig{Driver: driver, DSN: dsn},
		Redis:   config.RedisConfig{Prefix: "test"},
		Backend: config.BackendConfig{BaseURL: "http://127.0.0.1:1"},
		Cart:    config.CartConfig{OpenOnAdd: true},
		Catalog: config.CatalogConfig{PageSize: 8, FeaturedCount: 4},
	}
}

func signedToken(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

func TestContainerSQLiteStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "state", "storefront.db")

	first, err := NewContainer(ctx, testConfig("sqlite", dsn))
	if err != nil {
		t.Fatalf("first container failed: %v", err)
	}
	if _, err := first.SessionService.Login(ctx, signedToken(t, "ana")); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	product := models.Product{ID: 3, Name: "Chá", Price: models.MustParseMoney("12.00")}
	if _, err := first.CartService.AddOrIncrement(ctx, product); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	second, err := NewContainer(ctx, testConfig("sqlite", dsn))
	if err != nil {
		t.Fatalf("second container failed: %v", err)
	}
	defer second.Close()
	if !second.SessionService.IsAuthenticated() {
		t.Fatalf("session should be restored")
	}
	if second.SessionService.Current().Name != "ana" {
		t.Fatalf("unexpected session name: %s", second.SessionService.Current().Name)
	}
	if got := second.CartService.ItemCount(); got != 1 {
		t.Fatalf("cart should be restored, item count=%d", got)
	}
	if second.Backend == nil || second.Backend.BaseURL() != "http://127.0.0.1:1" {
		t.Fatalf("backend client not configured")
	}
}

func TestContainerRedisDriver(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cfg := testConfig("redis", "")
	cfg.Redis.Host = mr.Host()
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("parse miniredis port failed: %v", err)
	}
	cfg.Redis.Port = port

	c, err := NewContainer(ctx, cfg)
	if err != nil {
		t.Fatalf("container failed: %v", err)
	}
	defer c.Close()
	if _, err := c.CartService.AddOrIncrement(ctx, models.Product{ID: 1, Price: models.MustParseMoney("1.00")}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !mr.Exists("test:cart") {
		t.Fatalf("cart should be written under redis prefix")
	}
}

func TestContainerRejectsUnknownDriver(t *testing.T) {
	if _, err := NewContainer(context.Background(), testConfig("dbase", "")); err == nil {
		t.Fatalf("unknown driver should fail")
	}
}
