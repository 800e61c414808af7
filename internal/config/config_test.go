package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load defaults failed: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected backend base url: %s", cfg.Backend.BaseURL)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Fatalf("unexpected store driver: %s", cfg.Store.Driver)
	}
	if !cfg.Cart.OpenOnAdd {
		t.Fatalf("cart.open_on_add should default to true")
	}
	if cfg.Catalog.PageSize != 8 || cfg.Catalog.FeaturedCount != 4 {
		t.Fatalf("unexpected catalog defaults: %+v", cfg.Catalog)
	}
	if cfg.Backend.Timeout() != 15*time.Second {
		t.Fatalf("unexpected backend timeout: %s", cfg.Backend.Timeout())
	}
}

func TestLoadChatbotEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CHATBOT_API", "http://chat.local:9000/")
	t.Setenv("BACKEND_BASE_URL", "http://api.local:8081/")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Chatbot.BaseURL != "http://chat.local:9000" {
		t.Fatalf("chatbot override not applied: %s", cfg.Chatbot.BaseURL)
	}
	if cfg.Backend.BaseURL != "http://api.local:8081" {
		t.Fatalf("backend override not applied: %s", cfg.Backend.BaseURL)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	content := []byte("store:\n  driver: Memory\ncatalog:\n  page_size: 0\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), content, 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	cfg, err := load(v)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Store.Driver != "memory" {
		t.Fatalf("driver should be normalized, got %s", cfg.Store.Driver)
	}
	if cfg.Catalog.PageSize != 8 {
		t.Fatalf("invalid page size should fall back to 8, got %d", cfg.Catalog.PageSize)
	}
}

func TestLoadDotEnvMissingFileIgnored(t *testing.T) {
	t.Chdir(t.TempDir())
	loadDotEnv(".env")
}
