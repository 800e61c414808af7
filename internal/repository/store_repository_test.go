package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/vitrine-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:store_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestStoreRepositoryReadMissing(t *testing.T) {
	repo := NewStoreRepository(openTestDB(t))
	value, ok, err := repo.Read(context.Background(), "token")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if ok || value != nil {
		t.Fatalf("missing key should be absent, got %q", value)
	}
}

func TestStoreRepositoryWriteOverwriteDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewStoreRepository(openTestDB(t))

	if err := repo.Write(ctx, "cart", []byte(`[]`)); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := repo.Write(ctx, "cart", []byte(`[{"id":1,"quantity":2}]`)); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	value, ok, err := repo.Read(ctx, "cart")
	if err != nil || !ok {
		t.Fatalf("read after write failed: ok=%v err=%v", ok, err)
	}
	if string(value) != `[{"id":1,"quantity":2}]` {
		t.Fatalf("unexpected value: %s", value)
	}

	if err := repo.Delete(ctx, "cart"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(ctx, "cart"); err != nil {
		t.Fatalf("second delete should be a no-op, got %v", err)
	}
	if _, ok, _ := repo.Read(ctx, "cart"); ok {
		t.Fatalf("key should be gone after delete")
	}
}
