package cache

import (
	"context"
	"testing"

	"github.com/vitrine-next/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "shop"), mr
}

func TestNewClientDisabled(t *testing.T) {
	if NewClient(nil) != nil {
		t.Fatalf("nil config should not create client")
	}
	if NewClient(&config.RedisConfig{Enabled: false}) != nil {
		t.Fatalf("disabled config should not create client")
	}
}

func TestRedisStoreRoundTripUsesPrefix(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	if err := store.Write(ctx, "token", []byte(`"abc"`)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	raw, err := mr.Get("shop:token")
	if err != nil {
		t.Fatalf("prefixed key missing: %v", err)
	}
	if raw != `"abc"` {
		t.Fatalf("unexpected stored value: %s", raw)
	}

	value, ok, err := store.Read(ctx, "token")
	if err != nil || !ok {
		t.Fatalf("read failed: ok=%v err=%v", ok, err)
	}
	if string(value) != `"abc"` {
		t.Fatalf("unexpected read value: %s", value)
	}

	if err := store.Delete(ctx, "token"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok, err := store.Read(ctx, "token"); ok || err != nil {
		t.Fatalf("token should be absent: ok=%v err=%v", ok, err)
	}
}

func TestRedisStoreReadErrorSurfaces(t *testing.T) {
	store, mr := newTestStore(t)
	mr.Close()
	if _, _, err := store.Read(context.Background(), "cart"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
