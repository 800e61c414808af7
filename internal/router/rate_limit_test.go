package router

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TestKeyByIPAndJSONField(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/session/login", strings.NewReader(`{"username":" Maria "}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.RemoteAddr = "1.2.3.4:5678"

	key := KeyByIPAndJSONField("username")(c)
	if key != "maria|1.2.3.4" {
		t.Fatalf("key want maria|1.2.3.4 got %s", key)
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("read body after key extraction failed: %v", err)
	}
	if !strings.Contains(string(body), " Maria ") {
		t.Fatalf("request body should be restored after reading field")
	}
}

func newLimitedEngine(client *redis.Client, rule RateLimitRule) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitMiddleware(client, rule, nil))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func pingStatusCode(t *testing.T, r *gin.Engine) int {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	var resp struct {
		StatusCode int  `json:"status_code"`
		OK         bool `json:"ok"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.OK {
		return 0
	}
	return resp.StatusCode
}

func TestRateLimitMiddlewareDisabledRule(t *testing.T) {
	r := newLimitedEngine(nil, RateLimitRule{})
	for i := 0; i < 5; i++ {
		if code := pingStatusCode(t, r); code != 0 {
			t.Fatalf("disabled rule should pass through, got %d", code)
		}
	}
}

func TestRateLimitMiddlewareInMemoryFallback(t *testing.T) {
	r := newLimitedEngine(nil, RateLimitRule{WindowSeconds: 60, MaxRequests: 2})
	for i := 0; i < 2; i++ {
		if code := pingStatusCode(t, r); code != 0 {
			t.Fatalf("request %d should pass, got %d", i, code)
		}
	}
	if code := pingStatusCode(t, r); code != 429 {
		t.Fatalf("third request should be limited, got %d", code)
	}
}

func TestLocalLimiterPrunesIdleKeys(t *testing.T) {
	now := time.Unix(1700000000, 0)
	limiter := newLocalLimiter(RateLimitRule{WindowSeconds: 60, MaxRequests: 2})
	limiter.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		if !limiter.allow(fmt.Sprintf("user%d|10.0.0.1", i)) {
			t.Fatalf("first attempt for a new key should pass")
		}
	}
	if got := limiter.size(); got != 50 {
		t.Fatalf("size want 50 got %d", got)
	}

	if !limiter.allow("maria|10.0.0.2") || !limiter.allow("maria|10.0.0.2") {
		t.Fatalf("attempts within burst should pass")
	}
	if limiter.allow("maria|10.0.0.2") {
		t.Fatalf("attempt over burst should be limited")
	}

	now = now.Add(61 * time.Second)
	if !limiter.allow("maria|10.0.0.2") {
		t.Fatalf("bucket should refill after a full window")
	}
	if got := limiter.size(); got != 1 {
		t.Fatalf("idle keys should be pruned, size=%d", got)
	}
}

func TestLocalLimiterCapsKeys(t *testing.T) {
	now := time.Unix(1700000000, 0)
	limiter := newLocalLimiter(RateLimitRule{WindowSeconds: 60, MaxRequests: 1})
	limiter.now = func() time.Time { return now }
	limiter.maxKeys = 3

	for i := 0; i < 10; i++ {
		now = now.Add(time.Second)
		limiter.allow(fmt.Sprintf("key%d", i))
	}
	if got := limiter.size(); got != 3 {
		t.Fatalf("size should stay at cap 3, got %d", got)
	}
	now = now.Add(time.Second)
	if limiter.allow("key9") {
		t.Fatalf("recent key should keep its exhausted bucket")
	}
}

func TestRateLimitMiddlewareRedisWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := newLimitedEngine(client, RateLimitRule{Prefix: "test:rate:login", WindowSeconds: 60, MaxRequests: 1})
	if code := pingStatusCode(t, r); code != 0 {
		t.Fatalf("first request should pass, got %d", code)
	}
	if code := pingStatusCode(t, r); code != 429 {
		t.Fatalf("second request should be limited, got %d", code)
	}
	if !mr.Exists("test:rate:login:192.0.2.1") {
		t.Fatalf("counter key missing, keys=%v", mr.Keys())
	}

	mr.FastForward(61 * time.Second)
	if code := pingStatusCode(t, r); code != 0 {
		t.Fatalf("request after window should pass, got %d", code)
	}
}

func TestRateLimitMiddlewareRedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	r := newLimitedEngine(client, RateLimitRule{WindowSeconds: 60, MaxRequests: 1})
	if code := pingStatusCode(t, r); code != 503 {
		t.Fatalf("unreachable redis should report 503, got %d", code)
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  int64
		ok    bool
	}{
		{name: "int64", input: int64(10), want: 10, ok: true},
		{name: "int", input: int(11), want: 11, ok: true},
		{name: "float64", input: float64(13.9), want: 13, ok: true},
		{name: "string", input: "bad", want: 0, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toInt64(tc.input)
			if ok != tc.ok {
				t.Fatalf("ok want %v got %v", tc.ok, ok)
			}
			if got != tc.want {
				t.Fatalf("value want %d got %d", tc.want, got)
			}
		})
	}
}
