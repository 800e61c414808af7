package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/i18n"
	"github.com/vitrine-next/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) messageKey() string {
	if key := strings.TrimSpace(r.MessageKey); key != "" {
		return key
	}
	return "error.too_many_requests"
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware 频率限制中间件
// 有 Redis 时按固定窗口计数，否则退回进程内令牌桶
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if !rule.enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	if client == nil {
		return localRateLimit(newLocalLimiter(rule), rule, keyFunc)
	}
	return func(c *gin.Context) {
		key := buildRateLimitKey(c, rule, keyFunc)
		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds).Result()
		if err != nil {
			logger.Warnw("rate_limit_script_failed", "key", key, "error", err)
			abortRateLimitUnavailable(c)
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) < 2 {
			abortRateLimitUnavailable(c)
			return
		}
		count, ok := toInt64(values[0])
		if !ok {
			abortRateLimitUnavailable(c)
			return
		}
		if count > int64(rule.MaxRequests) {
			ttlSeconds, _ := toInt64(values[1])
			abortTooManyRequests(c, rule, int(ttlSeconds))
			return
		}

		c.Next()
	}
}

func localRateLimit(limiter *localLimiter, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := buildRateLimitKey(c, rule, keyFunc)
		if !limiter.allow(key) {
			abortTooManyRequests(c, rule, rule.WindowSeconds)
			return
		}
		c.Next()
	}
}

// maxLocalLimiterKeys 进程内限流最多保留的 key 数量
const maxLocalLimiterKeys = 10000

// localLimiter 进程内按 key 的令牌桶，桶容量等于窗口内最大次数
// 空闲超过一个窗口的桶已回满，可以直接丢弃
type localLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idle      time.Duration
	maxKeys   int
	now       func() time.Time
	lastSweep time.Time
	limiters  map[string]*localBucket
}

type localBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newLocalLimiter(rule RateLimitRule) *localLimiter {
	window := time.Duration(rule.WindowSeconds) * time.Second
	return &localLimiter{
		limit:    rate.Every(window / time.Duration(rule.MaxRequests)),
		burst:    rule.MaxRequests,
		idle:     window,
		maxKeys:  maxLocalLimiterKeys,
		now:      time.Now,
		limiters: make(map[string]*localBucket),
	}
}

func (l *localLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweepLocked(now)
	}
	bucket, ok := l.limiters[key]
	if !ok {
		if len(l.limiters) >= l.maxKeys {
			l.sweepLocked(now)
			if len(l.limiters) >= l.maxKeys {
				l.evictOldestLocked()
			}
		}
		bucket = &localBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = bucket
	}
	bucket.lastSeen = now
	return bucket.limiter.AllowN(now, 1)
}

func (l *localLimiter) sweepLocked(now time.Time) {
	for key, bucket := range l.limiters {
		if now.Sub(bucket.lastSeen) >= l.idle {
			delete(l.limiters, key)
		}
	}
	l.lastSweep = now
}

func (l *localLimiter) evictOldestLocked() {
	oldestKey := ""
	var oldest time.Time
	for key, bucket := range l.limiters {
		if oldestKey == "" || bucket.lastSeen.Before(oldest) {
			oldestKey, oldest = key, bucket.lastSeen
		}
	}
	if oldestKey != "" {
		delete(l.limiters, oldestKey)
		logger.Warnw("rate_limit_local_key_evicted", "key", oldestKey)
	}
}

func (l *localLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

func buildRateLimitKey(c *gin.Context, rule RateLimitRule, keyFunc RateLimitKeyFunc) string {
	key := ""
	if keyFunc != nil {
		key = strings.TrimSpace(keyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if rule.Prefix != "" {
		key = fmt.Sprintf("%s:%s", rule.Prefix, key)
	}
	return key
}

func abortRateLimitUnavailable(c *gin.Context) {
	msg := i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable")
	response.Error(c, response.CodeServiceUnavailable, msg)
	c.Abort()
}

func abortTooManyRequests(c *gin.Context, rule RateLimitRule, waitSeconds int) {
	if waitSeconds < 1 {
		waitSeconds = rule.WindowSeconds
	}
	if waitSeconds < 1 {
		waitSeconds = 1
	}
	logger.Warnw("rate_limit_exceeded", "path", c.Request.URL.Path, "client_ip", c.ClientIP(), "retry_after", waitSeconds)
	msg := i18n.T(i18n.ResolveLocale(c), rule.messageKey())
	response.ErrorWithData(c, response.CodeTooManyRequests, msg, gin.H{"retry_after": waitSeconds})
	c.Abort()
}

// KeyByIPAndJSONField 使用 IP + JSON 字段作为限流 key
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if text, ok := payload[field].(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
