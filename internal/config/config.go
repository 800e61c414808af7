package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/vitrine-next/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Store    StoreConfig    `mapstructure:"store"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Backend  BackendConfig  `mapstructure:"backend"`
	Chatbot  ChatbotConfig  `mapstructure:"chatbot"`
	Cart     CartConfig     `mapstructure:"cart"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
}

// ServerConfig 本地壳服务配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// StoreConfig 本地持久化存储配置
type StoreConfig struct {
	Driver string `mapstructure:"driver"` // sqlite / postgres / redis / memory
	DSN    string `mapstructure:"dsn"`
}

// RedisConfig Redis 配置（store.driver=redis 或登录限流时使用）
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// BackendConfig 后端 REST 服务配置
type BackendConfig struct {
	BaseURL          string `mapstructure:"base_url"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
	ImagePlaceholder string `mapstructure:"image_placeholder"`
}

// Timeout 请求超时
func (c BackendConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ChatbotConfig 聊天机器人配置
type ChatbotConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// CartConfig 购物车行为配置
type CartConfig struct {
	OpenOnAdd bool `mapstructure:"open_on_add"`
}

// CatalogConfig 商品目录展示配置
type CatalogConfig struct {
	PageSize      int `mapstructure:"page_size"`
	FeaturedCount int `mapstructure:"featured_count"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	LoginRateLimit LoginRateLimitConfig `mapstructure:"login_rate_limit"`
}

// LoginRateLimitConfig 登录限流配置
type LoginRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	loadDotEnv(".env")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")   // 如果从 cmd/server 运行
	v.AddConfigPath("./etc") // etc 文件夹

	cfg, err := load(v)
	if err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return cfg
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// 环境变量支持，例如 backend.base_url -> BACKEND_BASE_URL
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// 聊天机器人地址允许独立覆盖
	_ = v.BindEnv("chatbot.base_url", "CHATBOT_API", "CHATBOT_BASE_URL")

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "storefront.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.dsn", "./data/storefront.db")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "vitrine")
	v.SetDefault("backend.base_url", "http://localhost:8080")
	v.SetDefault("backend.timeout_seconds", 15)
	v.SetDefault("backend.image_placeholder", "/placeholder.jpg")
	v.SetDefault("chatbot.base_url", "http://localhost:8000")
	v.SetDefault("cart.open_on_add", true)
	v.SetDefault("catalog.page_size", 8)
	v.SetDefault("catalog.featured_count", 4)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Accept-Language",
		"Authorization",
		"X-Requested-With",
		"X-Request-ID",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.login_rate_limit.window_seconds", 300)
	v.SetDefault("security.login_rate_limit.max_attempts", 5)
}

func (c *Config) normalize() {
	c.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(c.Backend.BaseURL), "/")
	c.Chatbot.BaseURL = strings.TrimRight(strings.TrimSpace(c.Chatbot.BaseURL), "/")
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	if c.Catalog.PageSize <= 0 {
		c.Catalog.PageSize = 8
	}
	if c.Catalog.FeaturedCount < 0 {
		c.Catalog.FeaturedCount = 0
	}
}

// loadDotEnv 读取 .env 文件到进程环境变量，文件不存在时忽略
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		logger.Warnw("dotenv_load_failed", "file", path, "error", err)
	}
}
