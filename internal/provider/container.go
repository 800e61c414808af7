package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/vitrine-next/internal/backend"
	"github.com/vitrine-next/internal/cache"
	"github.com/vitrine-next/internal/config"
	"github.com/vitrine-next/internal/constants"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/repository"
	"github.com/vitrine-next/internal/service"
	"github.com/vitrine-next/internal/store"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// 基础设施
	DB      *gorm.DB
	Redis   *redis.Client
	Store   *store.Store
	Backend *backend.Client

	// Services
	Signals        *service.UISignals
	SessionService *service.SessionService
	CartService    *service.CartService
	OrderService   *service.OrderService
	CatalogService *service.CatalogService
	ChatService    *service.ChatService
}

// NewContainer 初始化容器并恢复本地状态
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	c := &Container{Config: cfg}

	// 1. 初始化存储
	if err := c.initStore(); err != nil {
		c.Close()
		return nil, err
	}

	// 2. 初始化 Services
	c.initServices()

	// 3. 恢复购物车与会话
	c.CartService.Load(ctx)
	c.SessionService.Restore(ctx)
	return c, nil
}

func (c *Container) initStore() error {
	cfg := c.Config
	c.Redis = cache.NewClient(&cfg.Redis)

	var raw store.Backend
	switch cfg.Store.Driver {
	case constants.StoreDriverSQLite, constants.StoreDriverPostgres:
		db, err := models.OpenDB(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			return fmt.Errorf("open store db: %w", err)
		}
		if err := models.AutoMigrate(db); err != nil {
			return fmt.Errorf("migrate store db: %w", err)
		}
		c.DB = db
		raw = repository.NewStoreRepository(db)
	case constants.StoreDriverRedis:
		if c.Redis == nil {
			redisCfg := cfg.Redis
			redisCfg.Enabled = true
			c.Redis = cache.NewClient(&redisCfg)
		}
		raw = cache.NewRedisStore(c.Redis, cfg.Redis.Prefix)
	case constants.StoreDriverMemory:
		logger.Warnw("provider_store_memory", "hint", "state is lost on restart")
		raw = store.NewMemoryBackend()
	default:
		return fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	c.Store = store.New(raw)
	logger.Infow("provider_store_ready", "driver", cfg.Store.Driver)
	return nil
}

func (c *Container) initServices() {
	cfg := c.Config
	c.Backend = backend.New(backend.Options{
		BaseURL:          cfg.Backend.BaseURL,
		ChatbotURL:       cfg.Chatbot.BaseURL,
		ImagePlaceholder: cfg.Backend.ImagePlaceholder,
		Timeout:          cfg.Backend.Timeout(),
	})

	c.Signals = service.NewUISignals()
	c.CartService = service.NewCartService(c.Store, c.Signals, cfg.Cart.OpenOnAdd)
	c.SessionService = service.NewSessionService(c.Store, c.Backend, c.CartService, c.Signals)
	c.Backend.SetTokenSource(c.SessionService.Token)
	c.OrderService = service.NewOrderService(c.SessionService, c.CartService, c.Backend, c.Signals)
	c.CatalogService = service.NewCatalogService(c.Backend, cfg.Catalog.PageSize, cfg.Catalog.FeaturedCount)
	c.ChatService = service.NewChatService(c.Store, c.Backend)
}

// Close 释放数据库与 Redis 连接
func (c *Container) Close() error {
	var errs []error
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	return errors.Join(errs...)
}
