package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/vitrine-next/internal/constants"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
	"github.com/vitrine-next/internal/store"
)

// CartService 购物车引擎
// 每次变更先写入存储再替换内存状态，写入失败时内存保持不变
type CartService struct {
	mu        sync.Mutex
	store     *store.Store
	signals   *UISignals
	openOnAdd bool
	items     models.Cart
	notifier  notifier[models.Cart]
}

// NewCartService 创建购物车服务
func NewCartService(st *store.Store, signals *UISignals, openOnAdd bool) *CartService {
	if signals == nil {
		signals = NewUISignals()
	}
	return &CartService{
		store:     st,
		signals:   signals,
		openOnAdd: openOnAdd,
		items:     models.Cart{},
	}
}

// Load 从存储恢复购物车，不存在或损坏时为空
func (s *CartService) Load(ctx context.Context) {
	var stored models.Cart
	if !s.store.Get(ctx, constants.StoreKeyCart, &stored) {
		stored = models.Cart{}
	}
	normalized := stored.Normalize()
	if len(normalized) != len(stored) {
		logger.Warnw("cart_load_normalized", "stored_items", len(stored), "kept_items", len(normalized))
	}

	s.mu.Lock()
	s.items = normalized
	snapshot := s.items.Clone()
	s.mu.Unlock()
	s.notifier.publish(snapshot)
}

// AddOrIncrement 添加商品，已存在时数量加一
func (s *CartService) AddOrIncrement(ctx context.Context, product models.Product) (models.Cart, error) {
	if product.ID <= 0 || product.Price.IsNegative() {
		return nil, ErrInvalidProduct
	}

	s.mu.Lock()
	next := s.items.Clone()
	if idx := next.IndexOf(product.ID); idx >= 0 {
		next[idx].Quantity++
	} else {
		next = append(next, models.NewCartItemFromProduct(product))
	}
	snapshot, err := s.commitLocked(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	logger.Debugw("cart_item_added", "product_id", product.ID, "item_count", snapshot.ItemCount())
	if s.openOnAdd {
		s.signals.Emit(SignalOpenCart)
	}
	s.notifier.publish(snapshot.Clone())
	return snapshot, nil
}

// SetQuantity 设置数量，quantity<=0 时移除；商品不在购物车时不做改动
func (s *CartService) SetQuantity(ctx context.Context, productID int64, quantity int) (models.Cart, error) {
	s.mu.Lock()
	next := s.items.Clone()
	if idx := next.IndexOf(productID); idx >= 0 {
		if quantity <= 0 {
			next = append(next[:idx], next[idx+1:]...)
		} else {
			next[idx].Quantity = quantity
		}
	}
	snapshot, err := s.commitLocked(ctx, next)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	logger.Debugw("cart_quantity_set", "product_id", productID, "quantity", quantity)
	s.notifier.publish(snapshot.Clone())
	return snapshot, nil
}

// Remove 移除商品
func (s *CartService) Remove(ctx context.Context, productID int64) (models.Cart, error) {
	return s.SetQuantity(ctx, productID, 0)
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context) error {
	s.mu.Lock()
	snapshot, err := s.commitLocked(ctx, models.Cart{})
	s.mu.Unlock()
	if err != nil {
		return err
	}
	logger.Debugw("cart_cleared")
	s.notifier.publish(snapshot)
	return nil
}

// Snapshot 当前购物车副本
func (s *CartService) Snapshot() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Clone()
}

// ItemCount 商品总件数
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.ItemCount()
}

// Subtotal 小计
func (s *CartService) Subtotal() models.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Subtotal()
}

// Subscribe 订阅购物车变化，返回取消函数
func (s *CartService) Subscribe(fn func(models.Cart)) func() {
	return s.notifier.subscribe(fn)
}

// commitLocked 持久化 next 并替换内存状态，调用方需持有 mu
func (s *CartService) commitLocked(ctx context.Context, next models.Cart) (models.Cart, error) {
	if next == nil {
		next = models.Cart{}
	}
	if err := s.store.Set(ctx, constants.StoreKeyCart, next); err != nil {
		logger.Errorw("cart_persist_failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCartPersist, err)
	}
	s.items = next
	return next.Clone(), nil
}
