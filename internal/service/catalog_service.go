package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vitrine-next/internal/backend"
	"github.com/vitrine-next/internal/logger"
	"github.com/vitrine-next/internal/models"
)

// CatalogClient 商品目录与后台数据接口
type CatalogClient interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ImageURL(productID int64) string
	ImagePlaceholder() string
	ImageAvailable(ctx context.Context, productID int64) bool
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, customer models.Customer) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, customer models.Customer) (*models.Customer, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, user models.User) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ProductView 带图片地址的商品
type ProductView struct {
	models.Product
	ImageURL string `json:"image_url"`
}

// ProductPage 分页商品
type ProductPage struct {
	Items      []ProductView `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
	Total      int           `json:"total"`
}

// CatalogService 商品目录与后台数据转发
type CatalogService struct {
	client        CatalogClient
	pageSize      int
	featuredCount int
}

// NewCatalogService 创建目录服务
func NewCatalogService(client CatalogClient, pageSize, featuredCount int) *CatalogService {
	if pageSize <= 0 {
		pageSize = 8
	}
	if featuredCount < 0 {
		featuredCount = 0
	}
	return &CatalogService{client: client, pageSize: pageSize, featuredCount: featuredCount}
}

// ListProducts 按页返回商品，页码从 1 开始并限制在有效范围内
func (s *CatalogService) ListProducts(ctx context.Context, page int) (*ProductPage, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		logger.Warnw("catalog_products_fetch_failed", "error", err)
		return nil, wrapCatalogError(err)
	}

	total := len(products)
	totalPages := (total + s.pageSize - 1) / s.pageSize
	if page < 1 || totalPages == 0 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	start := (page - 1) * s.pageSize
	end := start + s.pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return &ProductPage{
		Items:      s.views(products[start:end]),
		Page:       page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// Featured 首页轮播商品（列表前 N 个）
func (s *CatalogService) Featured(ctx context.Context) ([]ProductView, error) {
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		logger.Warnw("catalog_featured_fetch_failed", "error", err)
		return nil, wrapCatalogError(err)
	}
	if len(products) > s.featuredCount {
		products = products[:s.featuredCount]
	}
	return s.views(products), nil
}

// FindProduct 按 id 查找商品，加入购物车前使用
func (s *CatalogService) FindProduct(ctx context.Context, id int64) (*models.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidID
	}
	products, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, wrapCatalogError(err)
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrInvalidProduct
}

// ResolveImage 返回商品图片地址，不可访问时返回占位图
func (s *CatalogService) ResolveImage(ctx context.Context, id int64) string {
	if id > 0 && s.client.ImageAvailable(ctx, id) {
		return s.client.ImageURL(id)
	}
	return s.client.ImagePlaceholder()
}

// ListCategories 分类列表
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, wrapCatalogError(err)
	}
	return categories, nil
}

// CreateCategory 创建分类
func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}
	category, err := s.client.CreateCategory(ctx, name)
	if err != nil {
		return nil, wrapCatalogError(err)
	}
	return category, nil
}

// DeleteCategory 删除分类
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return wrapCatalogError(s.client.DeleteCategory(ctx, id))
}

// ListCustomers 客户列表
func (s *CatalogService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.client.ListCustomers(ctx)
	if err != nil {
		return nil, wrapCatalogError(err)
	}
	return customers, nil
}

// SaveCustomer 创建或更新客户，id 为 0 时创建
func (s *CatalogService) SaveCustomer(ctx context.Context, id int64, customer models.Customer) (*models.Customer, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	if customer.Name == "" {
		return nil, ErrCustomerNameRequired
	}
	customer.Email = strings.TrimSpace(customer.Email)
	customer.Phone = strings.TrimSpace(customer.Phone)
	customer.CPF = strings.TrimSpace(customer.CPF)
	customer.Address = strings.TrimSpace(customer.Address)

	var (
		saved *models.Customer
		err   error
	)
	if id > 0 {
		saved, err = s.client.UpdateCustomer(ctx, id, customer)
	} else {
		saved, err = s.client.CreateCustomer(ctx, customer)
	}
	if err != nil {
		return nil, wrapCatalogError(err)
	}
	return saved, nil
}

// ListUsers 用户列表
func (s *CatalogService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.client.ListUsers(ctx)
	if err != nil {
		return nil, wrapCatalogError(err)
	}
	return users, nil
}

// SaveUser 创建或更新用户；创建时必须提供密码，更新时密码可留空
func (s *CatalogService) SaveUser(ctx context.Context, id int64, user models.User) (*models.User, error) {
	user.Username = strings.TrimSpace(user.Username)
	user.Name = strings.TrimSpace(user.Name)
	user.Role = strings.TrimSpace(user.Role)
	if user.Username == "" {
		return nil, ErrUsernameRequired
	}
	if id <= 0 && strings.TrimSpace(user.Password) == "" {
		return nil, ErrPasswordRequired
	}

	var (
		saved *models.User
		err   error
	)
	if id > 0 {
		saved, err = s.client.UpdateUser(ctx, id, user)
	} else {
		saved, err = s.client.CreateUser(ctx, user)
	}
	if err != nil {
		return nil, wrapCatalogError(err)
	}
	return saved, nil
}

// DeleteUser 删除用户
func (s *CatalogService) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return wrapCatalogError(s.client.DeleteUser(ctx, id))
}

func (s *CatalogService) views(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, product := range products {
		views = append(views, ProductView{Product: product, ImageURL: s.client.ImageURL(product.ID)})
	}
	return views
}

// wrapCatalogError 保留后端文案，统一为 ErrCatalogUnavailable
func wrapCatalogError(err error) error {
	if err == nil {
		return nil
	}
	if statusErr, ok := backend.AsStatusError(err); ok {
		return &BackendMessageError{Err: ErrCatalogUnavailable, Message: statusErr.Message}
	}
	if errors.Is(err, ErrCatalogUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
}
