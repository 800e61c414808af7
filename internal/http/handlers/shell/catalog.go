package shell

import (
	"net/http"

	handlershared "github.com/vitrine-next/internal/http/handlers/shared"
	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateCategoryRequest 创建分类
type CreateCategoryRequest struct {
	Name string `json:"nome"`
}

// ListProducts 分页商品
func (h *Handler) ListProducts(c *gin.Context) {
	page, err := h.CatalogService.ListProducts(c.Request.Context(), handlershared.ParsePageQuery(c))
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_unavailable")
		return
	}
	response.SuccessWithPage(c, page.Items, response.Pagination{
		Page:      page.Page,
		PageSize:  page.PageSize,
		Total:     page.Total,
		TotalPage: page.TotalPages,
	})
}

// FeaturedProducts 首页轮播商品
func (h *Handler) FeaturedProducts(c *gin.Context) {
	products, err := h.CatalogService.Featured(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_unavailable")
		return
	}
	response.Success(c, products)
}

// ProductImage 跳转到商品图片，不可访问时跳转到占位图
func (h *Handler) ProductImage(c *gin.Context) {
	id, ok := handlershared.ParsePathID(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return
	}
	c.Redirect(http.StatusFound, h.CatalogService.ResolveImage(c.Request.Context(), id))
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_unavailable")
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	category, err := h.CatalogService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_unavailable")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := handlershared.ParsePathID(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return
	}
	if err := h.CatalogService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_unavailable")
		return
	}
	response.Success(c, nil)
}

// ListCustomers 客户列表
func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.CatalogService.ListCustomers(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_unavailable")
		return
	}
	response.Success(c, customers)
}

// CreateCustomer 创建客户
func (h *Handler) CreateCustomer(c *gin.Context) {
	h.saveCustomer(c, 0)
}

// UpdateCustomer 更新客户
func (h *Handler) UpdateCustomer(c *gin.Context) {
	id, ok := handlershared.ParsePathID(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return
	}
	h.saveCustomer(c, id)
}

func (h *Handler) saveCustomer(c *gin.Context, id int64) {
	var req models.Customer
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	customer, err := h.CatalogService.SaveCustomer(c.Request.Context(), id, req)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_unavailable")
		return
	}
	response.Success(c, customer)
}

// ListUsers 用户列表
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.CatalogService.ListUsers(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_unavailable")
		return
	}
	response.Success(c, users)
}

// CreateUser 创建用户
func (h *Handler) CreateUser(c *gin.Context) {
	h.saveUser(c, 0)
}

// UpdateUser 更新用户
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := handlershared.ParsePathID(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return
	}
	h.saveUser(c, id)
}

func (h *Handler) saveUser(c *gin.Context, id int64) {
	var req models.User
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	user, err := h.CatalogService.SaveUser(c.Request.Context(), id, req)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_unavailable")
		return
	}
	response.Success(c, user)
}

// DeleteUser 删除用户
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := handlershared.ParsePathID(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return
	}
	if err := h.CatalogService.DeleteUser(c.Request.Context(), id); err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.catalog_unavailable")
		return
	}
	response.Success(c, nil)
}
