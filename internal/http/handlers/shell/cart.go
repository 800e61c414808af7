package shell

import (
	handlershared "github.com/vitrine-next/internal/http/handlers/shared"
	"github.com/vitrine-next/internal/http/response"
	"github.com/vitrine-next/internal/models"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车
// 传 product 时直接使用其快照，只传 product_id 时从目录查询
type AddCartItemRequest struct {
	Product   *models.Product `json:"product"`
	ProductID int64           `json:"product_id"`
}

// SetQuantityRequest 修改数量
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse 购物车响应
type CartResponse struct {
	Items     models.Cart  `json:"items"`
	ItemCount int          `json:"item_count"`
	Subtotal  models.Money `json:"subtotal"`
}

func newCartResponse(cart models.Cart) CartResponse {
	if cart == nil {
		cart = models.Cart{}
	}
	return CartResponse{Items: cart, ItemCount: cart.ItemCount(), Subtotal: cart.Subtotal()}
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	response.Success(c, newCartResponse(h.CartService.Snapshot()))
}

// AddCartItem 添加商品或数量加一
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	var product models.Product
	switch {
	case req.Product != nil:
		product = *req.Product
	case req.ProductID > 0:
		found, err := h.CatalogService.FindProduct(c.Request.Context(), req.ProductID)
		if err != nil {
			respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
			return
		}
		product = *found
	default:
		respondError(c, response.CodeBadRequest, "error.product_invalid", nil)
		return
	}

	cart, err := h.CartService.AddOrIncrement(c.Request.Context(), product)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Debugw("cart_add_request", "product_id", product.ID)
	response.Success(c, newCartResponse(cart))
}

// SetCartItemQuantity 设置数量，0 或负数移除
func (h *Handler) SetCartItemQuantity(c *gin.Context) {
	productID, ok := handlershared.ParsePathID(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return
	}
	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	cart, err := h.CartService.SetQuantity(c.Request.Context(), productID, *req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, newCartResponse(cart))
}

// RemoveCartItem 移除商品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, ok := handlershared.ParsePathID(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.invalid_id", nil)
		return
	}
	cart, err := h.CartService.Remove(c.Request.Context(), productID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, newCartResponse(cart))
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.CartService.Clear(c.Request.Context()); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, newCartResponse(models.Cart{}))
}
