package models

// CartItem 购物车项
// 名称与单价为加入购物车时的快照，之后不随商品目录变化
type CartItem struct {
	ProductID int64  `json:"id"`
	Name      string `json:"nome"`
	Price     Money  `json:"preco"`
	Quantity  int    `json:"quantity"`
}

// Subtotal 当前项小计
func (i CartItem) Subtotal() Money {
	return i.Price.Mul(i.Quantity)
}

// Cart 购物车（顺序仅影响展示）
type Cart []CartItem

// ItemCount 商品总件数
func (c Cart) ItemCount() int {
	total := 0
	for _, item := range c {
		total += item.Quantity
	}
	return total
}

// Subtotal 商品总金额
func (c Cart) Subtotal() Money {
	total := Money{}
	for _, item := range c {
		total = total.Add(item.Subtotal())
	}
	return total
}

// IndexOf 返回商品所在位置，不存在时返回 -1
func (c Cart) IndexOf(productID int64) int {
	for i, item := range c {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Clone 复制购物车，避免外部修改内部状态
func (c Cart) Clone() Cart {
	if c == nil {
		return Cart{}
	}
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Normalize 合并重复商品并丢弃数量非法的项
func (c Cart) Normalize() Cart {
	out := make(Cart, 0, len(c))
	for _, item := range c {
		if item.ProductID == 0 || item.Quantity <= 0 {
			continue
		}
		if idx := out.IndexOf(item.ProductID); idx >= 0 {
			out[idx].Quantity += item.Quantity
			continue
		}
		out = append(out, item)
	}
	return out
}

// NewCartItemFromProduct 以数量 1 创建购物车项
func NewCartItemFromProduct(product Product) CartItem {
	return CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  1,
	}
}
