package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethod 支付方式
type PaymentMethod string

// OrderItemPayload 提交订单时的商品行
type OrderItemPayload struct {
	ProductID int64  `json:"idProduto"`
	Name      string `json:"nome"`
	Price     Money  `json:"preco"`
	Quantity  int    `json:"quantidade"`
}

// OrderPayload 提交给后端的订单
type OrderPayload struct {
	Seller     string             `json:"vendedor"`
	CustomerID int64              `json:"clienteId"`
	Items      []OrderItemPayload `json:"itens"`
	Total      Money              `json:"total"`
	Payment    PaymentMethod      `json:"pagamento"`
	Note       string             `json:"observacao"`
}

// OrderID 后端订单号，数字或字符串均可
type OrderID string

// UnmarshalJSON 接受数字、字符串或 null
func (id *OrderID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "" || raw == "null":
		*id = ""
	case strings.HasPrefix(raw, `"`):
		var text string
		if err := json.Unmarshal(b, &text); err != nil {
			return err
		}
		*id = OrderID(strings.TrimSpace(text))
	default:
		var number json.Number
		if err := json.Unmarshal(b, &number); err != nil {
			return fmt.Errorf("invalid order id %s: %w", raw, err)
		}
		*id = OrderID(number.String())
	}
	return nil
}

// String 订单号文本
func (id OrderID) String() string {
	return string(id)
}

// OrderConfirmation 后端返回的订单确认
// 后端返回 2xx 即视为已下单，ID 可能为空
type OrderConfirmation struct {
	ID    OrderID         `json:"id"`
	Total Money           `json:"total"`
	Raw   json.RawMessage `json:"-"`
}

// BuildOrderPayload 由购物车快照生成订单
func BuildOrderPayload(seller string, customerID int64, cart Cart, payment PaymentMethod, note string) OrderPayload {
	items := make([]OrderItemPayload, 0, len(cart))
	for _, item := range cart {
		items = append(items, OrderItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	return OrderPayload{
		Seller:     seller,
		CustomerID: customerID,
		Items:      items,
		Total:      cart.Subtotal(),
		Payment:    payment,
		Note:       note,
	}
}
