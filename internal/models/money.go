package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money 统一金额类型（保留 2 位小数）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// NewMoneyFromFloat 从浮点数创建金额
func NewMoneyFromFloat(amount float64) Money {
	return NewMoneyFromDecimal(decimal.NewFromFloat(amount))
}

// MustParseMoney 解析金额字符串，失败时 panic（仅用于常量与测试）
func MustParseMoney(s string) Money {
	return NewMoneyFromDecimal(decimal.RequireFromString(s))
}

// Mul 乘以数量
func (m Money) Mul(quantity int) Money {
	return NewMoneyFromDecimal(m.Decimal.Mul(decimal.NewFromInt(int64(quantity))))
}

// Add 金额相加
func (m Money) Add(other Money) Money {
	return NewMoneyFromDecimal(m.Decimal.Add(other.Decimal))
}

// Equal 金额比较（按 2 位小数）
func (m Money) Equal(other Money) bool {
	return m.Decimal.Round(2).Equal(other.Decimal.Round(2))
}

// MarshalJSON 输出 2 位小数的数字，后端按数值读取 preco/total
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.Round(2).StringFixed(2)), nil
}

// UnmarshalJSON 解析金额（字符串或数字）
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			m.Decimal = decimal.Zero
			return nil
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(2)
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value 用于数据库写入
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(2).Value()
}

// Scan 用于数据库读取
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(2)
	return nil
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}
