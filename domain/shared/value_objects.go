package shared

import (
	"github.com/shopspring/decimal"
)

// PriceScale 价格精度，与 decimal(18,2) 列一致
const PriceScale = 2

// PriceMaxIntegerDigits decimal(18,2) 列可容纳的整数位数
const PriceMaxIntegerDigits = 16

// priceCeiling 价格上限（不含）
var priceCeiling = decimal.New(1, PriceMaxIntegerDigits)

// Price 值对象 - 非负金额，保留两位小数
type Price struct {
	amount decimal.Decimal
}

// NewPrice 创建价格，负数或超出存储精度返回校验错误
func NewPrice(amount decimal.Decimal) (Price, error) {
	if amount.IsNegative() {
		return Price{}, NewValidationError("price", "price", "price must not be negative")
	}
	rounded := amount.Round(PriceScale)
	if rounded.GreaterThanOrEqual(priceCeiling) {
		return Price{}, NewValidationError("price", "price", "price exceeds 16 integer digits")
	}
	return Price{amount: rounded}, nil
}

// ParsePrice 从字符串创建价格
func ParsePrice(s string) (Price, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, NewValidationError("price", "price", "price is not a valid decimal")
	}
	return NewPrice(amount)
}

// MustPrice 仅用于测试和常量
func MustPrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Decimal 返回底层金额
func (p Price) Decimal() decimal.Decimal {
	return p.amount
}

// String 固定两位小数
func (p Price) String() string {
	return p.amount.StringFixed(PriceScale)
}

// Equals 按数值比较，1000 与 1000.00 相等
func (p Price) Equals(other Price) bool {
	return p.amount.Equal(other.amount)
}
