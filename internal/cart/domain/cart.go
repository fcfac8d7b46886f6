// Package domain 购物车领域模型。
// 购物车归单个收银会话独占，不做并发防护；价格与税率在加入购物车时快照，
// 之后目录的改价不回溯影响未结算的购物车。
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuantity 数量必须为正数
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrLineOutOfRange 行号越界
	ErrLineOutOfRange = errors.New("line index out of range")
)

// Line 购物车行。对商品是弱引用（仅保留 SKU），其余字段均为加入时的快照。
type Line struct {
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	HSN       string          `json:"hsn"`
	GSTRate   int             `json:"gst_rate"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// Total 行小计 = 数量 × 单价，保留 2 位小数
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(l.Quantity).Round(2)
}

// Cart 一次开单会话的工作集。行有序（仅用于展示），总额在每次变更后重算。
type Cart struct {
	CustomerName  string
	CustomerPhone string

	lines      []Line
	grandTotal decimal.Decimal
}

func NewCart() *Cart {
	return &Cart{grandTotal: decimal.Zero}
}

// AddLine 追加一行。相同 SKU 重复加入生成两行，不自动合并（既有行为，刻意保留）。
func (c *Cart) AddLine(line Line) {
	c.lines = append(c.lines, line)
	c.recompute()
}

// SetQuantity 修改某行数量并重算小计与总额
func (c *Cart) SetQuantity(index int, qty decimal.Decimal) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineOutOfRange
	}
	if qty.Sign() <= 0 {
		return ErrInvalidQuantity
	}
	c.lines[index].Quantity = qty
	c.recompute()
	return nil
}

// RemoveLine 删除某行并重算总额
func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineOutOfRange
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	c.recompute()
	return nil
}

// GrandTotal 当前总额：行小计求和后一次性保留 2 位小数
func (c *Cart) GrandTotal() decimal.Decimal {
	return c.grandTotal
}

// Lines 返回行快照副本
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len 行数
func (c *Cart) Len() int { return len(c.lines) }

// Empty 是否为空车
func (c *Cart) Empty() bool { return len(c.lines) == 0 }

// recompute 先求和再取整，避免逐行二次舍入在长单上累积漂移
func (c *Cart) recompute() {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	c.grandTotal = sum.Round(2)
}
