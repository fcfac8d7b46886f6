// Package domain 库存台账领域模型。
// 台账是全部收银会话共享的唯一库存变更入口，匹配只按 SKU，
// 不提供按名称的兜底匹配（同名不同 SKU 会导致数量串账）。
package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrStockConflict 严格策略下，扣减会把库存打成负数
var ErrStockConflict = errors.New("stock conflict")

// Policy 负库存策略
type Policy string

const (
	// PolicyStrict 拒绝任何会导致负库存的扣减
	PolicyStrict Policy = "strict"
	// PolicyPermissive 允许负库存（欠库存销售），仅报告不拦截
	PolicyPermissive Policy = "permissive"
)

// ParsePolicy 解析策略配置，未识别取值属于配置错误
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyStrict, PolicyPermissive:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("unknown inventory policy: %q", s)
	}
}

// Reason 库存变更原因
type Reason string

const (
	ReasonSale         Reason = "sale"
	ReasonManualInward Reason = "manual_inward"
)

// Adjustment 一次带符号的库存变更请求
type Adjustment struct {
	SKU    string `json:"sku"`
	Delta  int    `json:"delta"`
	Reason Reason `json:"reason"`
}

// StockLedger 库存台账。ApplyDelta 对同一 SKU 的并发调用彼此串行化，
// 不同 SKU 互不阻塞；实现需通过 contextx 参与调用方事务。
type StockLedger interface {
	// ApplyDelta 施加带符号变更并返回新库存。
	// SKU 不存在返回 catalog 的 ErrProductNotFound；
	// 严格策略下把库存打负返回 ErrStockConflict。
	ApplyDelta(ctx context.Context, sku string, delta int, reason Reason) (int, error)
}
