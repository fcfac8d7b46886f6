package domain

import "errors"

// 提交错误分类。除发票号空间耗尽（idgen 层面致命）外均可由调用方恢复。
var (
	// ErrEmptyCart 空车不可定稿
	ErrEmptyCart = errors.New("empty cart")
	// ErrValidationFailed 行校验失败（数量非正或 SKU 不可解析），提交前置检查拒绝
	ErrValidationFailed = errors.New("validation failed")
	// ErrStockConflict 严格策略下库存不足，整个提交回滚
	ErrStockConflict = errors.New("stock conflict")
	// ErrDuplicateInvoiceNumber 发票号冲突，提交中止，绝不覆盖已有发票
	ErrDuplicateInvoiceNumber = errors.New("duplicate invoice number")
	// ErrPersistenceFailure 持久化失败，调用方可携同一购物车重试
	ErrPersistenceFailure = errors.New("persistence failure")
)
