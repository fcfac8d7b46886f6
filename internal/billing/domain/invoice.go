// Package domain 开票（发票）领域模型
package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem 发票行，定稿时从购物车行快照而来，之后不可变
type InvoiceItem struct {
	SKU       string          `json:"sku"`
	HSN       string          `json:"hsn"`
	Category  string          `json:"category"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"mrp"`
	GSTRate   int             `json:"gst"`
	Total     decimal.Decimal `json:"total"`
}

// Invoice 不可变发票记录。由定稿器在提交时一次性创建，此后只读。
type Invoice struct {
	ID            uint
	InvoiceNo     string
	CustomerName  string
	CustomerPhone string
	Items         []InvoiceItem
	GrandTotal    decimal.Decimal
	PaymentMethod string
	StoreName     string
	// FilePath 导出文档产物的路径，可为空
	FilePath  string
	CreatedAt time.Time
}

// InvoiceRepository 发票仓储接口
type InvoiceRepository interface {
	// Save 持久化发票，发票号唯一索引冲突返回 ErrDuplicateInvoiceNumber
	Save(ctx context.Context, invoice *Invoice) error
	// GetByInvoiceNo 按发票号读取
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*Invoice, error)
	// List 列出全部发票（备份导出用）
	List(ctx context.Context) ([]*Invoice, error)
	// Count 发票总数
	Count(ctx context.Context) (int64, error)
	// WithTx 在单个事务内执行 fn，fn 返回错误则整体回滚
	WithTx(ctx context.Context, fn func(txCtx context.Context) error) error
}
