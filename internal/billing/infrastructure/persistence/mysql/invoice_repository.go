// 发票 MySQL 仓储实现。行条目序列化为 JSON 文档列，发票号走唯一索引。
package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/contextx"
	"gorm.io/gorm"

	"github.com/wyfcoding/retailpos/internal/billing/domain"
)

// InvoiceModel 发票数据库模型
type InvoiceModel struct {
	gorm.Model
	InvoiceNo     string          `gorm:"column:invoice_no;type:varchar(64);uniqueIndex;not null"`
	CustomerName  string          `gorm:"column:customer_name;type:varchar(128)"`
	CustomerPhone string          `gorm:"column:customer_phone;type:varchar(32);index"`
	Items         string          `gorm:"column:items;type:json;not null"`
	GrandTotal    decimal.Decimal `gorm:"column:grand_total;type:decimal(20,2);not null"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(32);not null"`
	StoreName     string          `gorm:"column:store_name;type:varchar(128);not null"`
	FilePath      string          `gorm:"column:file_path;type:varchar(512)"`
}

func (InvoiceModel) TableName() string { return "invoices" }

// InvoiceMySQLRepository 发票 MySQL 仓储
type InvoiceMySQLRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository 创建发票仓储
func NewInvoiceRepository(db *gorm.DB) domain.InvoiceRepository {
	_ = db.AutoMigrate(&InvoiceModel{})
	return &InvoiceMySQLRepository{db: db}
}

func (r *InvoiceMySQLRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := contextx.GetTx(ctx); tx != nil {
		if gormTx, ok := tx.(*gorm.DB); ok {
			return gormTx
		}
	}
	return r.db.WithContext(ctx)
}

func (r *InvoiceMySQLRepository) Save(ctx context.Context, invoice *domain.Invoice) error {
	model, err := r.toModel(invoice)
	if err != nil {
		return err
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateInvoiceNumber, invoice.InvoiceNo)
		}
		return err
	}
	invoice.ID = model.ID
	invoice.CreatedAt = model.CreatedAt
	return nil
}

func (r *InvoiceMySQLRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*domain.Invoice, error) {
	var model InvoiceModel
	if err := r.getDB(ctx).Where("invoice_no = ?", invoiceNo).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.toDomain(&model)
}

func (r *InvoiceMySQLRepository) List(ctx context.Context) ([]*domain.Invoice, error) {
	var models []InvoiceModel
	if err := r.getDB(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*domain.Invoice, 0, len(models))
	for i := range models {
		inv, err := r.toDomain(&models[i])
		if err != nil {
			return nil, err
		}
		result = append(result, inv)
	}
	return result, nil
}

func (r *InvoiceMySQLRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.getDB(ctx).Model(&InvoiceModel{}).Count(&total).Error
	return total, err
}

func (r *InvoiceMySQLRepository) WithTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txCtx := contextx.WithTx(ctx, tx)
		return fn(txCtx)
	})
}

func (r *InvoiceMySQLRepository) toModel(d *domain.Invoice) (*InvoiceModel, error) {
	items, err := json.Marshal(d.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal invoice items: %w", err)
	}
	return &InvoiceModel{
		Model:         gorm.Model{ID: d.ID, CreatedAt: d.CreatedAt},
		InvoiceNo:     d.InvoiceNo,
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		Items:         string(items),
		GrandTotal:    d.GrandTotal,
		PaymentMethod: d.PaymentMethod,
		StoreName:     d.StoreName,
		FilePath:      d.FilePath,
	}, nil
}

func (r *InvoiceMySQLRepository) toDomain(m *InvoiceModel) (*domain.Invoice, error) {
	var items []domain.InvoiceItem
	if err := json.Unmarshal([]byte(m.Items), &items); err != nil {
		return nil, fmt.Errorf("unmarshal invoice items: %w", err)
	}
	return &domain.Invoice{
		ID:            m.ID,
		InvoiceNo:     m.InvoiceNo,
		CustomerName:  m.CustomerName,
		CustomerPhone: m.CustomerPhone,
		Items:         items,
		GrandTotal:    m.GrandTotal,
		PaymentMethod: m.PaymentMethod,
		StoreName:     m.StoreName,
		FilePath:      m.FilePath,
		CreatedAt:     m.CreatedAt,
	}, nil
}
