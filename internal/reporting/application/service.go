// Package application 经营汇总报表用例
package application

import (
	"context"
	"time"

	billingdomain "github.com/wyfcoding/retailpos/internal/billing/domain"
	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
)

// SummaryReport 汇总报表
type SummaryReport struct {
	Products    int64     `json:"products"`
	Invoices    int64     `json:"invoices"`
	LowStock    int64     `json:"low_stock"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ReportService 汇总报表服务
type ReportService struct {
	products          catalogdomain.ProductRepository
	invoices          billingdomain.InvoiceRepository
	lowStockThreshold int
}

func NewReportService(products catalogdomain.ProductRepository, invoices billingdomain.InvoiceRepository, lowStockThreshold int) *ReportService {
	return &ReportService{products: products, invoices: invoices, lowStockThreshold: lowStockThreshold}
}

// Summary 统计商品总数、发票总数与低库存商品数
func (s *ReportService) Summary(ctx context.Context) (*SummaryReport, error) {
	products, err := s.products.Count(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.Count(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.CountLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, err
	}
	return &SummaryReport{
		Products:    products,
		Invoices:    invoices,
		LowStock:    lowStock,
		GeneratedAt: time.Now(),
	}, nil
}
