// Package export 发票文档与全量状态的 JSON 导出。
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wyfcoding/retailpos/internal/billing/domain"
	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
)

// InvoiceWriter 将发票以 JSON 文档形式写入导出目录
type InvoiceWriter struct {
	dir string
}

func NewInvoiceWriter(dir string) *InvoiceWriter {
	return &InvoiceWriter{dir: dir}
}

type invoiceDocument struct {
	InvoiceNo     string               `json:"invoice_no"`
	StoreName     string               `json:"store"`
	CustomerName  string               `json:"customer_name"`
	CustomerPhone string               `json:"customer_phone"`
	Items         []domain.InvoiceItem `json:"items"`
	GrandTotal    string               `json:"grand_total"`
	PaymentMethod string               `json:"payment_method"`
}

// Export 写出发票文档并返回产物路径
func (w *InvoiceWriter) Export(_ context.Context, invoice *domain.Invoice) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", err
	}
	doc := invoiceDocument{
		InvoiceNo:     invoice.InvoiceNo,
		StoreName:     invoice.StoreName,
		CustomerName:  invoice.CustomerName,
		CustomerPhone: invoice.CustomerPhone,
		Items:         invoice.Items,
		GrandTotal:    invoice.GrandTotal.StringFixed(2),
		PaymentMethod: invoice.PaymentMethod,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal invoice document: %w", err)
	}
	path := filepath.Join(w.dir, invoice.InvoiceNo+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// StateExporter 汇总商品与发票的全量快照
type StateExporter struct {
	products catalogdomain.ProductRepository
	invoices domain.InvoiceRepository
}

func NewStateExporter(products catalogdomain.ProductRepository, invoices domain.InvoiceRepository) *StateExporter {
	return &StateExporter{products: products, invoices: invoices}
}

func (e *StateExporter) ExportAll(ctx context.Context) ([]byte, error) {
	products, err := e.products.List(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := e.invoices.List(ctx)
	if err != nil {
		return nil, err
	}
	state := map[string]any{
		"products": products,
		"invoices": invoices,
	}
	return json.Marshal(state)
}
