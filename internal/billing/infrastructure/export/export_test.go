package export

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/retailpos/internal/billing/domain"
	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
)

func sampleInvoice() *domain.Invoice {
	return &domain.Invoice{
		InvoiceNo:     "INV12345",
		CustomerName:  "Asha",
		CustomerPhone: "9999999999",
		StoreName:     "Smart Desk Mart",
		PaymentMethod: "upi",
		GrandTotal:    decimal.RequireFromString("30.00"),
		Items: []domain.InvoiceItem{{
			SKU:       "SKU1",
			HSN:       "1002",
			Category:  "Dairy & Eggs",
			Name:      "Fresh Milk",
			Unit:      "litre",
			Quantity:  decimal.NewFromInt(3),
			UnitPrice: decimal.RequireFromString("10.00"),
			GSTRate:   5,
			Total:     decimal.RequireFromString("30.00"),
		}},
	}
}

func TestInvoiceWriterExport(t *testing.T) {
	dir := t.TempDir()
	writer := NewInvoiceWriter(dir)

	path, err := writer.Export(context.Background(), sampleInvoice())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "INV12345.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "INV12345", doc["invoice_no"])
	assert.Equal(t, "30.00", doc["grand_total"])
	assert.Equal(t, "Smart Desk Mart", doc["store"])
}

type stubInvoiceRepo struct{ invoices []*domain.Invoice }

func (r *stubInvoiceRepo) Save(context.Context, *domain.Invoice) error { return nil }
func (r *stubInvoiceRepo) GetByInvoiceNo(context.Context, string) (*domain.Invoice, error) {
	return nil, nil
}
func (r *stubInvoiceRepo) List(context.Context) ([]*domain.Invoice, error) {
	return r.invoices, nil
}
func (r *stubInvoiceRepo) Count(context.Context) (int64, error) {
	return int64(len(r.invoices)), nil
}
func (r *stubInvoiceRepo) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type stubProductRepo struct{ products []*catalogdomain.Product }

func (r *stubProductRepo) Save(context.Context, *catalogdomain.Product) error { return nil }
func (r *stubProductRepo) GetBySKU(context.Context, string) (*catalogdomain.Product, error) {
	return nil, catalogdomain.ErrProductNotFound
}
func (r *stubProductRepo) ListByCategory(context.Context, catalogdomain.Category) ([]*catalogdomain.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) List(context.Context) ([]*catalogdomain.Product, error) {
	return r.products, nil
}
func (r *stubProductRepo) Count(context.Context) (int64, error) {
	return int64(len(r.products)), nil
}
func (r *stubProductRepo) CountLowStock(context.Context, int) (int64, error) { return 0, nil }

func TestStateExporter(t *testing.T) {
	p, err := catalogdomain.NewProduct("SKU1", "Fresh Milk", catalogdomain.CategoryDairyEggs,
		catalogdomain.UnitLitre, decimal.RequireFromString("10.00"), 50)
	require.NoError(t, err)

	exporter := NewStateExporter(
		&stubProductRepo{products: []*catalogdomain.Product{p}},
		&stubInvoiceRepo{invoices: []*domain.Invoice{sampleInvoice()}},
	)

	data, err := exporter.ExportAll(context.Background())
	require.NoError(t, err)

	var state struct {
		Products []json.RawMessage `json:"products"`
		Invoices []json.RawMessage `json:"invoices"`
	}
	require.NoError(t, json.Unmarshal(data, &state))
	assert.Len(t, state.Products, 1)
	assert.Len(t, state.Invoices, 1)
}
