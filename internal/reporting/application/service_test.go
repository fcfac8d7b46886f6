package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingdomain "github.com/wyfcoding/retailpos/internal/billing/domain"
	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
)

type stubProductRepo struct {
	total    int64
	lowStock int64
}

func (r *stubProductRepo) Save(context.Context, *catalogdomain.Product) error { return nil }
func (r *stubProductRepo) GetBySKU(context.Context, string) (*catalogdomain.Product, error) {
	return nil, catalogdomain.ErrProductNotFound
}
func (r *stubProductRepo) ListByCategory(context.Context, catalogdomain.Category) ([]*catalogdomain.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) List(context.Context) ([]*catalogdomain.Product, error) { return nil, nil }
func (r *stubProductRepo) Count(context.Context) (int64, error)                   { return r.total, nil }
func (r *stubProductRepo) CountLowStock(context.Context, int) (int64, error) {
	return r.lowStock, nil
}

type stubInvoiceRepo struct {
	total int64
}

func (r *stubInvoiceRepo) Save(context.Context, *billingdomain.Invoice) error { return nil }
func (r *stubInvoiceRepo) GetByInvoiceNo(context.Context, string) (*billingdomain.Invoice, error) {
	return nil, nil
}
func (r *stubInvoiceRepo) List(context.Context) ([]*billingdomain.Invoice, error) { return nil, nil }
func (r *stubInvoiceRepo) Count(context.Context) (int64, error)                   { return r.total, nil }
func (r *stubInvoiceRepo) WithTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func TestSummary(t *testing.T) {
	svc := NewReportService(&stubProductRepo{total: 1100, lowStock: 17}, &stubInvoiceRepo{total: 42}, 5)

	report, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1100), report.Products)
	assert.Equal(t, int64(42), report.Invoices)
	assert.Equal(t, int64(17), report.LowStock)
	assert.False(t, report.GeneratedAt.IsZero())
}
