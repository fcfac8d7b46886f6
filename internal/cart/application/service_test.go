package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/wyfcoding/retailpos/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
)

type fakeProductRepo struct {
	products map[string]*catalogdomain.Product
}

func newFakeProductRepo(products ...*catalogdomain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*catalogdomain.Product)}
	for _, p := range products {
		r.products[p.SKU] = p
	}
	return r
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalogdomain.Product) error {
	r.products[p.SKU] = p
	return nil
}

func (r *fakeProductRepo) GetBySKU(_ context.Context, sku string) (*catalogdomain.Product, error) {
	p, ok := r.products[sku]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalogdomain.ErrProductNotFound, sku)
	}
	return p, nil
}

func (r *fakeProductRepo) ListByCategory(_ context.Context, _ catalogdomain.Category) ([]*catalogdomain.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) List(_ context.Context) ([]*catalogdomain.Product, error) { return nil, nil }

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) CountLowStock(_ context.Context, _ int) (int64, error) { return 0, nil }

func mustProduct(t *testing.T, sku, price string) *catalogdomain.Product {
	t.Helper()
	p, err := catalogdomain.NewProduct(sku, "Fresh Milk", catalogdomain.CategoryDairyEggs,
		catalogdomain.UnitLitre, decimal.RequireFromString(price), 50)
	require.NoError(t, err)
	return p
}

func TestAddLineSnapshotsPrice(t *testing.T) {
	repo := newFakeProductRepo(mustProduct(t, "SKU1", "45.50"))
	svc := NewCartService(repo)
	cart := cartdomain.NewCart()

	line, err := svc.AddLine(context.Background(), cart, "SKU1", decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("45.50")))
	assert.Equal(t, "1002", line.HSN)
	assert.Equal(t, 5, line.GSTRate)
	assert.True(t, cart.GrandTotal().Equal(decimal.RequireFromString("91.00")))

	// 加入后改目录价，购物车行保持快照价
	repo.products["SKU1"].Price = decimal.RequireFromString("99.00")
	assert.True(t, cart.Lines()[0].UnitPrice.Equal(decimal.RequireFromString("45.50")))
	assert.True(t, cart.GrandTotal().Equal(decimal.RequireFromString("91.00")))
}

func TestAddLineUnknownSKU(t *testing.T) {
	svc := NewCartService(newFakeProductRepo())
	cart := cartdomain.NewCart()

	_, err := svc.AddLine(context.Background(), cart, "NOPE", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
	assert.True(t, cart.Empty())
}

func TestAddLineInvalidQuantity(t *testing.T) {
	svc := NewCartService(newFakeProductRepo(mustProduct(t, "SKU1", "10.00")))
	cart := cartdomain.NewCart()

	_, err := svc.AddLine(context.Background(), cart, "SKU1", decimal.Zero)
	assert.ErrorIs(t, err, cartdomain.ErrInvalidQuantity)

	_, err = svc.AddLine(context.Background(), cart, "SKU1", decimal.NewFromInt(-3))
	assert.ErrorIs(t, err, cartdomain.ErrInvalidQuantity)
	assert.True(t, cart.Empty())
}

func TestAddSameSKUTwiceKeepsTwoLines(t *testing.T) {
	svc := NewCartService(newFakeProductRepo(mustProduct(t, "SKU1", "10.00")))
	cart := cartdomain.NewCart()

	_, err := svc.AddLine(context.Background(), cart, "SKU1", decimal.NewFromInt(1))
	require.NoError(t, err)
	_, err = svc.AddLine(context.Background(), cart, "SKU1", decimal.NewFromInt(2))
	require.NoError(t, err)

	assert.Equal(t, 2, cart.Len())
	assert.True(t, cart.GrandTotal().Equal(decimal.RequireFromString("30.00")))
}
