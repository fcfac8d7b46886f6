package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/retailpos/internal/inventory/domain"
	"github.com/wyfcoding/retailpos/internal/inventory/infrastructure/memory"
)

func TestStockInward(t *testing.T) {
	ledger := memory.NewStockLedger(domain.PolicyStrict)
	ledger.SetStock("SKU1", 5)
	svc := NewInventoryService(ledger)

	stock, err := svc.StockInward(context.Background(), "SKU1", 20)
	require.NoError(t, err)
	assert.Equal(t, 25, stock)
}

func TestStockInwardRejectsNonPositive(t *testing.T) {
	ledger := memory.NewStockLedger(domain.PolicyStrict)
	ledger.SetStock("SKU1", 5)
	svc := NewInventoryService(ledger)

	_, err := svc.StockInward(context.Background(), "SKU1", 0)
	assert.Error(t, err)
	_, err = svc.StockInward(context.Background(), "SKU1", -3)
	assert.Error(t, err)

	stock, _ := ledger.Stock("SKU1")
	assert.Equal(t, 5, stock)
}
