package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
	"github.com/wyfcoding/retailpos/internal/inventory/domain"
)

func TestApplyDeltaStrict(t *testing.T) {
	ledger := NewStockLedger(domain.PolicyStrict)
	ledger.SetStock("SKU1", 10)

	stock, err := ledger.ApplyDelta(context.Background(), "SKU1", -3, domain.ReasonSale)
	require.NoError(t, err)
	assert.Equal(t, 7, stock)

	// 严格策略：扣到负数整体拒绝，库存不变
	_, err = ledger.ApplyDelta(context.Background(), "SKU1", -8, domain.ReasonSale)
	assert.ErrorIs(t, err, domain.ErrStockConflict)
	current, ok := ledger.Stock("SKU1")
	require.True(t, ok)
	assert.Equal(t, 7, current)
}

func TestApplyDeltaPermissiveAllowsNegative(t *testing.T) {
	ledger := NewStockLedger(domain.PolicyPermissive)
	ledger.SetStock("SKU1", 2)

	stock, err := ledger.ApplyDelta(context.Background(), "SKU1", -5, domain.ReasonSale)
	require.NoError(t, err)
	assert.Equal(t, -3, stock)
}

func TestApplyDeltaUnknownSKU(t *testing.T) {
	ledger := NewStockLedger(domain.PolicyStrict)
	_, err := ledger.ApplyDelta(context.Background(), "NOPE", -1, domain.ReasonSale)
	assert.ErrorIs(t, err, catalogdomain.ErrProductNotFound)
}

func TestApplyDeltaInward(t *testing.T) {
	ledger := NewStockLedger(domain.PolicyStrict)
	ledger.SetStock("SKU1", 0)

	stock, err := ledger.ApplyDelta(context.Background(), "SKU1", 25, domain.ReasonManualInward)
	require.NoError(t, err)
	assert.Equal(t, 25, stock)
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	ledger := NewStockLedger(domain.PolicyStrict)
	ledger.SetStock("SKU1", 50)

	var wg sync.WaitGroup
	var mu sync.Mutex
	sold := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.ApplyDelta(context.Background(), "SKU1", -1, domain.ReasonSale); err == nil {
				mu.Lock()
				sold++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, sold)
	stock, _ := ledger.Stock("SKU1")
	assert.Equal(t, 0, stock)
}

func TestSnapshotRestore(t *testing.T) {
	ledger := NewStockLedger(domain.PolicyStrict)
	ledger.SetStock("SKU1", 10)
	ledger.SetStock("SKU2", 20)

	snap := ledger.Snapshot()
	_, err := ledger.ApplyDelta(context.Background(), "SKU1", -4, domain.ReasonSale)
	require.NoError(t, err)

	ledger.Restore(snap)
	stock, _ := ledger.Stock("SKU1")
	assert.Equal(t, 10, stock)
	stock, _ = ledger.Stock("SKU2")
	assert.Equal(t, 20, stock)
}
