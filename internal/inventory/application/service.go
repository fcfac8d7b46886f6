package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/retailpos/internal/inventory/domain"
	"github.com/wyfcoding/retailpos/pkg/logger"
)

// InventoryService 人工入库等台账之上的用例
type InventoryService struct {
	ledger domain.StockLedger
}

func NewInventoryService(ledger domain.StockLedger) *InventoryService {
	return &InventoryService{ledger: ledger}
}

// StockInward 人工入库：正数数量，经同一台账入账
func (s *InventoryService) StockInward(ctx context.Context, sku string, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("inward quantity must be positive, got %d", qty)
	}
	newStock, err := s.ledger.ApplyDelta(ctx, sku, qty, domain.ReasonManualInward)
	if err != nil {
		return 0, err
	}
	logger.Info(ctx, "stock inward applied", "sku", sku, "qty", qty, "new_stock", newStock)
	return newStock, nil
}
