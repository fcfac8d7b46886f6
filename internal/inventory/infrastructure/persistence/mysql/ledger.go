package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/pkg/contextx"
	"gorm.io/gorm"

	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
	"github.com/wyfcoding/retailpos/internal/inventory/domain"
)

// stockLedger 基于 products 表的台账实现。
// 单条条件 UPDATE 依赖行锁对同一 SKU 串行化，不同 SKU 的行互不阻塞。
type stockLedger struct {
	db     *gorm.DB
	policy domain.Policy
}

// NewStockLedger 创建 MySQL 库存台账
func NewStockLedger(db *gorm.DB, policy domain.Policy) domain.StockLedger {
	return &stockLedger{db: db, policy: policy}
}

func (l *stockLedger) getDB(ctx context.Context) *gorm.DB {
	if tx := contextx.GetTx(ctx); tx != nil {
		if gormTx, ok := tx.(*gorm.DB); ok {
			return gormTx
		}
	}
	return l.db.WithContext(ctx)
}

func (l *stockLedger) ApplyDelta(ctx context.Context, sku string, delta int, reason domain.Reason) (int, error) {
	db := l.getDB(ctx)

	q := db.Model(&catalogdomain.Product{}).Where("sku = ?", sku)
	if l.policy == domain.PolicyStrict && delta < 0 {
		q = q.Where("stock + ? >= 0", delta)
	}
	res := q.UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// 区分 SKU 不存在与库存不足
		var p catalogdomain.Product
		if err := db.Where("sku = ?", sku).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: %s", catalogdomain.ErrProductNotFound, sku)
			}
			return 0, err
		}
		return p.Stock, fmt.Errorf("%w: sku %s stock %d delta %d", domain.ErrStockConflict, sku, p.Stock, delta)
	}

	var p catalogdomain.Product
	if err := db.Where("sku = ?", sku).First(&p).Error; err != nil {
		return 0, err
	}
	return p.Stock, nil
}
