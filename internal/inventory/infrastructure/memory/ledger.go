// Package memory 进程内库存台账实现，供测试与单机演示使用
package memory

import (
	"context"
	"fmt"
	"sync"

	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
	"github.com/wyfcoding/retailpos/internal/inventory/domain"
)

// StockLedger 以 map 保存库存，锁按 SKU 粒度持有：
// 同一 SKU 的变更串行，不同 SKU 并行。
type StockLedger struct {
	mu     sync.Mutex
	locks  map[string]*sync.Mutex
	stocks map[string]int
	policy domain.Policy
}

func NewStockLedger(policy domain.Policy) *StockLedger {
	return &StockLedger{
		locks:  make(map[string]*sync.Mutex),
		stocks: make(map[string]int),
		policy: policy,
	}
}

// SetStock 写入初始库存（仅用于装配与测试准备）
func (l *StockLedger) SetStock(sku string, stock int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stocks[sku] = stock
}

// Stock 读取当前库存
func (l *StockLedger) Stock(sku string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.stocks[sku]
	return v, ok
}

func (l *StockLedger) ApplyDelta(ctx context.Context, sku string, delta int, reason domain.Reason) (int, error) {
	lock := l.lockFor(sku)
	lock.Lock()
	defer lock.Unlock()

	l.mu.Lock()
	stock, ok := l.stocks[sku]
	l.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("%w: %s", catalogdomain.ErrProductNotFound, sku)
	}

	next := stock + delta
	if l.policy == domain.PolicyStrict && next < 0 {
		return stock, fmt.Errorf("%w: sku %s stock %d delta %d", domain.ErrStockConflict, sku, stock, delta)
	}

	l.mu.Lock()
	l.stocks[sku] = next
	l.mu.Unlock()
	return next, nil
}

// Snapshot 复制全量库存，配合 Restore 模拟事务回滚
func (l *StockLedger) Snapshot() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]int, len(l.stocks))
	for k, v := range l.stocks {
		out[k] = v
	}
	return out
}

// Restore 恢复到给定快照
func (l *StockLedger) Restore(snapshot map[string]int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stocks = make(map[string]int, len(snapshot))
	for k, v := range snapshot {
		l.stocks[k] = v
	}
}

func (l *StockLedger) lockFor(sku string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[sku]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[sku] = lock
	}
	return lock
}
