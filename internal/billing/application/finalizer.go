// Package application 开票定稿用例：校验、铸号、原子提交与提交后分发。
package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/pkg/idgen"

	"github.com/wyfcoding/retailpos/internal/billing/domain"
	cartdomain "github.com/wyfcoding/retailpos/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
	inventorydomain "github.com/wyfcoding/retailpos/internal/inventory/domain"
	"github.com/wyfcoding/retailpos/pkg/logger"
)

// CommitResult 提交结果。Warnings 承载提交后旁路（通知、备份、导出）的非致命失败。
type CommitResult struct {
	Invoice  *domain.Invoice
	Warnings []string
}

// FinalizerService 发票定稿器。库存扣减与发票落库在同一事务内完成，
// 通知与备份在事务提交之后执行，失败只降级为警告。
type FinalizerService struct {
	invoices   domain.InvoiceRepository
	products   catalogdomain.ProductRepository
	ledger     inventorydomain.StockLedger
	dispatcher domain.Dispatcher
	exporter   domain.InvoiceExporter
	state      domain.StateExporter
	storeName  string
}

func NewFinalizerService(
	invoices domain.InvoiceRepository,
	products catalogdomain.ProductRepository,
	ledger inventorydomain.StockLedger,
	dispatcher domain.Dispatcher,
	exporter domain.InvoiceExporter,
	state domain.StateExporter,
	storeName string,
) *FinalizerService {
	return &FinalizerService{
		invoices:   invoices,
		products:   products,
		ledger:     ledger,
		dispatcher: dispatcher,
		exporter:   exporter,
		state:      state,
		storeName:  storeName,
	}
}

// Commit 定稿提交一张购物车。
// 失败路径（空车、校验、库存冲突、发票号冲突、持久化失败）不产生任何副作用；
// 成功后购物车由调用方丢弃，发票号即使提交中止也不复用。
func (s *FinalizerService) Commit(ctx context.Context, cart *cartdomain.Cart, paymentMethod string) (*CommitResult, error) {
	if cart == nil || cart.Empty() {
		return nil, domain.ErrEmptyCart
	}

	lines := cart.Lines()
	for i, line := range lines {
		if line.Quantity.Sign() <= 0 {
			return nil, fmt.Errorf("%w: line %d quantity %s", domain.ErrValidationFailed, i, line.Quantity)
		}
		if _, err := s.products.GetBySKU(ctx, line.SKU); err != nil {
			if errors.Is(err, catalogdomain.ErrProductNotFound) {
				return nil, fmt.Errorf("%w: line %d sku %s not found", domain.ErrValidationFailed, i, line.SKU)
			}
			return nil, err
		}
	}

	invoice := s.snapshot(lines, cart, paymentMethod)

	var warnings []string
	if s.exporter != nil {
		path, err := s.exporter.Export(ctx, invoice)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invoice export failed: %v", err))
			logger.Warn(ctx, "invoice export failed", "invoice_no", invoice.InvoiceNo, "error", err)
		} else {
			invoice.FilePath = path
		}
	}

	err := s.invoices.WithTx(ctx, func(txCtx context.Context) error {
		for _, item := range invoice.Items {
			delta := int(item.Quantity.Round(0).IntPart())
			if delta == 0 {
				continue
			}
			if _, err := s.ledger.ApplyDelta(txCtx, item.SKU, -delta, inventorydomain.ReasonSale); err != nil {
				if errors.Is(err, inventorydomain.ErrStockConflict) {
					return fmt.Errorf("%w: sku %s", domain.ErrStockConflict, item.SKU)
				}
				if errors.Is(err, catalogdomain.ErrProductNotFound) {
					return fmt.Errorf("%w: sku %s not found", domain.ErrValidationFailed, item.SKU)
				}
				return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
			}
		}
		if err := s.invoices.Save(txCtx, invoice); err != nil {
			if errors.Is(err, domain.ErrDuplicateInvoiceNumber) {
				return err
			}
			return fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice committed",
		"invoice_no", invoice.InvoiceNo,
		"lines", len(invoice.Items),
		"grand_total", invoice.GrandTotal.StringFixed(2),
		"payment_method", invoice.PaymentMethod)

	warnings = append(warnings, s.dispatch(ctx, invoice)...)

	return &CommitResult{Invoice: invoice, Warnings: warnings}, nil
}

// Lookup 按发票号读取已提交的发票，未找到返回 nil
func (s *FinalizerService) Lookup(ctx context.Context, invoiceNo string) (*domain.Invoice, error) {
	return s.invoices.GetByInvoiceNo(ctx, invoiceNo)
}

// snapshot 从购物车行铸造发票：行内容复制为不可变快照，总额独立重算
func (s *FinalizerService) snapshot(lines []cartdomain.Line, cart *cartdomain.Cart, paymentMethod string) *domain.Invoice {
	items := make([]domain.InvoiceItem, 0, len(lines))
	grand := decimal.Zero
	for _, line := range lines {
		total := line.UnitPrice.Mul(line.Quantity).Round(2)
		items = append(items, domain.InvoiceItem{
			SKU:       line.SKU,
			HSN:       line.HSN,
			Category:  line.Category,
			Name:      line.Name,
			Unit:      line.Unit,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			GSTRate:   line.GSTRate,
			Total:     total,
		})
		grand = grand.Add(total)
	}
	return &domain.Invoice{
		InvoiceNo:     fmt.Sprintf("INV%d", idgen.GenID()),
		CustomerName:  cart.CustomerName,
		CustomerPhone: cart.CustomerPhone,
		Items:         items,
		GrandTotal:    grand.Round(2),
		PaymentMethod: paymentMethod,
		StoreName:     s.storeName,
	}
}

// dispatch 提交后单次调用通知与备份，失败收敛为警告
func (s *FinalizerService) dispatch(ctx context.Context, invoice *domain.Invoice) []string {
	var warnings []string
	if s.dispatcher == nil {
		return nil
	}
	if res := s.dispatcher.Notify(ctx, invoice); res.Err != nil {
		warnings = append(warnings, fmt.Sprintf("notification failed: %v", res.Err))
	}
	if s.state != nil {
		state, err := s.state.ExportAll(ctx)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("state export failed: %v", err))
			logger.Warn(ctx, "state export failed", "error", err)
			return warnings
		}
		if res := s.dispatcher.Backup(ctx, state); res.Err != nil {
			warnings = append(warnings, fmt.Sprintf("backup failed: %v", res.Err))
		}
	}
	return warnings
}
