package application

import (
	"context"

	"github.com/shopspring/decimal"

	cartdomain "github.com/wyfcoding/retailpos/internal/cart/domain"
	catalogdomain "github.com/wyfcoding/retailpos/internal/catalog/domain"
)

// CartService 将目录查询和购物车变更装配在一起：
// 加行时从目录取价并快照到行上，其余操作纯属购物车内部状态。
type CartService struct {
	products catalogdomain.ProductRepository
}

func NewCartService(products catalogdomain.ProductRepository) *CartService {
	return &CartService{products: products}
}

// AddLine 按 SKU 加入一行，数量非正返回 ErrInvalidQuantity，SKU 未知返回 ErrProductNotFound
func (s *CartService) AddLine(ctx context.Context, cart *cartdomain.Cart, sku string, qty decimal.Decimal) (*cartdomain.Line, error) {
	if qty.Sign() <= 0 {
		return nil, cartdomain.ErrInvalidQuantity
	}
	p, err := s.products.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	line := cartdomain.Line{
		SKU:       p.SKU,
		Name:      p.Name,
		Category:  string(p.Category),
		Unit:      string(p.Unit),
		HSN:       p.HSN,
		GSTRate:   p.GSTRate,
		UnitPrice: p.Price,
		Quantity:  qty,
	}
	cart.AddLine(line)
	return &line, nil
}

func (s *CartService) SetQuantity(ctx context.Context, cart *cartdomain.Cart, index int, qty decimal.Decimal) error {
	return cart.SetQuantity(index, qty)
}

func (s *CartService) RemoveLine(ctx context.Context, cart *cartdomain.Cart, index int) error {
	return cart.RemoveLine(index)
}
