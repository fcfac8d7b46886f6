package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/retailpos/internal/catalog/domain"
)

type CatalogService struct{ repo domain.ProductRepository }

func NewCatalogService(repo domain.ProductRepository) (*CatalogService, error) {
	if err := domain.ValidateEnumeration(); err != nil {
		return nil, err
	}
	return &CatalogService{repo: repo}, nil
}

func (s *CatalogService) Lookup(ctx context.Context, sku string) (*domain.Product, error) {
	return s.repo.GetBySKU(ctx, sku)
}

func (s *CatalogService) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	if !category.Valid() {
		return nil, domain.ErrUnknownCategory
	}
	return s.repo.ListByCategory(ctx, category)
}

func (s *CatalogService) Categories(ctx context.Context) []domain.Category {
	return domain.Categories()
}

func (s *CatalogService) AddProduct(ctx context.Context, sku, name string, category domain.Category, unit domain.Unit, price decimal.Decimal, stock int) (*domain.Product, error) {
	p, err := domain.NewProduct(sku, name, category, unit, price, stock)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
