package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/wyfcoding/pkg/contextx"
	"gorm.io/gorm"

	"github.com/wyfcoding/retailpos/internal/catalog/domain"
)

type productRepository struct{ db *gorm.DB }

// NewProductRepository 创建商品 MySQL 仓储
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	_ = db.AutoMigrate(&domain.Product{})
	return &productRepository{db: db}
}

func (r *productRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := contextx.GetTx(ctx); tx != nil {
		if gormTx, ok := tx.(*gorm.DB); ok {
			return gormTx
		}
	}
	return r.db.WithContext(ctx)
}

func (r *productRepository) Save(ctx context.Context, product *domain.Product) error {
	if err := r.getDB(ctx).Create(product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateSKU, product.SKU)
		}
		return err
	}
	return nil
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	var p domain.Product
	if err := r.getDB(ctx).Where("sku = ?", sku).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, sku)
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.getDB(ctx).Where("category = ?", category).Order("sku ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) List(ctx context.Context) ([]*domain.Product, error) {
	var products []*domain.Product
	err := r.getDB(ctx).Order("sku ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.getDB(ctx).Model(&domain.Product{}).Count(&total).Error
	return total, err
}

func (r *productRepository) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var total int64
	err := r.getDB(ctx).Model(&domain.Product{}).Where("stock <= ?", threshold).Count(&total).Error
	return total, err
}
