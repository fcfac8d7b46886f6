package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	// ErrProductNotFound SKU 在目录中不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateSKU SKU 已存在，SKU 一经创建不可变更
	ErrDuplicateSKU = errors.New("duplicate sku")
)

// Unit 销售单位
type Unit string

const (
	UnitPiece Unit = "piece"
	UnitKg    Unit = "kg"
	UnitLitre Unit = "litre"
	UnitGram  Unit = "gram"
)

// Product 商品主数据。库存只允许经由库存台账变更。
type Product struct {
	gorm.Model
	SKU      string          `gorm:"column:sku;type:varchar(32);uniqueIndex;not null" json:"sku"`
	Name     string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Category Category        `gorm:"column:category;type:varchar(64);index;not null" json:"category"`
	Unit     Unit            `gorm:"column:unit;type:varchar(16);not null" json:"unit"`
	HSN      string          `gorm:"column:hsn;type:varchar(8);not null" json:"hsn"`
	GSTRate  int             `gorm:"column:gst_rate;not null" json:"gst_rate"`
	Price    decimal.Decimal `gorm:"column:price;type:decimal(20,2);not null" json:"price"`
	Stock    int             `gorm:"column:stock;not null;default:0" json:"stock"`
}

func (Product) TableName() string { return "products" }

// NewProduct 创建商品，HSN 与税率由类目推导
func NewProduct(sku, name string, category Category, unit Unit, price decimal.Decimal, stock int) (*Product, error) {
	rate, err := category.GSTRate()
	if err != nil {
		return nil, err
	}
	hsn, err := category.HSN()
	if err != nil {
		return nil, err
	}
	return &Product{
		SKU:      sku,
		Name:     name,
		Category: category,
		Unit:     unit,
		HSN:      hsn,
		GSTRate:  rate,
		Price:    price,
		Stock:    stock,
	}, nil
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// 保存商品，SKU 冲突返回 ErrDuplicateSKU
	Save(ctx context.Context, product *Product) error
	// 按 SKU 查询商品
	GetBySKU(ctx context.Context, sku string) (*Product, error)
	// 按类目列出商品
	ListByCategory(ctx context.Context, category Category) ([]*Product, error)
	// 列出全部商品
	List(ctx context.Context) ([]*Product, error)
	// 商品总数
	Count(ctx context.Context) (int64, error)
	// 低库存商品数
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}
