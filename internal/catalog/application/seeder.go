package application

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/retailpos/internal/catalog/domain"
	"github.com/wyfcoding/retailpos/pkg/logger"
)

// 播种用的名称素材与单位变体
var (
	seedUnits        = []domain.Unit{domain.UnitPiece, domain.UnitKg, domain.UnitLitre, domain.UnitGram}
	seedGramVariants = []int{50, 100, 200, 500}
	seedAdjectives   = []string{"Fresh", "Premium", "Organic", "Pure", "Classic", "Deluxe", "New", "Tasty", "Crunchy", "Smooth"}
	seedWords        = []string{
		"Milk", "Paneer", "White Bread", "Chocolate Cake", "Orange Juice", "Potato Chips",
		"Frozen Peas", "Basmati Rice", "Mustard Oil", "Shampoo", "Dishwash Liquid", "A4 Paper",
		"Baby Diapers", "Dog Food", "USB Cable", "Blender", "Cushion Cover", "Gardening Soil",
		"Car Wax", "Vitamin C", "Yoga Mat", "Door Sensor", "LED Bulb",
	}
)

// chocolateCount 巧克力系列固定 500 个单品，单价 ₹1..₹500
const chocolateCount = 500

// Seeder 启动期目录播种器。商品表条目少于目标值时补齐演示数据。
type Seeder struct {
	repo domain.ProductRepository
	rng  *rand.Rand
}

// NewSeeder 创建播种器，seed 固定时生成可复现
func NewSeeder(repo domain.ProductRepository, seed int64) *Seeder {
	return &Seeder{repo: repo, rng: rand.New(rand.NewSource(seed))}
}

// Seed 播种到目标数量。目标中的 500 个固定留给巧克力系列，
// 其余按类目轮转生成，SKU 从 SKU10000 递增，巧克力使用 CHC0001..CHC0500。
func (s *Seeder) Seed(ctx context.Context, target int) error {
	if target <= 0 {
		return nil
	}
	existing, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if existing >= int64(target) {
		return nil
	}

	general := target - chocolateCount
	if general < 0 {
		general = 0
	}

	sku := 10000
	created := 0
	for created < general {
		for _, cat := range domain.Categories() {
			if cat == domain.CategoryChocolate {
				continue
			}
			if created >= general {
				break
			}
			name := fmt.Sprintf("%s %s", s.pick(seedAdjectives), s.pick(seedWords))
			unit := seedUnits[s.rng.Intn(len(seedUnits))]
			if unit == domain.UnitGram {
				name = fmt.Sprintf("%s %dg", name, seedGramVariants[s.rng.Intn(len(seedGramVariants))])
			}
			price := decimal.NewFromFloat(30 + s.rng.Float64()*(2000-30)).Round(2)
			stock := s.rng.Intn(201)
			p, err := domain.NewProduct(fmt.Sprintf("SKU%d", sku), name, cat, unit, price, stock)
			if err != nil {
				return err
			}
			if err := s.repo.Save(ctx, p); err != nil {
				return err
			}
			sku++
			created++
		}
	}

	for i := 1; i <= chocolateCount; i++ {
		unit := domain.UnitPiece
		name := fmt.Sprintf("ChocolateVar %d", i)
		if i%7 == 0 {
			unit = domain.UnitGram
			name = fmt.Sprintf("%s %dg", name, seedGramVariants[s.rng.Intn(len(seedGramVariants))])
		}
		price := decimal.NewFromInt(int64(i))
		stock := 10 + s.rng.Intn(291)
		p, err := domain.NewProduct(fmt.Sprintf("CHC%04d", i), name, domain.CategoryChocolate, unit, price, stock)
		if err != nil {
			return err
		}
		if err := s.repo.Save(ctx, p); err != nil {
			return err
		}
	}

	logger.Info(ctx, "catalog seeded", "target", target, "general", general, "chocolate", chocolateCount)
	return nil
}

func (s *Seeder) pick(values []string) string {
	return values[s.rng.Intn(len(values))]
}
