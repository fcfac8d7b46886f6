// Package domain 包含商品目录的领域模型
package domain

import (
	"errors"
	"fmt"
)

// Category 商品类目，固定枚举，顺序敏感（HSN 推导依赖类目位置）
type Category string

const (
	CategoryFreshProduce    Category = "Fresh Produce"
	CategoryDairyEggs       Category = "Dairy & Eggs"
	CategoryBreadsBuns      Category = "Breads & Buns"
	CategoryPastriesCakes   Category = "Pastries, Cakes & Desserts"
	CategoryBeverages       Category = "Beverages"
	CategorySnacks          Category = "Snacks & Packaged Foods"
	CategoryFrozenFoods     Category = "Frozen Foods"
	CategoryPulsesRice      Category = "Pulses, Rice & Grains"
	CategoryOilsMasalas     Category = "Oils & Masalas"
	CategoryPersonalCare    Category = "Personal Care"
	CategoryHousehold       Category = "Household Essentials"
	CategoryStationery      Category = "Stationery & Office Supplies"
	CategoryBabyCare        Category = "Baby Care"
	CategoryPetSupplies     Category = "Pet Supplies"
	CategoryElectronics     Category = "Electronics & Accessories"
	CategoryHomeAppliances  Category = "Home Appliances"
	CategoryFurnitureDecor  Category = "Furniture & Home Décor"
	CategoryGardening       Category = "Gardening & Outdoor"
	CategoryAutomotive      Category = "Automotive & Tools"
	CategoryHealthWellness  Category = "Health & Wellness"
	CategorySportsFitness   Category = "Sports & Fitness"
	CategoryHomeSafety      Category = "Home Safety & Security Systems"
	CategoryChocolate       Category = "Chocolate"
)

// categories 类目枚举表，顺序不可变更：发票上的 HSN 由位置推导
var categories = []Category{
	CategoryFreshProduce, CategoryDairyEggs, CategoryBreadsBuns, CategoryPastriesCakes,
	CategoryBeverages, CategorySnacks, CategoryFrozenFoods, CategoryPulsesRice,
	CategoryOilsMasalas, CategoryPersonalCare, CategoryHousehold, CategoryStationery,
	CategoryBabyCare, CategoryPetSupplies, CategoryElectronics, CategoryHomeAppliances,
	CategoryFurnitureDecor, CategoryGardening, CategoryAutomotive, CategoryHealthWellness,
	CategorySportsFitness, CategoryHomeSafety, CategoryChocolate,
}

// gstRates 类目税率表（百分比）
var gstRates = map[Category]int{
	CategoryFreshProduce: 0, CategoryDairyEggs: 5, CategoryBreadsBuns: 5, CategoryPastriesCakes: 18,
	CategoryBeverages: 12, CategorySnacks: 12, CategoryFrozenFoods: 12, CategoryPulsesRice: 0,
	CategoryOilsMasalas: 5, CategoryPersonalCare: 18, CategoryHousehold: 18, CategoryStationery: 12,
	CategoryBabyCare: 12, CategoryPetSupplies: 12, CategoryElectronics: 18, CategoryHomeAppliances: 18,
	CategoryFurnitureDecor: 18, CategoryGardening: 12, CategoryAutomotive: 18, CategoryHealthWellness: 12,
	CategorySportsFitness: 18, CategoryHomeSafety: 18, CategoryChocolate: 18,
}

// ErrUnknownCategory 未识别的类目属于配置错误，应在启动期失败
var ErrUnknownCategory = errors.New("unknown category")

// Categories 返回有序类目列表
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid 类目是否在枚举表内
func (c Category) Valid() bool {
	_, ok := gstRates[c]
	return ok
}

// GSTRate 返回类目税率（百分比）
func (c Category) GSTRate() (int, error) {
	rate, ok := gstRates[c]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return rate, nil
}

// HSN 由类目在枚举表中的位置推导定宽编码：1000 + 序号（从 1 起），补零到 4 位。
// 推导规则与既有发票保持逐字节兼容，不得变更。
func (c Category) HSN() (string, error) {
	for i, cat := range categories {
		if cat == c {
			return fmt.Sprintf("%04d", 1000+i+1), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
}

// ValidateEnumeration 校验类目表与税率表的一致性，构造目录时调用，失败视为致命配置错误
func ValidateEnumeration() error {
	if len(categories) != len(gstRates) {
		return fmt.Errorf("%w: category list and rate table disagree", ErrUnknownCategory)
	}
	for _, cat := range categories {
		if _, ok := gstRates[cat]; !ok {
			return fmt.Errorf("%w: %q has no GST rate", ErrUnknownCategory, string(cat))
		}
	}
	return nil
}
