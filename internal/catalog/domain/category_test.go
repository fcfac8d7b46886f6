package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoriesEnumeration(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 23)
	assert.Equal(t, CategoryFreshProduce, cats[0])
	assert.Equal(t, CategoryChocolate, cats[len(cats)-1])
	require.NoError(t, ValidateEnumeration())
}

func TestHSNDerivation(t *testing.T) {
	hsn, err := CategoryFreshProduce.HSN()
	require.NoError(t, err)
	assert.Equal(t, "1001", hsn)

	hsn, err = CategoryDairyEggs.HSN()
	require.NoError(t, err)
	assert.Equal(t, "1002", hsn)

	hsn, err = CategoryChocolate.HSN()
	require.NoError(t, err)
	assert.Equal(t, "1023", hsn)

	_, err = Category("Nonsense").HSN()
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestGSTRates(t *testing.T) {
	cases := map[Category]int{
		CategoryFreshProduce: 0,
		CategoryPulsesRice:   0,
		CategoryDairyEggs:    5,
		CategoryBeverages:    12,
		CategoryChocolate:    18,
	}
	for cat, want := range cases {
		rate, err := cat.GSTRate()
		require.NoError(t, err)
		assert.Equal(t, want, rate, "category %s", cat)
	}

	_, err := Category("Nonsense").GSTRate()
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.False(t, Category("Nonsense").Valid())
	assert.True(t, CategoryChocolate.Valid())
}

func TestNewProductDerivesHSNAndRate(t *testing.T) {
	p, err := NewProduct("CHC0001", "ChocolateVar 1", CategoryChocolate, UnitPiece, decimal.NewFromInt(1), 10)
	require.NoError(t, err)
	assert.Equal(t, "1023", p.HSN)
	assert.Equal(t, 18, p.GSTRate)

	_, err = NewProduct("X", "X", Category("Nonsense"), UnitPiece, decimal.NewFromInt(1), 0)
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
