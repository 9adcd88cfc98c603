package browse

import (
	"github.com/shopspring/decimal"

	"github.com/feastlane/feastlane/internal/domain"
)

// TotalPrice is the displayed total for a menu at the given guest count:
// price_per_person * guests, floored at min_spend.
func TotalPrice(menu domain.SetMenu, guests int) decimal.Decimal {
	if guests < 1 {
		guests = 1
	}
	total := menu.PricePerPerson.Mul(decimal.NewFromInt(int64(guests)))
	if total.LessThan(menu.MinSpend) {
		return menu.MinSpend
	}
	return total
}
