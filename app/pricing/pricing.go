package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vibast-solutions/ms-go-meal-subscriptions/app/entity"
)

var hundred = decimal.NewFromInt(100)

// AdjustedPrice applies a menu discount to its base price, clamped at zero.
// A nil or disabled discount leaves the price unchanged, as does an unknown
// discount type. When enforceValidity is set, a discount outside its
// ValidFrom/ValidUntil window does not apply.
func AdjustedPrice(basePrice decimal.Decimal, discount *entity.Discount, now time.Time, enforceValidity bool) decimal.Decimal {
	if discount == nil || !discount.Enabled {
		return basePrice
	}
	if enforceValidity && !withinValidity(discount, now) {
		return basePrice
	}

	var adjusted decimal.Decimal
	switch discount.Type {
	case entity.DiscountTypeAmount:
		adjusted = basePrice.Sub(discount.Value)
	case entity.DiscountTypePercentage:
		adjusted = basePrice.Sub(basePrice.Mul(discount.Value).Div(hundred))
	default:
		return basePrice
	}

	if adjusted.IsNegative() {
		return decimal.Zero
	}
	return adjusted
}

// PaymentAmount is the total for a subscription: one adjusted price per
// scheduled delivery.
func PaymentAmount(numberOfOrders int, adjustedPrice decimal.Decimal) decimal.Decimal {
	return adjustedPrice.Mul(decimal.NewFromInt(int64(numberOfOrders)))
}

func withinValidity(discount *entity.Discount, now time.Time) bool {
	if discount.ValidFrom != nil && now.Before(*discount.ValidFrom) {
		return false
	}
	if discount.ValidUntil != nil && now.After(*discount.ValidUntil) {
		return false
	}
	return true
}
