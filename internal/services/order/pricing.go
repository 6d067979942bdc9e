package order

import (
	"strings"

	"github.com/shopspring/decimal"

	"hospital-meals/internal/catalog"
)

const bulkDiscountThreshold = 10

var (
	referralDiscountRate = decimal.New(10, -2) // 10%
	bulkDiscountRate     = decimal.New(5, -2)  // 5%
)

// Totals holds the derived amounts for the current cart
type Totals struct {
	BaseTotal       decimal.Decimal
	SavedAmount     decimal.Decimal
	Subtotal        decimal.Decimal
	TotalQuantity   int
	ReferralApplied bool
	BulkApplied     bool
}

// computeTotals derives the order amounts from the cart, catalog prices
// and referral code. Only positive-quantity lines with a known menu item
// count; unknown cart keys are inert. Discount rates are additive: a
// matching referral code takes 10% off the base and a
// strictly-more-than-10 item cart another 5%.
func computeTotals(cat *catalog.Catalog, cart map[string]int, referralCode string) Totals {
	totals := Totals{
		BaseTotal:   decimal.Zero,
		SavedAmount: decimal.Zero,
		Subtotal:    decimal.Zero,
	}

	for itemID, quantity := range cart {
		if quantity <= 0 {
			continue
		}
		item, ok := cat.Get(itemID)
		if !ok {
			continue
		}
		totals.BaseTotal = totals.BaseTotal.Add(item.Price.Mul(decimal.NewFromInt(int64(quantity))))
		totals.TotalQuantity += quantity
	}

	rate := decimal.Zero

	// Case-insensitive comparison, no whitespace trimming
	if strings.ToUpper(referralCode) == catalog.ValidReferralCode {
		rate = rate.Add(referralDiscountRate)
		totals.ReferralApplied = true
	}

	if totals.TotalQuantity > bulkDiscountThreshold {
		rate = rate.Add(bulkDiscountRate)
		totals.BulkApplied = true
	}

	totals.SavedAmount = totals.BaseTotal.Mul(rate)
	totals.Subtotal = totals.BaseTotal.Sub(totals.SavedAmount)
	return totals
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
