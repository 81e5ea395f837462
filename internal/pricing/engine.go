package pricing

import (
	"math/bits"

	"github.com/noah-isme/toko-pricing/internal/common"
	"github.com/noah-isme/toko-pricing/internal/money"
)

const (
	// MinPercent is the smallest accepted discount or VAT percentage.
	MinPercent = 0
	// MaxPercent is the largest accepted discount or VAT percentage. VAT shares
	// the discount bound; it is an input check, not a tax rule.
	MaxPercent = 100
)

// Summary aggregates computed pricing components.
type Summary struct {
	Subtotal   money.Money `json:"subtotal"`
	Discount   money.Money `json:"discount"`
	Discounted money.Money `json:"discounted"`
	VAT        money.Money `json:"vat"`
	Total      money.Money `json:"total"`
}

// ValidatePercent fails with an InvalidArgument error unless 0 <= p <= 100.
func ValidatePercent(name string, p int) error {
	if p < MinPercent || p > MaxPercent {
		return common.InvalidArgument("%s must be between %d and %d, got %d", name, MinPercent, MaxPercent, p)
	}
	return nil
}

// percentOf returns floor(m*p/100) for 0 <= p <= 100. The product is taken
// in 128 bits, so any valid amount is safe and the result never exceeds m.
func percentOf(m money.Money, p int) money.Money {
	hi, lo := bits.Mul64(uint64(m.Cents()), uint64(p))
	q, _ := bits.Div64(hi, lo, 100)
	return money.MustNew(int64(q))
}

// DiscountAmount returns floor(original * discountPercent / 100).
func DiscountAmount(original money.Money, discountPercent int) (money.Money, error) {
	if err := ValidatePercent("discountPercent", discountPercent); err != nil {
		return money.Money{}, err
	}
	return percentOf(original, discountPercent), nil
}

// VATAmount returns floor(original * vatPercent / 100).
func VATAmount(original money.Money, vatPercent int) (money.Money, error) {
	if err := ValidatePercent("vatPercent", vatPercent); err != nil {
		return money.Money{}, err
	}
	return percentOf(original, vatPercent), nil
}

// ApplyDiscount subtracts the truncated discount from original.
func ApplyDiscount(original money.Money, discountPercent int) (money.Money, error) {
	discount, err := DiscountAmount(original, discountPercent)
	if err != nil {
		return money.Money{}, err
	}
	return original.Sub(discount)
}

// ApplyVAT adds the truncated VAT to original.
func ApplyVAT(original money.Money, vatPercent int) (money.Money, error) {
	vat, err := VATAmount(original, vatPercent)
	if err != nil {
		return money.Money{}, err
	}
	return original.Add(vat), nil
}

// Summarize applies the discount to subtotal first and charges VAT on the
// discounted amount. The discount percentage is checked before the VAT one.
func Summarize(subtotal money.Money, discountPercent, vatPercent int) (Summary, error) {
	discount, err := DiscountAmount(subtotal, discountPercent)
	if err != nil {
		return Summary{}, err
	}
	discounted, err := subtotal.Sub(discount)
	if err != nil {
		return Summary{}, err
	}
	vat, err := VATAmount(discounted, vatPercent)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Subtotal:   subtotal,
		Discount:   discount,
		Discounted: discounted,
		VAT:        vat,
		Total:      discounted.Add(vat),
	}, nil
}
