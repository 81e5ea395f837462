// Package order aggregates line items and prices them with the pricing engine.
//
// An Order has a single logical owner; it carries no locking.
package order

import (
	"github.com/google/uuid"

	"github.com/noah-isme/toko-pricing/internal/common"
	"github.com/noah-isme/toko-pricing/internal/money"
	"github.com/noah-isme/toko-pricing/internal/pricing"
)

// Item describes a line item: what is bought, at what unit price, how many.
type Item struct {
	SKU       string      `json:"sku" validate:"required"`
	UnitPrice money.Money `json:"unitPrice" validate:"gt=0"`
	Quantity  int         `json:"quantity" validate:"gt=0"`
}

// LineTotal returns UnitPrice * Quantity without rounding.
func (it Item) LineTotal() (money.Money, error) {
	return it.UnitPrice.Times(it.Quantity)
}

// Order holds line items in insertion order. Items are only ever appended.
type Order struct {
	id    uuid.UUID
	items []Item
}

// New returns an empty order with a random identifier.
func New() *Order {
	return &Order{id: uuid.New()}
}

// NewWithID returns an empty order carrying the provided identifier.
func NewWithID(id uuid.UUID) *Order {
	return &Order{id: id}
}

// ID returns the order identifier, uuid.Nil for a zero Order.
func (o *Order) ID() uuid.UUID {
	return o.id
}

// AddItem copies item into the order. Only the quantity is checked here;
// SKU and price are reported later by Validate.
func (o *Order) AddItem(item Item) error {
	if item.Quantity <= 0 {
		return common.InvalidArgument("quantity must be > 0, got %d", item.Quantity)
	}
	o.items = append(o.items, item)
	return nil
}

// ItemsCount returns the number of items added, valid or not.
func (o *Order) ItemsCount() int {
	return len(o.items)
}

// Items returns a copy of the line items in insertion order.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Subtotal sums every line total in insertion order. Zero for an empty order.
func (o *Order) Subtotal() money.Money {
	var sum money.Money
	for _, it := range o.items {
		line, err := it.LineTotal()
		if err != nil {
			// AddItem admits positive quantities only.
			panic(err)
		}
		sum.AddAssign(line)
	}
	return sum
}

// TotalWithDiscount applies discountPercent to the subtotal.
func (o *Order) TotalWithDiscount(discountPercent int) (money.Money, error) {
	return pricing.ApplyDiscount(o.Subtotal(), discountPercent)
}

// TotalWithDiscountAndVAT discounts the subtotal, then charges VAT on the
// discounted amount.
func (o *Order) TotalWithDiscountAndVAT(discountPercent, vatPercent int) (money.Money, error) {
	discounted, err := o.TotalWithDiscount(discountPercent)
	if err != nil {
		return money.Money{}, err
	}
	return pricing.ApplyVAT(discounted, vatPercent)
}

// Quote returns the full pricing breakdown for the order.
func (o *Order) Quote(discountPercent, vatPercent int) (pricing.Summary, error) {
	return pricing.Summarize(o.Subtotal(), discountPercent, vatPercent)
}

// IsValid reports whether the order is ready for fulfillment: at least one
// item, and every item has a SKU, a positive quantity and a positive price.
func (o *Order) IsValid() bool {
	return o.Validate() == nil
}
