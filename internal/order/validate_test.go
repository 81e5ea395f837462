package order_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-pricing/internal/common"
	"github.com/noah-isme/toko-pricing/internal/money"
	"github.com/noah-isme/toko-pricing/internal/order"
)

func TestEmptyOrderIsNotValid(t *testing.T) {
	o := order.New()
	require.False(t, o.IsValid())
	require.ErrorIs(t, o.Validate(), order.ErrEmptyOrder)
}

func TestIsValid(t *testing.T) {
	cases := []struct {
		name  string
		items []order.Item
		valid bool
	}{
		{"single good item", []order.Item{{SKU: "X", UnitPrice: money.MustNew(1), Quantity: 1}}, true},
		{"empty sku", []order.Item{{SKU: "", UnitPrice: money.MustNew(100), Quantity: 1}}, false},
		{"zero price", []order.Item{{SKU: "X", UnitPrice: money.Zero, Quantity: 1}}, false},
		{"one bad among good", []order.Item{
			{SKU: "A", UnitPrice: money.MustNew(100), Quantity: 1},
			{SKU: "B", UnitPrice: money.Zero, Quantity: 2},
		}, false},
		{"all good", []order.Item{
			{SKU: "A", UnitPrice: money.MustNew(100), Quantity: 1},
			{SKU: "B", UnitPrice: money.MustNew(5), Quantity: 9},
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := order.New()
			for _, it := range tc.items {
				require.NoError(t, o.AddItem(it))
			}
			require.Equal(t, tc.valid, o.IsValid())
			require.Equal(t, tc.valid, o.Validate() == nil)
		})
	}
}

func TestValidateReportsEveryOffendingItem(t *testing.T) {
	o := order.New()
	require.NoError(t, o.AddItem(order.Item{SKU: "", UnitPrice: money.MustNew(100), Quantity: 1}))
	require.NoError(t, o.AddItem(order.Item{SKU: "OK", UnitPrice: money.MustNew(100), Quantity: 1}))
	require.NoError(t, o.AddItem(order.Item{SKU: "FREE", UnitPrice: money.Zero, Quantity: 1}))

	err := o.Validate()
	require.ErrorIs(t, err, order.ErrInvalidOrder)
	require.False(t, common.IsInvalidArgument(err))
	require.Contains(t, err.Error(), `item 0 (sku ""): sku failed "required"`)
	require.Contains(t, err.Error(), `item 2 (sku "FREE"): unitPrice failed "gt"`)
	require.NotContains(t, err.Error(), "item 1")

	var itemErr *order.ItemError
	require.True(t, errors.As(err, &itemErr))
	require.Equal(t, 0, itemErr.Index)
	require.Len(t, itemErr.Fields, 1)
	require.Equal(t, "sku", itemErr.Fields[0].Field())
}

func TestValidateHasNoSideEffects(t *testing.T) {
	o := order.New()
	require.NoError(t, o.AddItem(order.Item{SKU: "X", UnitPrice: money.Zero, Quantity: 1}))
	require.False(t, o.IsValid())
	require.False(t, o.IsValid())
	require.Equal(t, 1, o.ItemsCount())
	require.True(t, o.Subtotal().IsZero())
}
