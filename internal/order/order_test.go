package order_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/toko-pricing/internal/common"
	"github.com/noah-isme/toko-pricing/internal/money"
	"github.com/noah-isme/toko-pricing/internal/order"
)

func sampleOrder(t *testing.T) *order.Order {
	t.Helper()
	o := order.New()
	require.NoError(t, o.AddItem(order.Item{SKU: "SKU-1", UnitPrice: money.MustNew(10000), Quantity: 2}))
	require.NoError(t, o.AddItem(order.Item{SKU: "SKU-2", UnitPrice: money.MustNew(500), Quantity: 5}))
	return o
}

func TestNewOrderIsEmpty(t *testing.T) {
	o := order.New()
	require.Equal(t, 0, o.ItemsCount())
	require.True(t, o.Subtotal().IsZero())
	require.NotEqual(t, uuid.Nil, o.ID())
}

func TestZeroOrderIsUsable(t *testing.T) {
	var o order.Order
	require.Equal(t, uuid.Nil, o.ID())
	require.NoError(t, o.AddItem(order.Item{SKU: "X", UnitPrice: money.MustNew(1), Quantity: 1}))
	require.Equal(t, 1, o.ItemsCount())
}

func TestAddItemIncreasesCount(t *testing.T) {
	o := order.New()
	require.NoError(t, o.AddItem(order.Item{SKU: "A", UnitPrice: money.MustNew(100), Quantity: 1}))
	require.Equal(t, 1, o.ItemsCount())
	require.NoError(t, o.AddItem(order.Item{SKU: "B", UnitPrice: money.MustNew(200), Quantity: 3}))
	require.Equal(t, 2, o.ItemsCount())
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	o := sampleOrder(t)
	for _, qty := range []int{0, -1, -10} {
		err := o.AddItem(order.Item{SKU: "BAD", UnitPrice: money.MustNew(100), Quantity: qty})
		require.ErrorIs(t, err, common.ErrInvalidArgument)
		require.Equal(t, 2, o.ItemsCount())
	}
}

func TestAddItemDefersSKUAndPriceChecks(t *testing.T) {
	o := order.New()
	require.NoError(t, o.AddItem(order.Item{SKU: "", UnitPrice: money.Zero, Quantity: 1}))
	require.Equal(t, 1, o.ItemsCount())
	require.False(t, o.IsValid())
}

func TestItemsReturnsCopy(t *testing.T) {
	o := sampleOrder(t)
	items := o.Items()
	items[0].SKU = "CHANGED"
	require.Equal(t, "SKU-1", o.Items()[0].SKU)
}

func TestItemIsCopiedIn(t *testing.T) {
	o := order.New()
	item := order.Item{SKU: "A", UnitPrice: money.MustNew(100), Quantity: 1}
	require.NoError(t, o.AddItem(item))
	item.Quantity = 50
	require.Equal(t, int64(100), o.Subtotal().Cents())
}

func TestSubtotal(t *testing.T) {
	require.Equal(t, int64(22500), sampleOrder(t).Subtotal().Cents())
}

func TestTotalWithDiscount(t *testing.T) {
	total, err := sampleOrder(t).TotalWithDiscount(10)
	require.NoError(t, err)
	require.Equal(t, int64(20250), total.Cents())
}

func TestTotalWithDiscountAndVAT(t *testing.T) {
	total, err := sampleOrder(t).TotalWithDiscountAndVAT(10, 20)
	require.NoError(t, err)
	require.Equal(t, int64(24300), total.Cents())
}

func TestTotalsRejectOutOfRangePercent(t *testing.T) {
	o := sampleOrder(t)

	_, err := o.TotalWithDiscount(101)
	require.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = o.TotalWithDiscountAndVAT(-1, 20)
	require.ErrorIs(t, err, common.ErrInvalidArgument)
	require.Contains(t, err.Error(), "discountPercent")

	_, err = o.TotalWithDiscountAndVAT(10, 101)
	require.ErrorIs(t, err, common.ErrInvalidArgument)
	require.Contains(t, err.Error(), "vatPercent")

	_, err = o.TotalWithDiscountAndVAT(-1, 101)
	require.Contains(t, err.Error(), "discountPercent")
}

func TestZeroPercentsReturnSubtotal(t *testing.T) {
	o := sampleOrder(t)
	total, err := o.TotalWithDiscountAndVAT(0, 0)
	require.NoError(t, err)
	require.True(t, total.Equal(o.Subtotal()))
}

func TestQuote(t *testing.T) {
	s, err := sampleOrder(t).Quote(10, 20)
	require.NoError(t, err)
	require.Equal(t, int64(22500), s.Subtotal.Cents())
	require.Equal(t, int64(2250), s.Discount.Cents())
	require.Equal(t, int64(20250), s.Discounted.Cents())
	require.Equal(t, int64(4050), s.VAT.Cents())
	require.Equal(t, int64(24300), s.Total.Cents())
}

func TestTotalsOnEmptyOrder(t *testing.T) {
	total, err := order.New().TotalWithDiscountAndVAT(50, 20)
	require.NoError(t, err)
	require.True(t, total.IsZero())
}
