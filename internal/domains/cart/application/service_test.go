package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/adapters/memory"
	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/cart/application/types"
	ordersmemory "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application"
	orderstypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
	ordersports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
)

type shelf map[string]ordersports.ProductSnapshot

func (s shelf) Lookup(_ context.Context, id string) (*ordersports.ProductSnapshot, error) {
	snapshot, ok := s[id]
	if !ok {
		return nil, ordersports.ErrUnknownMedicine
	}
	if snapshot.Price < 0 {
		return nil, ordersports.ErrMedicineNotOrderable
	}
	return &snapshot, nil
}

type failingPlacer struct{}

func (failingPlacer) Create(context.Context, orderstypes.CreateOrderInput) (*orderstypes.OrderProjection, error) {
	return nil, errors.New("orders offline")
}

func newCartService(t *testing.T) (*Service, *ordersapp.Service) {
	t.Helper()
	orders := ordersapp.NewService(ordersmemory.NewRepository())
	return NewService(memory.NewRepository(), WithOrderPlacer(orders)), orders
}

func TestAddItemDuplicateIsNoOpWithNotice(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()

	first, err := svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "mdc-1", Name: "Ibuprofen", Price: 4})
	require.NoError(t, err)
	assert.Equal(t, "Added to Cart", first.Notice.Title)

	second, err := svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "mdc-1", Name: "Ibuprofen", Price: 4, Quantity: 3})
	require.NoError(t, err)
	require.NotNil(t, second.Notice)
	assert.Equal(t, "Item already in cart", second.Notice.Title)
	assert.Equal(t, "Ibuprofen is already in your cart. You can change the quantity there.", second.Notice.Description)

	view, err := svc.Get(ctx, types.CartIdentifier{CartID: "s1"})
	require.NoError(t, err)
	require.Len(t, view.Cart.Lines, 1)
	assert.Equal(t, 1, view.Cart.Lines[0].Quantity)
}

func TestAddItemUsesCatalogSnapshot(t *testing.T) {
	svc := NewService(memory.NewRepository(), WithCatalog(shelf{
		"mdc-1": {MedicineID: "mdc-1", Name: "Ibuprofen 400mg", Price: 6},
		"mdc-2": {MedicineID: "mdc-2", Name: "Unlisted", Price: -1},
	}))
	ctx := context.Background()

	result, err := svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "mdc-1", Name: "Anything", Price: 0.01, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofen 400mg has been added to your cart.", result.Notice.Description)
	require.Len(t, result.View.Cart.Lines, 1)
	assert.Equal(t, 6.0, result.View.Cart.Lines[0].Price)
	assert.Equal(t, 12.0, result.View.Subtotal)

	_, err = svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "mdc-404", Quantity: 1})
	assert.ErrorIs(t, err, ordersports.ErrUnknownMedicine)

	_, err = svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "mdc-2", Quantity: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "mdc-1", Name: "Ibuprofen", Price: 4})
	require.NoError(t, err)

	result, err := svc.UpdateQuantity(ctx, types.UpdateQuantityInput{CartID: "s1", MedicineID: "mdc-1", Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, result.View.Cart.Lines)

	_, err = svc.UpdateQuantity(ctx, types.UpdateQuantityInput{CartID: "s1", MedicineID: "mdc-1", Quantity: 2})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetWithoutCartIsEmpty(t *testing.T) {
	svc, _ := newCartService(t)
	view, err := svc.Get(context.Background(), types.CartIdentifier{CartID: "fresh"})
	require.NoError(t, err)
	assert.Empty(t, view.Cart.Lines)
	assert.Zero(t, view.Total)

	_, err = svc.Get(context.Background(), types.CartIdentifier{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCartTotalsIncludeTax(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "a", Name: "A", Price: 10, Quantity: 2})
	require.NoError(t, err)
	result, err := svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "b", Name: "B", Price: 5})
	require.NoError(t, err)

	assert.Equal(t, 25.0, result.View.Subtotal)
	assert.Equal(t, 1.25, result.View.Tax)
	assert.Equal(t, 26.25, result.View.Total)
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	svc, orders := newCartService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "a", Name: "A", Price: 10, Quantity: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "b", Name: "B", Price: 5})
	require.NoError(t, err)

	result, err := svc.Checkout(ctx, types.CheckoutInput{
		CartID:          "s1",
		ShippingAddress: "42 Ring Road, Delhi",
		MobileNumber:    "9999988888",
	})
	require.NoError(t, err)
	assert.Equal(t, 26.25, result.Order.Entity.Total)
	assert.Equal(t, GuestCustomerName, result.Order.Entity.CustomerName)
	assert.Equal(t, "Order Placed!", result.Notice.Title)

	view, err := svc.Get(ctx, types.CartIdentifier{CartID: "s1"})
	require.NoError(t, err)
	assert.Empty(t, view.Cart.Lines)

	list, err := orders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newCartService(t)
	_, err := svc.Checkout(context.Background(), types.CheckoutInput{CartID: "s1"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckoutKeepsCartWhenOrderFails(t *testing.T) {
	svc := NewService(memory.NewRepository(), WithOrderPlacer(failingPlacer{}))
	ctx := context.Background()
	_, err := svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "a", Name: "A", Price: 1})
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, types.CheckoutInput{CartID: "s1", ShippingAddress: "42 Ring Road, Delhi", MobileNumber: "9999988888"})
	require.Error(t, err)

	view, err := svc.Get(ctx, types.CartIdentifier{CartID: "s1"})
	require.NoError(t, err)
	assert.Len(t, view.Cart.Lines, 1)
}

func TestCheckoutPropagatesInvalidShipping(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "a", Name: "A", Price: 1})
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, types.CheckoutInput{CartID: "s1", ShippingAddress: "short", MobileNumber: "9999988888"})
	assert.ErrorIs(t, err, ordersapp.ErrInvalidInput)
}

func TestRemoveAndClear(t *testing.T) {
	svc, _ := newCartService(t)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "a", Name: "A", Price: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, types.AddItemInput{CartID: "s1", MedicineID: "b", Name: "B", Price: 1})
	require.NoError(t, err)

	result, err := svc.RemoveItem(ctx, types.RemoveItemInput{CartID: "s1", MedicineID: "a"})
	require.NoError(t, err)
	require.Len(t, result.View.Cart.Lines, 1)

	require.NoError(t, svc.Clear(ctx, types.CartIdentifier{CartID: "s1"}))
	view, err := svc.Get(ctx, types.CartIdentifier{CartID: "s1"})
	require.NoError(t, err)
	assert.Empty(t, view.Cart.Lines)
}
