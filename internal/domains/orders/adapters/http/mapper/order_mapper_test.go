package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

func TestFromProjectionSplitsTax(t *testing.T) {
	order, err := domain.NewOrder("ORD-1-abcde",
		domain.Customer{Name: "Kiran"},
		[]domain.LineItem{{MedicineID: "mdc-1", Name: "Zinc", Quantity: 4, Price: 2.5}},
		domain.Shipping{Address: "3 Hill Street, Shimla", MobileNumber: "9000000001"},
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	out := FromProjection(projection.New(order, order.OrderDate, order.OrderDate))
	assert.Equal(t, 10.5, out.Total)
	assert.Equal(t, 0.5, out.Tax)
	assert.InDelta(t, 10.0, out.Subtotal, 1e-9)
	assert.Equal(t, "Pending", out.Status)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Zinc", out.Items[0].Name)
}

func TestToCreateInputCarriesCallerAndKey(t *testing.T) {
	input := ToCreateInput(CreateOrder{
		CustomerName: "Kiran",
		Items:        []LineItem{{MedicineID: "mdc-1", Name: "Zinc", Quantity: 1, Price: 2}},
	}, "usr-9", "key-1")
	assert.Equal(t, "usr-9", input.CustomerID)
	assert.Equal(t, "key-1", input.IdempotencyKey)
	require.Len(t, input.Items, 1)
	assert.Equal(t, "mdc-1", input.Items[0].MedicineID)
}
