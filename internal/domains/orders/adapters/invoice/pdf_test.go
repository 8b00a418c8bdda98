package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
)

func TestRenderProducesPDF(t *testing.T) {
	order, err := domain.NewOrder("ORD-1700000000000-ab12c",
		domain.Customer{Name: "Ravi Kumar"},
		[]domain.LineItem{
			{MedicineID: "mdc-1", Name: "Amoxicillin 500mg", Quantity: 2, Price: 10},
			{MedicineID: "mdc-2", Name: "Cetirizine", Quantity: 1, Price: 5},
		},
		domain.Shipping{Address: "221B Residency Road, Bengaluru", MobileNumber: "9876543210"},
		time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	renderer := NewPDFRenderer("", "https://pharmatrack.example")
	content, err := renderer.Render(order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", renderer.ContentType())
	assert.Equal(t, "https://pharmatrack.example/orders/ORD-1700000000000-ab12c", renderer.OrderURL(order.ID))
}

func TestRenderRejectsNilOrder(t *testing.T) {
	_, err := NewPDFRenderer("Store", "").Render(nil)
	assert.Error(t, err)
}
