package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

func TestAddKeepsOneLinePerMedicine(t *testing.T) {
	cart, err := New("session-1")
	require.NoError(t, err)

	added, err := cart.Add(Line{MedicineID: "mdc-1", Name: "Paracetamol", Price: 2}, now)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 1, cart.Lines[0].Quantity)

	added, err = cart.Add(Line{MedicineID: "mdc-1", Name: "Paracetamol", Price: 2, Quantity: 4}, now)
	require.NoError(t, err)
	assert.False(t, added)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 1, cart.Lines[0].Quantity)
}

func TestAddValidatesLine(t *testing.T) {
	cart, _ := New("c")
	cases := map[string]struct {
		line Line
		err  error
	}{
		"missing id":     {Line{Name: "x"}, ErrMissingMedicineID},
		"missing name":   {Line{MedicineID: "m"}, ErrMissingItemName},
		"negative price": {Line{MedicineID: "m", Name: "x", Price: -1}, ErrNegativePrice},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := cart.Add(tc.line, now)
			assert.ErrorIs(t, err, tc.err)
		})
	}
	assert.True(t, cart.IsEmpty())
}

func TestSetQuantity(t *testing.T) {
	cart, _ := New("c")
	_, _ = cart.Add(Line{MedicineID: "a", Name: "A", Price: 3}, now)
	_, _ = cart.Add(Line{MedicineID: "b", Name: "B", Price: 5}, now)

	require.NoError(t, cart.SetQuantity("a", 3, now))
	assert.Equal(t, 4, cart.ItemCount())
	assert.Equal(t, 14.0, cart.Subtotal())

	require.NoError(t, cart.SetQuantity("a", 0, now))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "b", cart.Lines[0].MedicineID)

	require.NoError(t, cart.SetQuantity("b", -2, now))
	assert.True(t, cart.IsEmpty())

	assert.ErrorIs(t, cart.SetQuantity("zzz", 1, now), ErrLineNotFound)
}

func TestRemoveAndClear(t *testing.T) {
	cart, _ := New("c")
	_, _ = cart.Add(Line{MedicineID: "a", Name: "A"}, now)
	_, _ = cart.Add(Line{MedicineID: "b", Name: "B"}, now)

	assert.True(t, cart.Remove("a", now))
	assert.False(t, cart.Remove("a", now))
	cart.Clear(now)
	assert.True(t, cart.IsEmpty())
}

func TestNewRequiresID(t *testing.T) {
	_, err := New("  ")
	assert.ErrorIs(t, err, ErrMissingCartID)
}
