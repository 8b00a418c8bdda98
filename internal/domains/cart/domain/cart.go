package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingCartID     = errors.New("cart id is required")
	ErrMissingMedicineID = errors.New("cart item medicine id is required")
	ErrMissingItemName   = errors.New("cart item name is required")
	ErrNegativePrice     = errors.New("cart item price must be greater or equal to zero")
	ErrLineNotFound      = errors.New("item is not in the cart")
	ErrEmptyCart         = errors.New("cart is empty")
)

// Line is a medicine snapshot waiting for checkout. Quantity is always at least 1.
type Line struct {
	MedicineID string
	Name       string
	Price      float64
	Quantity   int
}

// Cart holds at most one line per medicine id.
type Cart struct {
	ID        string
	Lines     []Line
	UpdatedAt time.Time
}

// New returns an empty cart.
func New(id string) (*Cart, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingCartID
	}
	return &Cart{ID: id, Lines: []Line{}}, nil
}

// Add appends the line unless the medicine is already present, in which case the cart is untouched
// and false is returned. A non-positive quantity defaults to 1.
func (c *Cart) Add(line Line, now time.Time) (bool, error) {
	line.MedicineID = strings.TrimSpace(line.MedicineID)
	line.Name = strings.TrimSpace(line.Name)
	switch {
	case line.MedicineID == "":
		return false, ErrMissingMedicineID
	case line.Name == "":
		return false, ErrMissingItemName
	case line.Price < 0:
		return false, ErrNegativePrice
	}
	if c.indexOf(line.MedicineID) >= 0 {
		return false, nil
	}
	if line.Quantity <= 0 {
		line.Quantity = 1
	}
	c.Lines = append(c.Lines, line)
	c.UpdatedAt = now
	return true, nil
}

// SetQuantity changes a line's quantity; zero or less removes it.
func (c *Cart) SetQuantity(medicineID string, quantity int, now time.Time) error {
	idx := c.indexOf(medicineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	if quantity <= 0 {
		c.removeAt(idx)
	} else {
		c.Lines[idx].Quantity = quantity
	}
	c.UpdatedAt = now
	return nil
}

// Remove drops the line for medicineID. Removing an absent line is a no-op.
func (c *Cart) Remove(medicineID string, now time.Time) bool {
	idx := c.indexOf(medicineID)
	if idx < 0 {
		return false
	}
	c.removeAt(idx)
	c.UpdatedAt = now
	return true
}

// Clear empties the cart.
func (c *Cart) Clear(now time.Time) {
	c.Lines = []Line{}
	c.UpdatedAt = now
}

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// ItemCount sums the quantities of every line.
func (c *Cart) ItemCount() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the untaxed value of the cart.
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.Lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Lines = append([]Line{}, c.Lines...)
	return &clone
}

func (c *Cart) indexOf(medicineID string) int {
	medicineID = strings.TrimSpace(medicineID)
	for i, l := range c.Lines {
		if l.MedicineID == medicineID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
}
