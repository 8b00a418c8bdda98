package domain

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"time"
)

// Status enumerates order progression. Any status may follow any other.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// TaxRate is the flat tax applied on top of the line subtotal.
const TaxRate = 0.05

const minShippingAddressLength = 10

var mobilePattern = regexp.MustCompile(`^\d{10}$`)

var (
	ErrNoItems                = errors.New("order must contain at least one item")
	ErrInvalidItemQuantity    = errors.New("item quantity must be at least 1")
	ErrNegativeItemPrice      = errors.New("item price must be greater or equal to zero")
	ErrMissingMedicineID      = errors.New("item medicine id is required")
	ErrMissingItemName        = errors.New("item name is required")
	ErrMissingCustomerName    = errors.New("customer name is required")
	ErrInvalidShippingAddress = errors.New("shipping address must be at least 10 characters")
	ErrInvalidMobileNumber    = errors.New("mobile number must be exactly 10 digits")
	ErrInvalidStatus          = errors.New("order status is invalid")
)

// Statuses lists every known status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.TrimSpace(raw))
	for _, known := range Statuses() {
		if status == known {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// LineItem is a priced snapshot of a medicine at order time.
type LineItem struct {
	MedicineID string
	Name       string
	Quantity   int
	Price      float64
}

// Customer identifies who placed the order. ID is empty for anonymous checkouts.
type Customer struct {
	ID   string
	Name string
}

// Shipping holds delivery contact details.
type Shipping struct {
	Address      string
	MobileNumber string
}

// Order is a submitted checkout.
type Order struct {
	ID              string
	CustomerID      string
	CustomerName    string
	Items           []LineItem
	Total           float64
	Status          Status
	OrderDate       time.Time
	ShippingAddress string
	MobileNumber    string
}

// NewOrder validates the submission and freezes its total.
func NewOrder(id string, customer Customer, items []LineItem, shipping Shipping, now time.Time) (*Order, error) {
	name := strings.TrimSpace(customer.Name)
	if name == "" {
		return nil, ErrMissingCustomerName
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	lines := make([]LineItem, 0, len(items))
	for _, item := range items {
		item.MedicineID = strings.TrimSpace(item.MedicineID)
		item.Name = strings.TrimSpace(item.Name)
		if err := validateItem(item); err != nil {
			return nil, err
		}
		lines = append(lines, item)
	}
	address := strings.TrimSpace(shipping.Address)
	if len([]rune(address)) < minShippingAddressLength {
		return nil, ErrInvalidShippingAddress
	}
	mobile := strings.TrimSpace(shipping.MobileNumber)
	if !mobilePattern.MatchString(mobile) {
		return nil, ErrInvalidMobileNumber
	}
	return &Order{
		ID:              id,
		CustomerID:      strings.TrimSpace(customer.ID),
		CustomerName:    name,
		Items:           lines,
		Total:           ComputeTotal(lines),
		Status:          StatusPending,
		OrderDate:       now.UTC(),
		ShippingAddress: address,
		MobileNumber:    mobile,
	}, nil
}

func validateItem(item LineItem) error {
	switch {
	case item.MedicineID == "":
		return ErrMissingMedicineID
	case item.Name == "":
		return ErrMissingItemName
	case item.Quantity < 1:
		return ErrInvalidItemQuantity
	case item.Price < 0:
		return ErrNegativeItemPrice
	}
	return nil
}

// Subtotal is the untaxed sum of price times quantity.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// ComputeTotal applies TaxRate to the subtotal and rounds to cents.
func ComputeTotal(items []LineItem) float64 {
	return roundCents(Subtotal(items) * (1 + TaxRate))
}

// Tax is the tax share of the frozen total.
func (o *Order) Tax() float64 {
	return roundCents(o.Total - Subtotal(o.Items))
}

// UpdateStatus moves the order to any known status.
func (o *Order) UpdateStatus(status Status) error {
	parsed, err := ParseStatus(string(status))
	if err != nil {
		return err
	}
	o.Status = parsed
	return nil
}

// Reference is the short form of the id shown to customers: the timestamp segment when present.
func (o *Order) Reference() string {
	parts := strings.Split(o.ID, "-")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1]
	}
	return o.ID
}

// Clone returns a deep copy of the order.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Items = append([]LineItem(nil), o.Items...)
	return &clone
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
