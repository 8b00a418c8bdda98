package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	types "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/application/types"
)

type normalizedOrderInput struct {
	CustomerID      string                `json:"customerId"`
	CustomerName    string                `json:"customerName"`
	Items           []normalizedLineInput `json:"items"`
	ShippingAddress string                `json:"shippingAddress"`
	MobileNumber    string                `json:"mobileNumber"`
}

type normalizedLineInput struct {
	MedicineID string  `json:"medicineId"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// FingerprintCreateOrder builds a deterministic hash of the checkout payload, excluding the idempotency key.
func FingerprintCreateOrder(input types.CreateOrderInput) (string, error) {
	normalized := normalizedOrderInput{
		CustomerID:      strings.TrimSpace(input.CustomerID),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		Items:           make([]normalizedLineInput, 0, len(input.Items)),
		ShippingAddress: strings.TrimSpace(input.ShippingAddress),
		MobileNumber:    strings.TrimSpace(input.MobileNumber),
	}
	for _, item := range input.Items {
		normalized.Items = append(normalized.Items, normalizedLineInput{
			MedicineID: strings.TrimSpace(item.MedicineID),
			Name:       strings.TrimSpace(item.Name),
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
