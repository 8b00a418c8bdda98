// Package labels renders printable batch labels.
package labels

import (
	"errors"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length of a rendered label in pixels.
const DefaultSize = 256

// ErrEmptyMedicineID is returned when no batch id is given.
var ErrEmptyMedicineID = errors.New("medicine id is required for a label")

// Renderer builds QR labels pointing at the public verification page of a batch.
type Renderer struct {
	baseURL string
	size    int
}

// NewRenderer returns a renderer for baseURL. size <= 0 uses DefaultSize.
func NewRenderer(baseURL string, size int) *Renderer {
	if size <= 0 {
		size = DefaultSize
	}
	return &Renderer{baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"), size: size}
}

// VerificationURL is the payload encoded in the label.
func (r *Renderer) VerificationURL(medicineID string) string {
	return r.baseURL + "/medicine/" + medicineID
}

// PNG renders the label for medicineID.
func (r *Renderer) PNG(medicineID string) ([]byte, error) {
	medicineID = strings.TrimSpace(medicineID)
	if medicineID == "" {
		return nil, ErrEmptyMedicineID
	}
	return qrcode.Encode(r.VerificationURL(medicineID), qrcode.Medium, r.size)
}
