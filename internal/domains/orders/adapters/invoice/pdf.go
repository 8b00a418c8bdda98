// Package invoice renders printable order invoices.
package invoice

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/orders/ports"
)

var _ ports.InvoiceRenderer = (*PDFRenderer)(nil)

const qrImageName = "order-qr"

// PDFRenderer lays out an A4 invoice with the line items and a QR code pointing at the order.
type PDFRenderer struct {
	storeName string
	baseURL   string
}

// NewPDFRenderer builds a renderer. baseURL prefixes the order link embedded in the QR code.
func NewPDFRenderer(storeName, baseURL string) *PDFRenderer {
	if storeName == "" {
		storeName = "PharmaTrack Lite"
	}
	return &PDFRenderer{storeName: storeName, baseURL: baseURL}
}

func (r *PDFRenderer) ContentType() string { return "application/pdf" }

// OrderURL is the link encoded in the invoice QR code.
func (r *PDFRenderer) OrderURL(orderID string) string {
	return r.baseURL + "/orders/" + orderID
}

func (r *PDFRenderer) Render(order *domain.Order) ([]byte, error) {
	if order == nil {
		return nil, errors.New("cannot render nil order")
	}
	qrPNG, err := qrcode.Encode(r.OrderURL(order.ID), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode order qr: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, r.storeName+" Invoice")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		"Order: " + order.ID,
		"Date: " + order.OrderDate.Format("2006-01-02 15:04 MST"),
		"Customer: " + order.CustomerName,
		"Ship to: " + order.ShippingAddress,
		"Mobile: " + order.MobileNumber,
		"Status: " + string(order.Status),
	} {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(90, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, money(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, money(item.Price*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}

	summary := []struct {
		label string
		value float64
	}{
		{"Subtotal", domain.Subtotal(order.Items)},
		{fmt.Sprintf("Tax (%.0f%%)", domain.TaxRate*100), order.Tax()},
		{"Total", order.Total},
	}
	for _, row := range summary {
		pdf.CellFormat(150, 8, row.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, money(row.value), "", 1, "R", false, 0, "")
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(qrImageName, imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions(qrImageName, 160, 12, 35, 35, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("Rs %.2f", v)
}
