//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "pharmatrack-api"
	ConsumerName = "pharmacy-portal"

	StateCatalogEmpty   = "the catalog is empty"
	StateMedicineExists = "medicine mdc-pact-0001 exists and is approved"
	StateMedicineAbsent = "no medicine with id mdc-missing"
)

const (
	ExistingMedicineID = "mdc-pact-0001"
	MissingMedicineID  = "mdc-missing"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the pharmacy portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleMedicine is the batch both sides of the contract agree on.
func ExampleMedicine() map[string]any {
	return map[string]any{
		"id":                ExistingMedicineID,
		"name":              "Paracetamol 500mg",
		"manufacturer":      "HealthCorp",
		"batchNo":           "PCM-2025-01",
		"description":       "Pain relief tablets",
		"mfgDate":           "2025-01-10",
		"expDate":           "2027-01-10",
		"quantity":          120,
		"price":             12.5,
		"stockStatus":       "In Stock",
		"supplyChainStatus": "At Manufacturer",
		"listingStatus":     "Approved",
	}
}

// ExampleOrderRequest is a guest order for two strips of the example batch.
func ExampleOrderRequest() map[string]any {
	return map[string]any{
		"customerName":    "Pact Customer",
		"shippingAddress": "12 Contract Lane, Pune",
		"mobileNumber":    "9820000000",
		"items": []map[string]any{{
			"medicineId": ExistingMedicineID,
			"name":       "Paracetamol 500mg",
			"quantity":   2,
			"price":      12.5,
		}},
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
