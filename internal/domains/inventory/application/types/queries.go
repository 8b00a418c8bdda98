package types

// MedicineIdentifier references a batch by id.
type MedicineIdentifier struct {
	ID string
}

// FindByListingStatusInput filters the catalog by listing status.
type FindByListingStatusInput struct {
	Statuses []string
}
