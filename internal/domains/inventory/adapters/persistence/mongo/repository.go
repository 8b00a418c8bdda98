package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/shared/projection"
)

// CollectionName is the document collection holding medicine batches.
const CollectionName = "medicines"

var _ ports.Repository = (*Repository)(nil)

// Repository persists medicine batches as MongoDB documents.
type Repository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewRepository binds the repository to the medicines collection of db.
func NewRepository(db *mongo.Database) *Repository {
	repo := &Repository{now: time.Now}
	if db != nil {
		repo.collection = db.Collection(CollectionName)
	}
	return repo
}

type medicineDocument struct {
	ID                string            `bson:"_id"`
	Name              string            `bson:"name"`
	Manufacturer      string            `bson:"manufacturer"`
	BatchNo           string            `bson:"batchNo"`
	Description       string            `bson:"description"`
	MfgDate           time.Time         `bson:"mfgDate"`
	ExpDate           time.Time         `bson:"expDate"`
	Quantity          int               `bson:"quantity"`
	Price             float64           `bson:"price"`
	SupplyChainStatus string            `bson:"supplyChainStatus"`
	ListingStatus     string            `bson:"listingStatus"`
	OnChain           bool              `bson:"onChain"`
	Generation        int64             `bson:"generation"`
	History           []historyDocument `bson:"history"`
	CreatedAt         time.Time         `bson:"createdAt"`
	UpdatedAt         time.Time         `bson:"updatedAt"`
}

type historyDocument struct {
	Timestamp time.Time `bson:"timestamp"`
	Action    string    `bson:"action"`
	Changes   string    `bson:"changes"`
}

// Save upserts the batch document. createdAt is only written on insert.
func (r *Repository) Save(ctx context.Context, medicine *domain.Medicine) (*projection.Projection[*domain.Medicine], error) {
	if err := r.ensureCollection(); err != nil {
		return nil, err
	}
	if medicine == nil {
		return nil, errors.New("cannot save nil medicine")
	}
	now := r.now().UTC()
	history := make([]historyDocument, 0, len(medicine.History))
	for _, entry := range medicine.History {
		history = append(history, historyDocument{Timestamp: entry.Timestamp, Action: string(entry.Action), Changes: entry.Changes})
	}
	update := bson.M{
		"$set": bson.M{
			"name":              medicine.Name,
			"manufacturer":      medicine.Manufacturer,
			"batchNo":           medicine.BatchNo,
			"description":       medicine.Description,
			"mfgDate":           medicine.MfgDate,
			"expDate":           medicine.ExpDate,
			"quantity":          medicine.Quantity,
			"price":             medicine.Price,
			"supplyChainStatus": string(medicine.SupplyChainStatus),
			"listingStatus":     string(medicine.ListingStatus),
			"onChain":           medicine.OnChain,
			"generation":        medicine.Generation,
			"history":           history,
			"updatedAt":         now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": medicine.ID}, update, options.Update().SetUpsert(true)); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, medicine.ID)
}

// GetByID fetches a batch by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Medicine], error) {
	if err := r.ensureCollection(); err != nil {
		return nil, err
	}
	var doc medicineDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return doc.toProjection(), nil
}

// Delete removes a batch by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureCollection(); err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns every batch ordered by name.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Medicine], error) {
	return r.find(ctx, bson.M{})
}

// FindByListingStatus returns batches whose listing status matches any provided status.
func (r *Repository) FindByListingStatus(ctx context.Context, statuses []domain.ListingStatus) ([]*projection.Projection[*domain.Medicine], error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	return r.find(ctx, bson.M{"listingStatus": bson.M{"$in": values}})
}

// MarkConfirmed flips onChain with a generation guard in the filter.
func (r *Repository) MarkConfirmed(ctx context.Context, id string, generation int64) (*projection.Projection[*domain.Medicine], error) {
	if err := r.ensureCollection(); err != nil {
		return nil, err
	}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "generation": generation},
		bson.M{"$set": bson.M{"onChain": true, "updatedAt": r.now().UTC()}},
	)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ports.ErrStaleConfirmation
	}
	return r.GetByID(ctx, id)
}

// MarkApproved pushes the approval entry with a filter that skips approved batches,
// leaving onChain and generation to concurrent settlements.
func (r *Repository) MarkApproved(ctx context.Context, id string, at time.Time) (*projection.Projection[*domain.Medicine], bool, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	medicine := current.Entity
	if !medicine.Approve(at) {
		return current, false, nil
	}
	entry := medicine.History[len(medicine.History)-1]
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "listingStatus": bson.M{"$ne": string(domain.ListingApproved)}},
		bson.M{
			"$set":  bson.M{"listingStatus": string(domain.ListingApproved), "updatedAt": r.now().UTC()},
			"$push": bson.M{"history": historyDocument{Timestamp: entry.Timestamp, Action: string(entry.Action), Changes: entry.Changes}},
		},
	)
	if err != nil {
		return nil, false, err
	}
	saved, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return saved, result.ModifiedCount > 0, nil
}

func (r *Repository) find(ctx context.Context, filter bson.M) ([]*projection.Projection[*domain.Medicine], error) {
	if err := r.ensureCollection(); err != nil {
		return nil, err
	}
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var docs []medicineDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	list := make([]*projection.Projection[*domain.Medicine], 0, len(docs))
	for i := range docs {
		list = append(list, docs[i].toProjection())
	}
	return list, nil
}

func (r *Repository) ensureCollection() error {
	if r == nil || r.collection == nil {
		return errors.New("mongo medicine repository not configured")
	}
	return nil
}

func (d medicineDocument) toProjection() *projection.Projection[*domain.Medicine] {
	history := make([]domain.HistoryEntry, 0, len(d.History))
	for _, entry := range d.History {
		history = append(history, domain.HistoryEntry{
			Timestamp: entry.Timestamp.UTC(),
			Action:    domain.HistoryAction(entry.Action),
			Changes:   entry.Changes,
		})
	}
	return projection.New(&domain.Medicine{
		ID:                d.ID,
		Name:              d.Name,
		Manufacturer:      d.Manufacturer,
		BatchNo:           d.BatchNo,
		Description:       d.Description,
		MfgDate:           d.MfgDate.UTC(),
		ExpDate:           d.ExpDate.UTC(),
		Quantity:          d.Quantity,
		Price:             d.Price,
		SupplyChainStatus: domain.SupplyChainStatus(d.SupplyChainStatus),
		ListingStatus:     domain.ListingStatus(d.ListingStatus),
		OnChain:           d.OnChain,
		Generation:        d.Generation,
		History:           history,
	}, d.CreatedAt.UTC(), d.UpdatedAt.UTC())
}
