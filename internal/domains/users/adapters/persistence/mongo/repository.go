package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

// CollectionName is the document collection holding accounts.
const CollectionName = "users"

var _ ports.Repository = (*Repository)(nil)

// Repository persists accounts as MongoDB documents with a unique email index.
type Repository struct {
	collection *mongo.Collection
}

type userDocument struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	FirstName    string    `bson:"firstName"`
	LastName     string    `bson:"lastName"`
	Role         string    `bson:"role"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

// NewRepository binds the repository to the users collection and ensures the email index.
func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	if db == nil {
		return &Repository{}, nil
	}
	collection := db.Collection(CollectionName)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_unique"),
	})
	if err != nil {
		return nil, err
	}
	return &Repository{collection: collection}, nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureCollection(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	if _, err := r.collection.InsertOne(ctx, toDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ports.ErrEmailTaken
		}
		return nil, err
	}
	return user.Clone(), nil
}

func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureCollection(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	result, err := r.collection.UpdateByID(ctx, user.ID, bson.M{"$set": bson.M{
		"email":        user.Email,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"role":         string(user.Role),
		"passwordHash": user.PasswordHash,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ports.ErrEmailTaken
		}
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, user.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureCollection(); err != nil {
		return nil, err
	}
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toDomain())
	}
	return users, nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	if err := r.ensureCollection(); err != nil {
		return nil, err
	}
	var doc userDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *Repository) ensureCollection() error {
	if r == nil || r.collection == nil {
		return errors.New("mongo user repository not configured")
	}
	return nil
}

func toDocument(u *domain.User) userDocument {
	return userDocument{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID,
		Email:        d.Email,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Role:         domain.Role(d.Role),
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}
