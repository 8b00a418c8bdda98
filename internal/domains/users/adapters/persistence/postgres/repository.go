package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/domain"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists accounts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
// Duplicate emails are detected through gorm.ErrDuplicatedKey, so the DB must be opened with TranslateError.
func NewRepository(db *gorm.DB) *Repository {
	if db != nil {
		if err := db.AutoMigrate(&userRecord{}, &sessionRecord{}); err != nil {
			log.Printf("postgres user repository migration failed: %v", err)
		}
	}
	return &Repository{db: db}
}

type userRecord struct {
	ID           string    `gorm:"primaryKey;column:id;size:64"`
	Email        string    `gorm:"column:email;uniqueIndex;size:320"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	Role         string    `gorm:"column:role;type:varchar(16);index"`
	PasswordHash string    `gorm:"column:password_hash"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrEmailTaken
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	result := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", user.ID).Updates(map[string]any{
		"email":         user.Email,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"role":          string(user.Role),
		"password_hash": user.PasswordHash,
		"updated_at":    gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrEmailTaken
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, user.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(records))
	for i := range records {
		users = append(users, records[i].toDomain())
	}
	return users, nil
}

func (r *Repository) first(ctx context.Context, query string, arg string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         string(user.Role),
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Role:         domain.Role(r.Role),
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}
