package migrations

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema of every Postgres-backed store. Adapters still AutoMigrate their own
// tables, so Run is what the CLI uses to prepare an empty database up front.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&medicineRecord{},
		&orderRecord{},
		&idempotencyRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Tables lists the managed tables in dependency-free order.
func Tables() []string {
	return []string{
		medicineRecord{}.TableName(),
		orderRecord{}.TableName(),
		idempotencyRecord{}.TableName(),
		userRecord{}.TableName(),
		sessionRecord{}.TableName(),
	}
}

// Reset empties the given tables, or every managed table when none are named.
func Reset(db *gorm.DB, tables ...string) error {
	if db == nil {
		return nil
	}
	if len(tables) == 0 {
		tables = Tables()
	}
	quoted := make([]string, 0, len(tables))
	for _, table := range tables {
		quoted = append(quoted, pq.QuoteIdentifier(table))
	}
	if err := db.Exec("TRUNCATE TABLE " + strings.Join(quoted, ", ")).Error; err != nil {
		return fmt.Errorf("truncate %s: %w", strings.Join(tables, ", "), err)
	}
	return nil
}

// Medicine schema mirrors the inventory Postgres adapter.
type medicineRecord struct {
	ID                string    `gorm:"primaryKey;column:id;size:64"`
	Name              string    `gorm:"column:name;index"`
	Manufacturer      string    `gorm:"column:manufacturer"`
	BatchNo           string    `gorm:"column:batch_no"`
	Description       string    `gorm:"column:description"`
	MfgDate           time.Time `gorm:"column:mfg_date;type:date"`
	ExpDate           time.Time `gorm:"column:exp_date;type:date"`
	Quantity          int       `gorm:"column:quantity"`
	Price             float64   `gorm:"column:price"`
	SupplyChainStatus string    `gorm:"column:supply_chain_status;type:varchar(32)"`
	ListingStatus     string    `gorm:"column:listing_status;type:varchar(16);index"`
	OnChain           bool      `gorm:"column:on_chain"`
	Generation        int64     `gorm:"column:generation"`
	History           string    `gorm:"column:history;type:text"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (medicineRecord) TableName() string { return "medicines" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID              string    `gorm:"primaryKey;column:id;size:64"`
	CustomerID      string    `gorm:"column:customer_id;size:64;index"`
	CustomerName    string    `gorm:"column:customer_name"`
	Items           string    `gorm:"column:items;type:text"`
	Total           float64   `gorm:"column:total"`
	Status          string    `gorm:"column:status;type:varchar(16);index"`
	OrderDate       time.Time `gorm:"column:order_date;index"`
	ShippingAddress string    `gorm:"column:shipping_address"`
	MobileNumber    string    `gorm:"column:mobile_number;size:16"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	OrderID     string    `gorm:"column:order_id;size:64"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "order_idempotency_keys" }

// User schema mirrors the users Postgres adapter.
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

// Session schema mirrors the session store.
type sessionRecord struct {
	UserID    string    `gorm:"primaryKey;column:user_id;size:64"`
	TokenID   string    `gorm:"column:token_id;size:64"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
