package migrations

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&orderRecord{},
		&userRecord{},
	)
}

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID          string         `gorm:"primaryKey;column:id"`
	Name        string         `gorm:"column:name"`
	Description string         `gorm:"column:description"`
	PriceCents  int64          `gorm:"column:price_cents"`
	Stock       int            `gorm:"column:stock"`
	ImageURL    string         `gorm:"column:image_url"`
	Categories  pq.StringArray `gorm:"column:categories;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Order schema mirrors the orders Postgres adapter. The unique index on
// idempotency_key backs the conditional insert of the commit path.
type orderRecord struct {
	ID              string          `gorm:"primaryKey;column:id"`
	IdempotencyKey  string          `gorm:"column:idempotency_key;uniqueIndex"`
	UserID          string          `gorm:"column:user_id;index:idx_orders_user_created,priority:1"`
	Status          string          `gorm:"column:status;type:varchar(32);index"`
	Items           json.RawMessage `gorm:"column:items;type:jsonb"`
	TotalCents      int64           `gorm:"column:total_cents"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	CreatedAt       time.Time       `gorm:"column:created_at;index:idx_orders_user_created,priority:2"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Email     string    `gorm:"column:email;index"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Role      string    `gorm:"column:role;type:varchar(16)"`
	IsActive  bool      `gorm:"column:is_active"`
	Phone     string    `gorm:"column:phone"`
	Address   string    `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }
