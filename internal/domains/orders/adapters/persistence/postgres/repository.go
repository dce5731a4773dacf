package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/speira/ecommerce-api/internal/domains/orders/domain"
	"github.com/speira/ecommerce-api/internal/domains/orders/ports"
	"github.com/speira/ecommerce-api/internal/shared/money"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderItem is the serialized shape of one order line.
type orderItem struct {
	ProductID       string `json:"productId"`
	Quantity        int    `json:"quantity"`
	PriceCents      int64  `json:"priceCents"`
	TotalCents      int64  `json:"totalCents"`
	ProductName     string `json:"productName"`
	ProductImageURL string `json:"productImageUrl"`
}

// orderRecord maps the order aggregate to a relational table. Items are
// a JSON document; the unique index on the idempotency key is what the
// conditional insert leans on.
type orderRecord struct {
	ID              string      `gorm:"primaryKey;column:id"`
	IdempotencyKey  string      `gorm:"column:idempotency_key;uniqueIndex"`
	UserID          string      `gorm:"column:user_id;index:idx_orders_user_created,priority:1"`
	Status          string      `gorm:"column:status;type:varchar(32);index"`
	Items           []orderItem `gorm:"column:items;serializer:json;type:jsonb"`
	TotalCents      int64       `gorm:"column:total_cents"`
	ShippingAddress string      `gorm:"column:shipping_address"`
	CreatedAt       time.Time   `gorm:"column:created_at;index:idx_orders_user_created,priority:2"`
	UpdatedAt       time.Time   `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByIdempotencyKey resolves the order claiming the key, nil when the
// key is unclaimed. The lookup rides the unique index.
func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "idempotency_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByUser pages through one user's orders most recent first.
func (r *Repository) ListByUser(ctx context.Context, userID string, limit int, cursor *pagination.Cursor) ([]*domain.Order, *pagination.Cursor, error) {
	if err := r.ensureDB(); err != nil {
		return nil, nil, err
	}
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit + 1)
	if cursor != nil {
		lastCreatedAt, err := time.Parse(time.RFC3339Nano, cursor.LastCreatedAt)
		if err != nil {
			return nil, nil, pagination.ErrInvalidToken
		}
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			lastCreatedAt, lastCreatedAt, cursor.LastID,
		)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, nil, err
	}
	var next *pagination.Cursor
	if len(records) > limit {
		records = records[:limit]
		last := records[limit-1]
		next = &pagination.Cursor{
			LastID:        last.ID,
			LastCreatedAt: last.CreatedAt.Format(time.RFC3339Nano),
		}
	}
	return toDomainSlice(records), next, nil
}

// List pages through all orders in id order.
func (r *Repository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]*domain.Order, *pagination.Cursor, error) {
	if err := r.ensureDB(); err != nil {
		return nil, nil, err
	}
	query := r.db.WithContext(ctx).Order("id ASC").Limit(limit + 1)
	if cursor != nil {
		query = query.Where("id > ?", cursor.LastID)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, nil, err
	}
	var next *pagination.Cursor
	if len(records) > limit {
		records = records[:limit]
		next = &pagination.Cursor{LastID: records[limit-1].ID}
	}
	return toDomainSlice(records), next, nil
}

// Update replaces the mutable fields of an existing order.
func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record := toRecord(order)
	result := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"status":           record.Status,
			"shipping_address": record.ShippingAddress,
			"updated_at":       record.UpdatedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toDomainSlice(records []orderRecord) []*domain.Order {
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders
}

func toRecord(order *domain.Order) orderRecord {
	items := make([]orderItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = orderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceCents:      int64(item.Price),
			TotalCents:      int64(item.Total),
			ProductName:     item.Product.Name,
			ProductImageURL: item.Product.ImageURL,
		}
	}
	return orderRecord{
		ID:              order.ID,
		IdempotencyKey:  order.IdempotencyKey,
		UserID:          order.UserID,
		Status:          string(order.Status),
		Items:           items,
		TotalCents:      int64(order.Total),
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	items := make([]domain.Item, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     money.Cents(item.PriceCents),
			Total:     money.Cents(item.TotalCents),
			Product: domain.ProductSnapshot{
				ID:       item.ProductID,
				Name:     item.ProductName,
				ImageURL: item.ProductImageURL,
			},
		}
	}
	return &domain.Order{
		ID:              r.ID,
		IdempotencyKey:  r.IdempotencyKey,
		UserID:          r.UserID,
		Status:          domain.Status(r.Status),
		Items:           items,
		Total:           money.Cents(r.TotalCents),
		ShippingAddress: r.ShippingAddress,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
