package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/speira/ecommerce-api/internal/domains/products/domain"
	"github.com/speira/ecommerce-api/internal/domains/products/ports"
	"github.com/speira/ecommerce-api/internal/shared/money"
	"github.com/speira/ecommerce-api/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// batchSize caps how many ids a single batched read carries.
const batchSize = 100

// Repository persists catalog entries in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

// productRecord maps the catalog entry to a relational table. Price is
// stored as integer cents.
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

// Save inserts or updates a catalog entry.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"description": record.Description,
				"price_cents": record.PriceCents,
				"stock":       record.Stock,
				"image_url":   record.ImageURL,
				"categories":  record.Categories,
				"updated_at":  record.UpdatedAt,
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a catalog entry by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// BatchGet resolves ids in chunks and merges the results. Unknown ids
// are simply absent.
func (r *Repository) BatchGet(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(ids))
	for _, chunk := range chunkIDs(ids, batchSize) {
		var records []productRecord
		if err := r.db.WithContext(ctx).Where("id IN ?", chunk).Find(&records).Error; err != nil {
			return nil, err
		}
		for i := range records {
			products = append(products, records[i].toDomain())
		}
	}
	return products, nil
}

// List pages through the catalog in id order.
func (r *Repository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]*domain.Product, *pagination.Cursor, error) {
	if err := r.ensureDB(); err != nil {
		return nil, nil, err
	}
	query := r.db.WithContext(ctx).Order("id ASC").Limit(limit + 1)
	if cursor != nil {
		query = query.Where("id > ?", cursor.LastID)
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, nil, err
	}
	var next *pagination.Cursor
	if len(records) > limit {
		records = records[:limit]
		next = &pagination.Cursor{LastID: records[limit-1].ID}
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, next, nil
}

// Delete removes a catalog entry by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// DecrementStock applies every decrement inside one transaction; any
// failed sufficiency condition rolls the whole batch back.
func (r *Repository) DecrementStock(ctx context.Context, decrements []ports.StockDecrement) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return applyDecrements(tx, decrements)
	})
}

// applyDecrements runs conditional stock updates on an open transaction.
func applyDecrements(tx *gorm.DB, decrements []ports.StockDecrement) error {
	for _, dec := range decrements {
		result := tx.Model(&productRecord{}).
			Where("id = ? AND stock >= ?", dec.ProductID, dec.Quantity).
			Update("stock", gorm.Expr("stock - ?", dec.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ports.ErrInsufficientStock
		}
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func chunkIDs(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		PriceCents:  int64(product.Price),
		Stock:       product.Stock,
		ImageURL:    product.ImageURL,
		Categories:  pq.StringArray(product.Categories),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Price:       money.Cents(r.PriceCents),
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		Categories:  []string(r.Categories),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
