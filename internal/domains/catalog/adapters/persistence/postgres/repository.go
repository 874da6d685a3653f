package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord maps the product aggregate to a relational table.
type productRecord struct {
	ID                   string         `gorm:"primaryKey;column:id;type:uuid"`
	UserID               string         `gorm:"column:user_id;index"`
	Name                 string         `gorm:"column:name"`
	Description          string         `gorm:"column:description"`
	ImageURL             string         `gorm:"column:image_url"`
	Tags                 pq.StringArray `gorm:"column:tags;type:text[]"`
	PriceInCents         int64          `gorm:"column:price_in_cents"`
	AvailableForPurchase bool           `gorm:"column:available_for_purchase"`
	Weight               string         `gorm:"column:weight"`
	StockQuantity        int64          `gorm:"column:stock_quantity"`
	Category             string         `gorm:"column:category;type:varchar(100)"`
	CreatedAt            time.Time      `gorm:"column:created_at"`
	UpdatedAt            time.Time      `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts a new product.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product by identifier.
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

// GetByIDs fetches the products matching the given identifiers. Missing IDs
// are silently absent from the result.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// List returns all products.
func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// Update applies the patch and returns the updated product.
func (r *Repository) Update(ctx context.Context, id string, patch ports.ProductPatch) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	assignments := patchAssignments(patch)
	if len(assignments) > 0 {
		assignments["updated_at"] = gorm.Expr("NOW()")
		result := r.db.WithContext(ctx).
			Model(&productRecord{}).
			Where("id = ?", id).
			Updates(assignments)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ports.ErrNotFound
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a product and returns its last state.
func (r *Repository) Delete(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	product, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return product, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func patchAssignments(patch ports.ProductPatch) map[string]any {
	assignments := map[string]any{}
	if patch.Name != nil {
		assignments["name"] = *patch.Name
	}
	if patch.Description != nil {
		assignments["description"] = *patch.Description
	}
	if patch.ImageURL != nil {
		assignments["image_url"] = *patch.ImageURL
	}
	if patch.Tags != nil {
		assignments["tags"] = pq.StringArray(patch.Tags)
	}
	if patch.PriceInCents != nil {
		assignments["price_in_cents"] = *patch.PriceInCents
	}
	if patch.AvailableForPurchase != nil {
		assignments["available_for_purchase"] = *patch.AvailableForPurchase
	}
	if patch.Weight != nil {
		assignments["weight"] = *patch.Weight
	}
	if patch.StockQuantity != nil {
		assignments["stock_quantity"] = *patch.StockQuantity
	}
	if patch.Category != nil {
		assignments["category"] = *patch.Category
	}
	return assignments
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:                   product.ID,
		UserID:               product.UserID,
		Name:                 product.Name,
		Description:          product.Description,
		ImageURL:             product.ImageURL,
		Tags:                 pq.StringArray(product.Tags),
		PriceInCents:         product.PriceInCents,
		AvailableForPurchase: product.AvailableForPurchase,
		Weight:               product.Weight,
		StockQuantity:        product.StockQuantity,
		Category:             product.Category,
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:                   r.ID,
		UserID:               r.UserID,
		Name:                 r.Name,
		Description:          r.Description,
		ImageURL:             r.ImageURL,
		Tags:                 []string(r.Tags),
		PriceInCents:         r.PriceInCents,
		AvailableForPurchase: r.AvailableForPurchase,
		Weight:               r.Weight,
		StockQuantity:        r.StockQuantity,
		Category:             r.Category,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func toDomainList(records []productRecord) []*domain.Product {
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products
}
