package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/cart/domain"
	"github.com/helmandshop/shop-api/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists cart items in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// cartItemRecord maps a cart item to a relational row. The product snapshot
// rides along as jsonb.
type cartItemRecord struct {
	ID          string                        `gorm:"primaryKey;column:id;type:uuid"`
	UserID      string                        `gorm:"column:user_id;uniqueIndex:idx_cart_user_product"`
	ProductID   string                        `gorm:"column:product_id;type:uuid;uniqueIndex:idx_cart_user_product"`
	Quantity    int64                         `gorm:"column:quantity"`
	ProductData catalogdomain.ProductSnapshot `gorm:"column:product_data;type:jsonb;serializer:json"`
	CreatedAt   time.Time                     `gorm:"column:created_at;index"`
	UpdatedAt   time.Time                     `gorm:"column:updated_at"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

// Save inserts a new cart item.
func (r *Repository) Save(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("cart item is nil")
	}
	record := toRecord(item)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByUserAndProduct(ctx, record.UserID, record.ProductID)
}

// Update rewrites quantity and snapshot for an existing cart item.
func (r *Repository) Update(ctx context.Context, item *domain.CartItem) (*domain.CartItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("cart item is nil")
	}
	result := r.db.WithContext(ctx).
		Model(&cartItemRecord{}).
		Where("user_id = ? AND product_id = ?", item.UserID, item.ProductID).
		Updates(map[string]any{
			"quantity":     item.Quantity,
			"product_data": item.ProductData,
			"updated_at":   gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByUserAndProduct(ctx, item.UserID, item.ProductID)
}

// GetByUserAndProduct fetches a single cart row.
func (r *Repository) GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.CartItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartItemRecord
	err := r.db.WithContext(ctx).
		First(&record, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// ListByUser returns all cart rows for the user.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartItemRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}
	items := make([]*domain.CartItem, 0, len(records))
	for i := range records {
		items = append(items, records[i].toDomain())
	}
	return items, nil
}

// Remove deletes one product from the user's cart.
func (r *Repository) Remove(ctx context.Context, userID, productID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Delete(&cartItemRecord{}, "user_id = ? AND product_id = ?", userID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// ClearUser removes every cart row for the user.
func (r *Repository) ClearUser(ctx context.Context, userID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&cartItemRecord{}, "user_id = ?", userID).Error
}

// CountByUser sums carted quantities for the user.
func (r *Repository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var total int64
	err := r.db.WithContext(ctx).
		Model(&cartItemRecord{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// DefaultCartMaxAge bounds how long an untouched cart row survives before
// the pruner job removes it.
const DefaultCartMaxAge = 30 * 24 * time.Hour

// PruneStale deletes cart rows that have not been touched within maxAge and
// reports how many were removed.
func (r *Repository) PruneStale(ctx context.Context, maxAge time.Duration) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	if maxAge <= 0 {
		maxAge = DefaultCartMaxAge
	}
	cutoff := time.Now().Add(-maxAge)
	result := r.db.WithContext(ctx).Delete(&cartItemRecord{}, "updated_at < ?", cutoff)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func toRecord(item *domain.CartItem) cartItemRecord {
	return cartItemRecord{
		ID:          item.ID,
		UserID:      item.UserID,
		ProductID:   item.ProductID,
		Quantity:    item.Quantity,
		ProductData: item.ProductData,
	}
}

func (r cartItemRecord) toDomain() *domain.CartItem {
	return &domain.CartItem{
		ID:          r.ID,
		UserID:      r.UserID,
		ProductID:   r.ProductID,
		Quantity:    r.Quantity,
		ProductData: r.ProductData,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
