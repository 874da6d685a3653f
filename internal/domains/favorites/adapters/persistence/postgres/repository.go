package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	catalogdomain "github.com/helmandshop/shop-api/internal/domains/catalog/domain"
	"github.com/helmandshop/shop-api/internal/domains/favorites/domain"
	"github.com/helmandshop/shop-api/internal/domains/favorites/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists favorites in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type favoriteRecord struct {
	ID          string                        `gorm:"primaryKey;column:id;type:uuid"`
	UserID      string                        `gorm:"column:user_id;uniqueIndex:idx_favorites_user_product"`
	ProductID   string                        `gorm:"column:product_id;type:uuid;uniqueIndex:idx_favorites_user_product"`
	ProductData catalogdomain.ProductSnapshot `gorm:"column:product_data;type:jsonb;serializer:json"`
	CreatedAt   time.Time                     `gorm:"column:created_at"`
}

func (favoriteRecord) TableName() string { return "favorites" }

// Save inserts a favorite.
func (r *Repository) Save(ctx context.Context, favorite *domain.Favorite) (*domain.Favorite, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if favorite == nil {
		return nil, errors.New("favorite is nil")
	}
	record := toRecord(favorite)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByUserAndProduct(ctx, record.UserID, record.ProductID)
}

// GetByUserAndProduct fetches a single favorite.
func (r *Repository) GetByUserAndProduct(ctx context.Context, userID, productID string) (*domain.Favorite, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record favoriteRecord
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

// ListByUser returns all favorites for the user.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Favorite, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []favoriteRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}
	favorites := make([]*domain.Favorite, 0, len(records))
	for i := range records {
		favorites = append(favorites, records[i].toDomain())
	}
	return favorites, nil
}

// Remove deletes one favorite.
func (r *Repository) Remove(ctx context.Context, userID, productID string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Delete(&favoriteRecord{}, "user_id = ? AND product_id = ?", userID, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// CountByUser counts favorites for the user.
func (r *Repository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var total int64
	err := r.db.WithContext(ctx).
		Model(&favoriteRecord{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres favorites repository not configured")
	}
	return nil
}

func toRecord(favorite *domain.Favorite) favoriteRecord {
	return favoriteRecord{
		ID:          favorite.ID,
		UserID:      favorite.UserID,
		ProductID:   favorite.ProductID,
		ProductData: favorite.ProductData,
	}
}

func (r favoriteRecord) toDomain() *domain.Favorite {
	return &domain.Favorite{
		ID:          r.ID,
		UserID:      r.UserID,
		ProductID:   r.ProductID,
		ProductData: r.ProductData,
		CreatedAt:   r.CreatedAt,
	}
}
