package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/helmandshop/shop-api/internal/domains/orders/domain"
	"github.com/helmandshop/shop-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps one purchased line item to a relational row.
type orderRecord struct {
	ID                string    `gorm:"primaryKey;column:id;type:uuid"`
	UserID            string    `gorm:"column:user_id;index:idx_orders_user_status"`
	ProductID         string    `gorm:"column:product_id;type:uuid;index"`
	ShippingAddressID string    `gorm:"column:shipping_address_id;type:uuid"`
	Quantity          int64     `gorm:"column:quantity"`
	PricePaidInCents  int64     `gorm:"column:price_paid_in_cents"`
	PaymentIntentID   string    `gorm:"column:payment_intent_id"`
	Status            string    `gorm:"column:status;type:varchar(32);index:idx_orders_user_status"`
	CreatedAt         time.Time `gorm:"column:created_at;index"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Checkout runs the whole placement as one transaction: insert every order
// row, decrement each product's stock behind a stock_quantity >= quantity
// guard, then clear the user's cart. A guard miss distinguishes a missing
// product from insufficient stock and rolls everything back either way.
func (r *Repository) Checkout(ctx context.Context, userID string, orders []*domain.Order) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	created := make([]*domain.Order, 0, len(orders))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			record := toRecord(order)
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
			result := tx.Exec(
				`UPDATE products
				    SET stock_quantity = stock_quantity - ?, updated_at = NOW()
				  WHERE id = ? AND stock_quantity >= ?`,
				order.Quantity, order.ProductID, order.Quantity,
			)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				var count int64
				if err := tx.Table("products").Where("id = ?", order.ProductID).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return ports.ErrProductNotFound
				}
				return &ports.StockError{ProductID: order.ProductID, Requested: order.Quantity}
			}
			var stored orderRecord
			if err := tx.First(&stored, "id = ?", record.ID).Error; err != nil {
				return err
			}
			created = append(created, stored.toDomain())
		}
		return tx.Exec(`DELETE FROM cart_items WHERE user_id = ?`, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

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

// ListByUser returns the user's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// CountByUser returns how many orders the user has placed.
func (r *Repository) CountByUser(ctx context.Context, userID string) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&orderRecord{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres orders repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:                order.ID,
		UserID:            order.UserID,
		ProductID:         order.ProductID,
		ShippingAddressID: order.ShippingAddressID,
		Quantity:          order.Quantity,
		PricePaidInCents:  order.PricePaidInCents,
		PaymentIntentID:   order.PaymentIntentID,
		Status:            string(order.Status),
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:                r.ID,
		UserID:            r.UserID,
		ProductID:         r.ProductID,
		ShippingAddressID: r.ShippingAddressID,
		Quantity:          r.Quantity,
		PricePaidInCents:  r.PricePaidInCents,
		PaymentIntentID:   r.PaymentIntentID,
		Status:            domain.Status(r.Status),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
