package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/helmandshop/shop-api/internal/domains/addresses/domain"
	"github.com/helmandshop/shop-api/internal/domains/addresses/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists shipping addresses in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type shippingAddressRecord struct {
	ID          string    `gorm:"primaryKey;column:id;type:uuid"`
	UserID      string    `gorm:"column:user_id;index"`
	FullName    string    `gorm:"column:full_name"`
	Country     string    `gorm:"column:country"`
	Province    string    `gorm:"column:province"`
	City        string    `gorm:"column:city"`
	Address     string    `gorm:"column:address"`
	PhoneNumber string    `gorm:"column:phone_number"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (shippingAddressRecord) TableName() string { return "shipping_addresses" }

// Save inserts a shipping address.
func (r *Repository) Save(ctx context.Context, address *domain.ShippingAddress) (*domain.ShippingAddress, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if address == nil {
		return nil, errors.New("shipping address is nil")
	}
	record := toRecord(address)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an address by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ShippingAddress, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record shippingAddressRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByIDs fetches the addresses matching the given identifiers.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]*domain.ShippingAddress, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var records []shippingAddressRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

// ListByUser returns all addresses for the user.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*domain.ShippingAddress, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []shippingAddressRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}
	return toDomainList(records), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres shipping address repository not configured")
	}
	return nil
}

func toRecord(address *domain.ShippingAddress) shippingAddressRecord {
	return shippingAddressRecord{
		ID:          address.ID,
		UserID:      address.UserID,
		FullName:    address.FullName,
		Country:     address.Country,
		Province:    address.Province,
		City:        address.City,
		Address:     address.Address,
		PhoneNumber: address.PhoneNumber,
	}
}

func (r shippingAddressRecord) toDomain() *domain.ShippingAddress {
	return &domain.ShippingAddress{
		ID:          r.ID,
		UserID:      r.UserID,
		FullName:    r.FullName,
		Country:     r.Country,
		Province:    r.Province,
		City:        r.City,
		Address:     r.Address,
		PhoneNumber: r.PhoneNumber,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toDomainList(records []shippingAddressRecord) []*domain.ShippingAddress {
	addresses := make([]*domain.ShippingAddress, 0, len(records))
	for i := range records {
		addresses = append(addresses, records[i].toDomain())
	}
	return addresses
}
