package migrations

import (
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
		&userRecord{},
		&productRecord{},
		&cartItemRecord{},
		&favoriteRecord{},
		&shippingAddressRecord{},
		&orderRecord{},
	)
}

// User schema mirrors the users Postgres adapter. IDs come from the external
// identity provider, so the column is plain text rather than a uuid.
type userRecord struct {
	ID        string    `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	ImageURL  string    `gorm:"column:image_url"`
	Role      string    `gorm:"column:role;type:varchar(16)"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Product schema mirrors the catalog Postgres adapter.
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

// Cart schema mirrors the cart Postgres adapter. product_data holds the
// immutable snapshot captured when the item was added.
type cartItemRecord struct {
	ID          string         `gorm:"primaryKey;column:id;type:uuid"`
	UserID      string         `gorm:"column:user_id;uniqueIndex:idx_cart_user_product"`
	ProductID   string         `gorm:"column:product_id;type:uuid;uniqueIndex:idx_cart_user_product"`
	Quantity    int64          `gorm:"column:quantity"`
	ProductData map[string]any `gorm:"column:product_data;type:jsonb;serializer:json"`
	CreatedAt   time.Time      `gorm:"column:created_at;index"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

// Favorite schema mirrors the favorites Postgres adapter.
type favoriteRecord struct {
	ID          string         `gorm:"primaryKey;column:id;type:uuid"`
	UserID      string         `gorm:"column:user_id;uniqueIndex:idx_favorites_user_product"`
	ProductID   string         `gorm:"column:product_id;type:uuid;uniqueIndex:idx_favorites_user_product"`
	ProductData map[string]any `gorm:"column:product_data;type:jsonb;serializer:json"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
}

func (favoriteRecord) TableName() string { return "favorites" }

// Shipping address schema mirrors the addresses Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter. One row per line item.
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
