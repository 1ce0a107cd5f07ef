package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
// Status moves along a fixed chain; updates run as conditional writes keyed on
// the expected current status.
type OrderModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BuyerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SellerID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status          string          `gorm:"type:text;not null;default:'placed';index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryFee     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DeliveryAddress string          `gorm:"type:text;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []*OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM-specific struct for the 'order_items' table.
// UnitPrice snapshots the product price at order time.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName explicitly sets the table name for GORM.
func (OrderItemModel) TableName() string {
	return "order_items"
}
