package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	FullName     string    `gorm:"type:varchar(100);not null"`
	Phone        string    `gorm:"type:varchar(32)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	SellerProfile *SellerProfileModel `gorm:"foreignKey:UserID"`
	DriverProfile *DriverProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// SellerProfileModel mirrors the 'seller_profiles' table. UserID references users.id (UUID).
// Its presence grants the seller capability; IsVerified gates actual selling.
type SellerProfileModel struct {
	UserID          uuid.UUID `gorm:"primaryKey"`
	BusinessName    string    `gorm:"type:varchar(100);not null"`
	BusinessAddress string    `gorm:"type:text"`
	IsVerified      bool      `gorm:"not null;default:false"`
	VerifiedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (SellerProfileModel) TableName() string {
	return "seller_profiles"
}

// DriverProfileModel mirrors the 'driver_profiles' table. UserID references users.id (UUID).
type DriverProfileModel struct {
	UserID       uuid.UUID `gorm:"primaryKey"`
	VehicleType  string    `gorm:"type:varchar(50);not null"`
	VehiclePlate string    `gorm:"type:varchar(32);not null"`
	IsVerified   bool      `gorm:"not null;default:false"`
	VerifiedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (DriverProfileModel) TableName() string {
	return "driver_profiles"
}
