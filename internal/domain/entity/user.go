package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity entity, representing one account on the platform.
// Capabilities are expressed through the attached profiles: an account with a
// SellerProfile holds the seller capability, and so on. Every account is a buyer.
type User struct {
	ID            uuid.UUID
	Email         string
	FullName      string
	Phone         string
	PasswordHash  string
	IsAdmin       bool
	SellerProfile *SellerProfile // nil when the account has no seller capability.
	DriverProfile *DriverProfile // nil when the account has no driver capability.
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SellerProfile holds data specific to the seller capability.
// Unverified sellers cannot transact until an admin flips IsVerified.
type SellerProfile struct {
	UserID          uuid.UUID
	BusinessName    string
	BusinessAddress string
	IsVerified      bool
	VerifiedAt      *time.Time
	UpdatedAt       time.Time
}

// DriverProfile holds data specific to the driver capability.
type DriverProfile struct {
	UserID       uuid.UUID
	VehicleType  string
	VehiclePlate string
	IsVerified   bool
	VerifiedAt   *time.Time
	UpdatedAt    time.Time
}

// Capabilities returns the full capability set of the account.
// The buyer capability is implicit for every account.
func (u *User) Capabilities() Roles {
	roles := Roles{RoleBuyer}
	if u.SellerProfile != nil {
		roles = append(roles, RoleSeller)
	}
	if u.DriverProfile != nil {
		roles = append(roles, RoleDriver)
	}
	if u.IsAdmin {
		roles = append(roles, RoleAdmin)
	}

	return roles
}

// CanSell reports whether the account holds a verified seller capability.
func (u *User) CanSell() bool {
	return u.SellerProfile != nil && u.SellerProfile.IsVerified
}

// CanDrive reports whether the account holds a verified driver capability.
func (u *User) CanDrive() bool {
	return u.DriverProfile != nil && u.DriverProfile.IsVerified
}
