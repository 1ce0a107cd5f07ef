package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoles_Primary(t *testing.T) {
	tests := []struct {
		name  string
		roles Roles
		want  Role
	}{
		{"empty defaults to buyer", Roles{}, RoleBuyer},
		{"buyer only", Roles{RoleBuyer}, RoleBuyer},
		{"seller beats buyer", Roles{RoleBuyer, RoleSeller}, RoleSeller},
		{"driver beats seller", Roles{RoleSeller, RoleDriver, RoleBuyer}, RoleDriver},
		{"admin beats everything", Roles{RoleBuyer, RoleSeller, RoleDriver, RoleAdmin}, RoleAdmin},
		{"order in slice is irrelevant", Roles{RoleAdmin, RoleBuyer}, RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.roles.Primary())
		})
	}
}

func TestRolesFromStrings_FiltersInvalid(t *testing.T) {
	roles := RolesFromStrings([]string{"buyer", "pilot", "admin", ""})
	assert.Equal(t, Roles{RoleBuyer, RoleAdmin}, roles)
}

func TestUser_Capabilities(t *testing.T) {
	bare := &User{}
	assert.Equal(t, Roles{RoleBuyer}, bare.Capabilities())

	full := &User{
		IsAdmin:       true,
		SellerProfile: &SellerProfile{},
		DriverProfile: &DriverProfile{},
	}
	assert.Equal(t, Roles{RoleBuyer, RoleSeller, RoleDriver, RoleAdmin}, full.Capabilities())
}

func TestUser_VerifiedCapabilities(t *testing.T) {
	unverifiedSeller := &User{SellerProfile: &SellerProfile{}}
	assert.False(t, unverifiedSeller.CanSell())

	verifiedSeller := &User{SellerProfile: &SellerProfile{IsVerified: true}}
	assert.True(t, verifiedSeller.CanSell())

	assert.False(t, (&User{}).CanDrive())
	assert.True(t, (&User{DriverProfile: &DriverProfile{IsVerified: true}}).CanDrive())
}
