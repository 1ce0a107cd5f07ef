// Package entity contains the core business objects of the marketplace.
package entity

import "slices"

// Role represents a capability a user can hold on the platform.
// One account may hold several capabilities at once (e.g. a seller who also buys).
type Role string

const (
	// RoleBuyer indicates a regular buyer capability.
	RoleBuyer Role = "buyer"
	// RoleSeller indicates a seller capability.
	RoleSeller Role = "seller"
	// RoleDriver indicates a delivery driver capability.
	RoleDriver Role = "driver"
	// RoleAdmin indicates a platform administrator capability.
	RoleAdmin Role = "admin"
)

// rolePrecedence is the fixed order used to resolve the primary dashboard
// when an account holds multiple capabilities.
var rolePrecedence = Roles{RoleAdmin, RoleDriver, RoleSeller, RoleBuyer}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleDriver, RoleAdmin:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// Primary resolves the primary dashboard role by fixed precedence:
// admin > driver > seller > buyer. Defaults to buyer for an empty set.
func (rs Roles) Primary() Role {
	for _, role := range rolePrecedence {
		if rs.Contains(role) {
			return role
		}
	}

	return RoleBuyer
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
