// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Marketplace operators
	RoleAdmin UserRole = "admin"

	// Accounts that publish artworks; the profile table stores this role
	RoleArtist UserRole = "artist"

	// Default role for collectors browsing the marketplace
	RoleBuyer UserRole = "buyer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 30
	case RoleArtist:
		return 20
	case RoleBuyer:
		return 10
	default:
		return 0
	}
}
