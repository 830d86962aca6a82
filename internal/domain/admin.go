package domain

import "time"

// Permission names one admin capability. Mutating routes each declare the
// single permission they require.
type Permission string

const (
	PermManagePlayers  Permission = "manage_players"
	PermManageTiers    Permission = "manage_tiers"
	PermManageAdmins   Permission = "manage_admins"
	PermDeleteData     Permission = "delete_data"
	PermViewAdmins     Permission = "view_admins"
	PermManageDatabase Permission = "manage_database"
	PermChangeSettings Permission = "change_settings"
)

// Admin is an authenticated operator. PasswordHash never leaves the server.
type Admin struct {
	ID                int64     `json:"id" db:"id"`
	Username          string    `json:"username" db:"username"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	IsSuperAdmin      bool      `json:"is_super_admin" db:"is_super_admin"`
	CanManagePlayers  bool      `json:"can_manage_players" db:"can_manage_players"`
	CanManageTiers    bool      `json:"can_manage_tiers" db:"can_manage_tiers"`
	CanManageAdmins   bool      `json:"can_manage_admins" db:"can_manage_admins"`
	CanDeleteData     bool      `json:"can_delete_data" db:"can_delete_data"`
	CanViewAdmins     bool      `json:"can_view_admins" db:"can_view_admins"`
	CanManageDatabase bool      `json:"can_manage_database" db:"can_manage_database"`
	CanChangeSettings bool      `json:"can_change_settings" db:"can_change_settings"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// Has reports whether the admin holds the given permission. The super-admin
// flag implies every permission.
func (a *Admin) Has(p Permission) bool {
	if a.IsSuperAdmin {
		return true
	}
	switch p {
	case PermManagePlayers:
		return a.CanManagePlayers
	case PermManageTiers:
		return a.CanManageTiers
	case PermManageAdmins:
		return a.CanManageAdmins
	case PermDeleteData:
		return a.CanDeleteData
	case PermViewAdmins:
		return a.CanViewAdmins
	case PermManageDatabase:
		return a.CanManageDatabase
	case PermChangeSettings:
		return a.CanChangeSettings
	}
	return false
}
