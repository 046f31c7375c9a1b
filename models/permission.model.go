package models

import (
	"gorm.io/gorm"
)

// Permission keys known to the portal
const (
	PermApproveRegistration = "approve-registration"
	PermManageDocuments     = "manage-documents"
	PermManageRoles         = "manage-roles"
	PermPrintDigitalID      = "print-digital-id"
	PermViewReports         = "view-reports"
)

// Permission is a per-user permission row checked by the permission middleware
type Permission struct {
	gorm.Model
	UserID     uint   `gorm:"not null;index"`
	User       User   `gorm:"foreignKey:UserID"`
	Role       string
	Permission string `gorm:"type:varchar(255)"` // e.g., "approve-registration"
	IsDeleted  bool   `gorm:"default:false"`
}

// Role is a named permission bundle managed by admins
type Role struct {
	gorm.Model
	Name        string `gorm:"unique;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsDeleted   bool   `gorm:"default:false" json:"isDeleted"`

	Permissions []RolePermission `gorm:"foreignKey:RoleID" json:"permissions,omitempty"`
}

// RolePermission is one permission key attached to a role
type RolePermission struct {
	gorm.Model
	RoleID     uint   `gorm:"not null;index" json:"roleId"`
	Permission string `gorm:"not null;type:varchar(255)" json:"permission"`
}

// DefaultRolePermissions maps the built-in roles to their permission keys.
// Seeded on registration and whenever a user's role changes.
var DefaultRolePermissions = map[string][]string{
	RoleAdmin: {
		PermApproveRegistration,
		PermManageDocuments,
		PermManageRoles,
		PermPrintDigitalID,
		PermViewReports,
	},
	RoleReviewer: {
		PermApproveRegistration,
		PermViewReports,
	},
	RoleStaff: {
		PermManageDocuments,
	},
}
