package models

import (
	"time"

	"gorm.io/gorm"
)

// Role enum values
const (
	RoleAdmin    = "ADMIN"
	RoleReviewer = "REVIEWER"
	RoleStaff    = "STAFF"
)

type User struct {
	gorm.Model
	ProfileImage        string     `gorm:"default:''"`
	Name                string     `gorm:"default:''"`
	Email               string     `gorm:"unique;not null"`
	Mobile              string     `gorm:"default:''"`
	Role                string     `gorm:"default:'STAFF'"` // STAFF, REVIEWER, ADMIN
	Password            string     `gorm:"not null"`
	LastLogin           *time.Time `gorm:"default:NULL"`
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}
