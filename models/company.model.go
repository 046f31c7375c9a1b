package models

import (
	"gorm.io/gorm"
)

type Company struct {
	gorm.Model
	Name                string `gorm:"not null" json:"name"`
	RegistrationNumber  string `gorm:"unique;not null" json:"registrationNumber"`
	Address             string `gorm:"default:''" json:"address"`
	City                string `gorm:"default:''" json:"city"`
	RepresentativeName  string `gorm:"default:''" json:"representativeName"`
	RepresentativePhone string `gorm:"default:''" json:"representativePhone"`
	Email               string `gorm:"default:''" json:"email"`
	IsDeleted           bool   `gorm:"default:false" json:"isDeleted"`
}
