package main

import (
	"log"

	"tashil/config"
	"tashil/database"
	"tashil/models"
)

// Seeds the baseline roles, document categories and a few companies so a
// fresh environment is usable right away. Safe to run more than once.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	db := database.Database.Db

	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Full portal administration"},
		{Name: models.RoleReviewer, Description: "Reviews registration requests and issues IDs"},
		{Name: models.RoleStaff, Description: "Submits and tracks registration requests"},
	}

	for _, role := range roles {
		var existing models.Role
		if err := db.Where("name = ?", role.Name).First(&existing).Error; err == nil {
			log.Printf("Role %s already exists, skipping", role.Name)
			continue
		}
		if err := db.Create(&role).Error; err != nil {
			log.Fatalf("Failed to create role %s: %v", role.Name, err)
		}
		for _, perm := range models.DefaultRolePermissions[role.Name] {
			rp := models.RolePermission{RoleID: role.ID, Permission: perm}
			if err := db.Create(&rp).Error; err != nil {
				log.Fatalf("Failed to create permission %s for role %s: %v", perm, role.Name, err)
			}
		}
		log.Printf("Created role %s", role.Name)
	}

	categories := []models.DocumentCategory{
		{Name: "Policies", Description: "Internal policy documents"},
		{Name: "Forms", Description: "Blank forms and templates"},
		{Name: "Circulars", Description: "Official circulars and announcements"},
	}

	for _, category := range categories {
		var existing models.DocumentCategory
		if err := db.Where("name = ?", category.Name).First(&existing).Error; err == nil {
			log.Printf("Category %s already exists, skipping", category.Name)
			continue
		}
		if err := db.Create(&category).Error; err != nil {
			log.Fatalf("Failed to create category %s: %v", category.Name, err)
		}
		log.Printf("Created category %s", category.Name)
	}

	companies := []models.Company{
		{Name: "Al Noor Trading", RegistrationNumber: "CR-1001", City: "Cairo", RepresentativeName: "Hossam Farid", Email: "info@alnoor.example"},
		{Name: "Delta Logistics", RegistrationNumber: "CR-1002", City: "Alexandria", RepresentativeName: "Mona Said", Email: "contact@delta.example"},
	}

	for _, company := range companies {
		var existing models.Company
		if err := db.Where("registration_number = ?", company.RegistrationNumber).First(&existing).Error; err == nil {
			log.Printf("Company %s already exists, skipping", company.RegistrationNumber)
			continue
		}
		if err := db.Create(&company).Error; err != nil {
			log.Fatalf("Failed to create company %s: %v", company.Name, err)
		}
		log.Printf("Created company %s", company.Name)
	}

	log.Println("Seeding complete")
}
