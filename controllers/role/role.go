package roleController

import (
	"log"
	"strings"

	authController "tashil/controllers/auth"
	"tashil/database"
	"tashil/middleware"
	"tashil/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ListRoles returns all roles with their permissions and user counts
func ListRoles(c *fiber.Ctx) error {
	db := database.Database.Db

	var roles []models.Role
	if err := db.Preload("Permissions").Where("is_deleted = false").Order("name ASC").Find(&roles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch roles!", nil)
	}

	type roleWithCount struct {
		models.Role
		UserCount int64 `json:"userCount"`
	}

	result := make([]roleWithCount, 0, len(roles))
	for _, role := range roles {
		var count int64
		db.Model(&models.User{}).Where("role = ? AND is_deleted = false", role.Name).Count(&count)
		result = append(result, roleWithCount{Role: role, UserCount: count})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Roles fetched!", result)
}

// CreateRole adds a new role with a permission set
func CreateRole(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateRole").(*struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Permissions []string `json:"permissions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	name := strings.ToUpper(reqData.Name)
	if err := db.Where("name = ? AND is_deleted = false", name).First(&models.Role{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Role already exists!", nil)
	}

	role := models.Role{
		Name:        name,
		Description: reqData.Description,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		for _, perm := range reqData.Permissions {
			rp := models.RolePermission{RoleID: role.ID, Permission: perm}
			if err := tx.Create(&rp).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error creating role %s: %v", name, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create role!", nil)
	}

	db.Preload("Permissions").First(&role, role.ID)
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Role created successfully!", role)
}

// UpdateRole edits a role's description and/or replaces its permission set
func UpdateRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid role ID!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateRole").(*struct {
		Description *string   `json:"description"`
		Permissions *[]string `json:"permissions"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var role models.Role
	if err := db.Where("id = ? AND is_deleted = false", id).First(&role).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Role not found!", nil)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if reqData.Description != nil {
			if err := tx.Model(&role).Update("description", *reqData.Description).Error; err != nil {
				return err
			}
		}
		if reqData.Permissions != nil {
			if err := tx.Where("role_id = ?", role.ID).Delete(&models.RolePermission{}).Error; err != nil {
				return err
			}
			for _, perm := range *reqData.Permissions {
				rp := models.RolePermission{RoleID: role.ID, Permission: perm}
				if err := tx.Create(&rp).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("Error updating role %d: %v", role.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	db.Preload("Permissions").First(&role, role.ID)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role updated successfully!", role)
}

// DeleteRole removes a role that no user currently holds
func DeleteRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid role ID!", nil)
	}

	db := database.Database.Db

	var role models.Role
	if err := db.Where("id = ? AND is_deleted = false", id).First(&role).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Role not found!", nil)
	}

	var users int64
	db.Model(&models.User{}).Where("role = ? AND is_deleted = false", role.Name).Count(&users)
	if users > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Role is still assigned to users!", nil)
	}

	if err := db.Model(&role).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role deleted successfully!", nil)
}

// AssignRole changes a user's role and re-seeds their permission rows
func AssignRole(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAssignRole").(*struct {
		UserID uint   `json:"userId"`
		Role   string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = false", reqData.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	role := strings.ToUpper(reqData.Role)
	if _, ok := models.DefaultRolePermissions[role]; !ok {
		var stored models.Role
		if err := db.Where("name = ? AND is_deleted = false", role).First(&stored).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Role not found!", nil)
		}
	}

	if err := db.Model(&user).Update("role", role).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign role!", nil)
	}

	if _, ok := models.DefaultRolePermissions[role]; ok {
		if err := authController.SeedPermissions(db, role, user.ID); err != nil {
			log.Printf("Error seeding permissions for user %d: %v", user.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign permissions!", nil)
		}
	} else {
		// Custom role, copy its stored permission set onto the user
		var rolePerms []models.RolePermission
		var stored models.Role
		if err := db.Where("name = ?", role).First(&stored).Error; err == nil {
			db.Where("role_id = ?", stored.ID).Find(&rolePerms)
		}
		if err := db.Where("user_id = ?", user.ID).Delete(&models.Permission{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign permissions!", nil)
		}
		for _, rp := range rolePerms {
			permission := models.Permission{UserID: user.ID, Role: role, Permission: rp.Permission}
			if err := db.Create(&permission).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign permissions!", nil)
			}
		}
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Role assigned successfully!", user)
}
