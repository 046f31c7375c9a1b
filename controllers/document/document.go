package documentController

import (
	"encoding/json"
	"log"
	"strings"

	"tashil/config"
	"tashil/database"
	"tashil/middleware"
	"tashil/models"
	"tashil/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UploadDocument stores a new document. The blob is written first; the
// metadata row is only created once the blob write succeeded, so a storage
// failure never leaves a dangling row.
func UploadDocument(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document file is required!", nil)
	}

	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		name = file.Filename
	}

	var categoryID *uint
	if raw := c.FormValue("categoryId"); raw != "" {
		var category models.DocumentCategory
		if err := database.Database.Db.Where("id = ? AND is_deleted = false", raw).First(&category).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document category not found!", nil)
		}
		categoryID = &category.ID
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir+"/documents")
	if err != nil {
		log.Printf("Error storing document upload: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store document. Please try again.", nil)
	}

	doc := models.Document{
		Name:           name,
		Description:    c.FormValue("description"),
		FilePath:       filePath,
		FileType:       file.Header.Get("Content-Type"),
		FileSize:       file.Size,
		CategoryID:     categoryID,
		OwnerID:        userId,
		Encrypted:      c.FormValue("encrypted") == "true",
		Keywords:       c.FormValue("keywords"),
		CurrentVersion: 1,
	}

	if raw := c.FormValue("metadata"); raw != "" {
		if !json.Valid([]byte(raw)) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Metadata must be valid JSON!", nil)
		}
		doc.Metadata = datatypes.JSON(raw)
	}

	db := database.Database.Db
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&doc).Error; err != nil {
			return err
		}
		version := models.DocumentVersion{
			DocumentID:    doc.ID,
			VersionNumber: 1,
			FilePath:      doc.FilePath,
			FileType:      doc.FileType,
			FileSize:      doc.FileSize,
			CreatedBy:     userId,
			ChangeSummary: "Initial upload",
		}
		return tx.Create(&version).Error
	})
	if err != nil {
		log.Printf("Error creating document metadata: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save document!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Document uploaded successfully!", doc)
}

// ListDocuments searches the document library
func ListDocuments(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	query := db.Model(&models.Document{}).Where("is_deleted = false")

	if search := c.Query("search"); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(keywords) LIKE ?", term, term)
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if c.Query("mine") == "true" {
		query = query.Where("owner_id = ?", c.Locals("userId").(uint))
	}

	var total int64
	query.Count(&total)

	var documents []models.Document
	if err := query.
		Preload("Category").
		Order("updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&documents).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch documents!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Documents fetched!", fiber.Map{
		"documents": documents,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetDocument returns one document with its versions
func GetDocument(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	var doc models.Document
	if err := database.Database.Db.
		Preload("Category").
		Preload("Versions", func(db *gorm.DB) *gorm.DB { return db.Order("version_number DESC") }).
		Where("id = ? AND is_deleted = false", id).
		First(&doc).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document fetched!", doc)
}

// UpdateDocument edits document metadata
func UpdateDocument(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	reqData, ok := c.Locals("validatedUpdateDocument").(*struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		CategoryID  *uint   `json:"categoryId"`
		Keywords    *string `json:"keywords"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var doc models.Document
	if err := db.Where("id = ? AND is_deleted = false", id).First(&doc).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != nil {
		updates["name"] = *reqData.Name
	}
	if reqData.Description != nil {
		updates["description"] = *reqData.Description
	}
	if reqData.CategoryID != nil {
		updates["category_id"] = *reqData.CategoryID
	}
	if reqData.Keywords != nil {
		updates["keywords"] = *reqData.Keywords
	}

	if len(updates) > 0 {
		if err := db.Model(&doc).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update document!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document updated successfully!", doc)
}

// DeleteDocument removes a document and its versions. Metadata rows go
// first; blobs are removed only after the database delete succeeded, so a
// failure can orphan a blob but never dangle a row.
func DeleteDocument(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	db := database.Database.Db

	var doc models.Document
	if err := db.Preload("Versions").Where("id = ? AND is_deleted = false", id).First(&doc).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
	}

	paths := []string{doc.FilePath}
	for _, version := range doc.Versions {
		paths = append(paths, version.FilePath)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("document_id = ?", doc.ID).Delete(&models.DocumentVersion{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&doc).Error
	})
	if err != nil {
		log.Printf("Error deleting document %d: %v", doc.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete document!", nil)
	}

	for _, path := range paths {
		if err := utils.RemoveStoredFile(path); err != nil {
			log.Printf("Error removing stored file %s: %v", path, err)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document deleted successfully!", nil)
}

// ListCategories returns all document categories
func ListCategories(c *fiber.Ctx) error {
	var categories []models.DocumentCategory
	if err := database.Database.Db.Where("is_deleted = false").Order("name ASC").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched!", categories)
}

// CreateCategory adds a document category
func CreateCategory(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCreateCategory").(*struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("name = ? AND is_deleted = false", reqData.Name).First(&models.DocumentCategory{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := models.DocumentCategory{
		Name:        reqData.Name,
		Description: reqData.Description,
	}
	if err := db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}
