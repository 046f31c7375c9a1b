package documentController

import (
	"log"

	"tashil/config"
	"tashil/database"
	"tashil/middleware"
	"tashil/models"
	"tashil/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateVersion uploads a new version of an existing document. The version
// number is computed inside the same transaction that inserts the row and
// swaps the parent document's current file pointer, so concurrent uploads
// never end up sharing a number.
func CreateVersion(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	db := database.Database.Db

	var doc models.Document
	if err := db.Where("id = ? AND is_deleted = false", id).First(&doc).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document file is required!", nil)
	}

	filePath, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir+"/documents")
	if err != nil {
		log.Printf("Error storing document version: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store document. Please try again.", nil)
	}

	version := models.DocumentVersion{
		DocumentID:    doc.ID,
		FilePath:      filePath,
		FileType:      file.Header.Get("Content-Type"),
		FileSize:      file.Size,
		CreatedBy:     userId,
		ChangeSummary: c.FormValue("changeSummary"),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		if err := tx.Model(&models.DocumentVersion{}).
			Where("document_id = ?", doc.ID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}
		version.VersionNumber = maxVersion + 1

		if err := tx.Create(&version).Error; err != nil {
			return err
		}

		return tx.Model(&models.Document{}).
			Where("id = ?", doc.ID).
			Updates(map[string]interface{}{
				"file_path":       version.FilePath,
				"file_type":       version.FileType,
				"file_size":       version.FileSize,
				"current_version": version.VersionNumber,
			}).Error
	})
	if err != nil {
		log.Printf("Error creating version for document %d: %v", doc.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create document version!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Document version created!", version)
}

// ListVersions returns a document's version history, newest first
func ListVersions(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid document ID!", nil)
	}

	db := database.Database.Db

	var doc models.Document
	if err := db.Where("id = ? AND is_deleted = false", id).First(&doc).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document not found!", nil)
	}

	var versions []models.DocumentVersion
	if err := db.Where("document_id = ?", doc.ID).Order("version_number DESC").Find(&versions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch versions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Versions fetched!", versions)
}
