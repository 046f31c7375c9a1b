package digitalidController

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"tashil/database"
	"tashil/middleware"
	"tashil/models"
	"tashil/models/registration"
	"tashil/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GenerateDigitalID issues a digital ID for an approved registration
// request. Issuing twice for the same request returns the existing ID.
func GenerateDigitalID(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedGenerateID").(*struct {
		RequestID uint `json:"requestId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request registration.RegistrationRequest
	if err := db.Where("id = ? AND is_deleted = false", reqData.RequestID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	if request.Status != registration.StatusApproved {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Digital IDs can only be issued for approved requests!", nil)
	}

	var existing registration.DigitalID
	if err := db.Where("request_id = ? AND is_deleted = false", request.ID).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Digital ID already issued!", existing)
	}

	var companyName string
	if request.CompanyID != nil {
		var company models.Company
		if err := db.Where("id = ?", *request.CompanyID).First(&company).Error; err == nil {
			companyName = company.Name
		}
	}

	var photoPath string
	var photo registration.RequestDocument
	if err := db.Where("request_id = ? AND slot = ?", request.ID, registration.SlotPersonalPhoto).First(&photo).Error; err == nil {
		photoPath = photo.FilePath
	}

	issueDate := time.Now()
	expiryDate := registration.ExpiryFromIssue(issueDate)

	payload, err := json.Marshal(fiber.Map{
		"requestNumber": request.RequestNumber,
		"name":          request.SubjectName,
		"nationalId":    request.NationalID,
		"company":       companyName,
		"issued":        issueDate.Format("2006-01-02"),
		"expires":       expiryDate.Format("2006-01-02"),
	})
	if err != nil {
		log.Printf("Error encoding QR payload for request %d: %v", request.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate digital ID!", nil)
	}

	digitalID := registration.DigitalID{
		RequestID:   request.ID,
		FullName:    request.SubjectName,
		NationalID:  request.NationalID,
		CompanyName: companyName,
		Position:    request.Position,
		PhotoPath:   photoPath,
		QRPayload:   string(payload),
		IssueDate:   issueDate,
		ExpiryDate:  expiryDate,
	}

	if err := db.Create(&digitalID).Error; err != nil {
		log.Printf("Error saving digital ID for request %d: %v", request.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate digital ID!", nil)
	}

	history := registration.RequestHistory{
		RequestID: request.ID,
		Action:    registration.ActionIDGenerated,
		ActorID:   userId,
		ActorType: registration.ActorReviewer,
		Comments:  fmt.Sprintf("Digital ID issued, valid until %s", expiryDate.Format("2006-01-02")),
	}
	if err := db.Create(&history).Error; err != nil {
		log.Printf("Error recording history for request %d: %v", request.ID, err)
	}

	requestID := request.ID
	utils.CreateNotification(request.SubmittedBy, models.NotifIDGenerated,
		"Digital ID ready",
		fmt.Sprintf("The digital ID for request %s has been issued.", request.RequestNumber),
		nil, &requestID)

	var applicant models.User
	if err := db.Where("id = ?", request.SubmittedBy).First(&applicant).Error; err == nil {
		utils.SendDigitalIDReadyEmail(applicant.Email, applicant.Name, request.RequestNumber, expiryDate)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Digital ID generated successfully!", digitalID)
}

// PrintDigitalIDs marks a batch of IDs as printed. Already-printed IDs in
// the batch are skipped, not failed.
func PrintDigitalIDs(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedPrintIDs").(*struct {
		IDs []uint `json:"ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Each ID flips conditionally; history rows are written only for the
	// flips this caller actually committed
	now := time.Now()
	var printedCount int64
	for _, id := range reqData.IDs {
		result := db.Model(&registration.DigitalID{}).
			Where("id = ? AND printed = false AND is_deleted = false", id).
			Updates(map[string]interface{}{
				"printed":    true,
				"printed_at": now,
			})
		if result.Error != nil {
			log.Printf("Error printing digital ID %d: %v", id, result.Error)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark IDs as printed!", nil)
		}
		if result.RowsAffected == 0 {
			continue
		}
		printedCount++

		var digitalID registration.DigitalID
		if err := db.First(&digitalID, id).Error; err != nil {
			continue
		}
		history := registration.RequestHistory{
			RequestID: digitalID.RequestID,
			Action:    registration.ActionIDPrinted,
			ActorID:   userId,
			ActorType: registration.ActorReviewer,
			Comments:  "Digital ID card printed",
		}
		if err := db.Create(&history).Error; err != nil {
			log.Printf("Error recording print history for request %d: %v", digitalID.RequestID, err)
		}
	}

	var printed []registration.DigitalID
	if err := db.Where("id IN ?", reqData.IDs).Find(&printed).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load printed IDs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "IDs marked as printed!", fiber.Map{
		"requested": len(reqData.IDs),
		"printed":   printedCount,
		"ids":       printed,
	})
}

// CollectDigitalID records the physical card hand-over. Only printed cards
// can be collected, and collection happens once.
func CollectDigitalID(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCollectID").(*struct {
		DigitalIDID   uint   `json:"digitalIdId"`
		CollectorName string `json:"collectorName"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var digitalID registration.DigitalID
	if err := db.Where("id = ? AND is_deleted = false", reqData.DigitalIDID).First(&digitalID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Digital ID not found!", nil)
	}

	if !digitalID.Printed {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Card has not been printed yet!", nil)
	}
	if digitalID.CollectedAt != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Card has already been collected!", nil)
	}

	// The hand-over commits conditionally, so of two concurrent collectors
	// only the first one writes
	now := time.Now()
	result := db.Model(&registration.DigitalID{}).
		Where("id = ? AND printed = true AND collected_at IS NULL AND is_deleted = false", digitalID.ID).
		Updates(map[string]interface{}{
			"collected_at":   now,
			"collector_name": reqData.CollectorName,
		})
	if result.Error != nil {
		log.Printf("Error recording collection for digital ID %d: %v", digitalID.ID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record collection!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Card has already been collected!", nil)
	}

	if err := db.First(&digitalID, digitalID.ID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load collected ID!", nil)
	}

	history := registration.RequestHistory{
		RequestID: digitalID.RequestID,
		Action:    registration.ActionIDCollected,
		ActorID:   userId,
		ActorType: registration.ActorReviewer,
		Comments:  fmt.Sprintf("Card collected by %s", reqData.CollectorName),
	}
	if err := db.Create(&history).Error; err != nil {
		log.Printf("Error recording collection history for request %d: %v", digitalID.RequestID, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Collection recorded!", digitalID)
}

// ListDigitalIDs lists issued IDs with printing/collection/expiry filters
func ListDigitalIDs(c *fiber.Ctx) error {
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

	query := db.Model(&registration.DigitalID{}).Where("is_deleted = false")

	if printed := c.Query("printed"); printed != "" {
		query = query.Where("printed = ?", printed == "true")
	}
	if collected := c.Query("collected"); collected != "" {
		if collected == "true" {
			query = query.Where("collected_at IS NOT NULL")
		} else {
			query = query.Where("collected_at IS NULL")
		}
	}
	if c.Query("expired") == "true" {
		query = query.Where("expiry_date < ?", time.Now())
	}
	if search := c.Query("search"); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(national_id) LIKE ?", term, term)
	}

	var total int64
	query.Count(&total)

	var ids []registration.DigitalID
	if err := query.
		Order("issue_date DESC").
		Offset(offset).Limit(limit).
		Find(&ids).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch digital IDs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Digital IDs fetched!", fiber.Map{
		"ids": ids,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetDigitalID returns one issued ID by its request
func GetDigitalID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid digital ID!", nil)
	}

	var digitalID registration.DigitalID
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", id).First(&digitalID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Digital ID not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch digital ID!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Digital ID fetched!", digitalID)
}
