package registrationController

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"tashil/config"
	"tashil/database"
	"tashil/middleware"
	"tashil/models"
	"tashil/models/registration"
	"tashil/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// recordHistory appends one audit row for a request. Snapshot should carry
// the request state prior to the action.
func recordHistory(requestID uint, action string, actorID uint, actorType, comments string, snapshot interface{}) {
	var raw datatypes.JSON
	if snapshot != nil {
		encoded, err := json.Marshal(snapshot)
		if err != nil {
			log.Printf("Error encoding history snapshot for request %d: %v", requestID, err)
		} else {
			raw = datatypes.JSON(encoded)
		}
	}

	history := registration.RequestHistory{
		RequestID: requestID,
		Action:    action,
		ActorID:   actorID,
		ActorType: actorType,
		Comments:  comments,
		Snapshot:  raw,
	}
	if err := database.Database.Db.Create(&history).Error; err != nil {
		log.Printf("Error recording history for request %d: %v", requestID, err)
	}
}

func newRequestNumber() string {
	return "REQ-" + strings.ToUpper(uuid.NewString()[:8])
}

// SubmitRequest creates a new registration request in PENDING state
func SubmitRequest(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedSubmitRequest").(*struct {
		RequestType string `json:"requestType"`
		SubjectName string `json:"subjectName"`
		NationalID  string `json:"nationalId"`
		CompanyID   *uint  `json:"companyId"`
		Position    string `json:"position"`
		Phone       string `json:"phone"`
		Notes       string `json:"notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Employee requests must reference an existing company
	if reqData.RequestType == registration.TypeEmployee {
		var company models.Company
		if err := db.Where("id = ? AND is_deleted = false", *reqData.CompanyID).First(&company).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Company not found!", nil)
		}
	}

	// Civil registry lookup, best-effort
	valid, err := utils.VerifyNationalID(reqData.NationalID)
	if err != nil {
		log.Printf("Registry lookup error for %s: %v", reqData.NationalID, err)
	}
	if !valid {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"nationalId": "National ID was not found in the civil registry!",
		})
	}

	request := registration.RegistrationRequest{
		RequestNumber: newRequestNumber(),
		RequestType:   reqData.RequestType,
		SubmittedBy:   userId,
		SubjectName:   reqData.SubjectName,
		NationalID:    reqData.NationalID,
		CompanyID:     reqData.CompanyID,
		Position:      reqData.Position,
		Phone:         reqData.Phone,
		Status:        registration.StatusPending,
		SubmittedAt:   time.Now(),
		Notes:         reqData.Notes,
	}

	if err := db.Create(&request).Error; err != nil {
		log.Printf("Error creating registration request: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit request!", nil)
	}

	recordHistory(request.ID, registration.ActionSubmitted, userId, registration.ActorApplicant, "Request submitted", nil)

	// Best-effort notifications, never roll back the submission
	requestID := request.ID
	utils.CreateNotification(userId, models.NotifRequestSubmitted,
		"Request submitted",
		fmt.Sprintf("Your registration request %s has been submitted and is pending review.", request.RequestNumber),
		nil, &requestID)
	utils.NotifyReviewers(models.NotifAdminAlert,
		"New registration request",
		fmt.Sprintf("Request %s (%s) is awaiting review.", request.RequestNumber, request.RequestType),
		&requestID)

	var submitter models.User
	if err := db.Where("id = ?", userId).First(&submitter).Error; err == nil {
		utils.SendRequestSubmittedEmail(submitter.Email, submitter.Name, request.RequestNumber)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Request submitted successfully!", request)
}

// ListRequests lists registration requests with optional status filter and
// case-insensitive search over subject name, national ID and request number
func ListRequests(c *fiber.Ctx) error {
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

	query := db.Model(&registration.RegistrationRequest{}).Where("is_deleted = false")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", strings.ToUpper(status))
	}
	if requestType := c.Query("type"); requestType != "" {
		query = query.Where("request_type = ?", strings.ToUpper(requestType))
	}
	if search := c.Query("search"); search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(subject_name) LIKE ? OR LOWER(national_id) LIKE ? OR LOWER(request_number) LIKE ?", term, term, term)
	}

	var total int64
	query.Count(&total)

	var requests []registration.RegistrationRequest
	if err := query.
		Order("submitted_at DESC").
		Offset(offset).Limit(limit).
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Requests fetched!", fiber.Map{
		"requests": requests,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetRequest returns one registration request with documents and history
func GetRequest(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request ID!", nil)
	}

	var request registration.RegistrationRequest
	if err := database.Database.Db.
		Preload("Documents").
		Preload("History").
		Preload("DigitalID").
		Where("id = ? AND is_deleted = false", id).
		First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request fetched!", request)
}

// AttachDocument uploads a file into a named document slot on a request.
// Re-attaching a slot replaces the previous file.
func AttachDocument(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request ID!", nil)
	}

	db := database.Database.Db

	var request registration.RegistrationRequest
	if err := db.Where("id = ? AND is_deleted = false", id).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	if request.Status != registration.StatusPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request has already been reviewed!", nil)
	}

	slot := c.FormValue("slot")
	if !registration.KnownSlot(request.RequestType, slot) {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown document slot for this request type!", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Document file is required!", nil)
	}

	destDir := fmt.Sprintf("%s/requests/%d", config.AppConfig.UploadDir, request.ID)
	filePath, err := utils.SaveUploadedFile(file, destDir)
	if err != nil {
		log.Printf("Error storing document for request %d: %v", request.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store document. Please try again.", nil)
	}

	doc := registration.RequestDocument{
		RequestID:  request.ID,
		Slot:       slot,
		FilePath:   filePath,
		FileType:   file.Header.Get("Content-Type"),
		FileSize:   file.Size,
		UploadedBy: userId,
	}

	// Try the insert first. A unique violation on the request/slot index
	// means the slot is already filled, either from before or by a
	// concurrent first attach we lost to; both cases become a replace.
	var previous registration.RequestDocument
	replaced := false
	if err := db.Create(&doc).Error; err != nil {
		if db.Where("request_id = ? AND slot = ?", request.ID, slot).First(&previous).Error != nil {
			log.Printf("Error attaching document to request %d: %v", request.ID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach document!", nil)
		}

		replaced = true
		doc.ID = previous.ID
		doc.CreatedAt = previous.CreatedAt
		if err := db.Save(&doc).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to attach document!", nil)
		}
		// Old blob is only removed after the row update succeeded
		if err := utils.RemoveStoredFile(previous.FilePath); err != nil {
			log.Printf("Error removing replaced file %s: %v", previous.FilePath, err)
		}
	}

	var snapshot interface{}
	if replaced {
		snapshot = previous
	}
	recordHistory(request.ID, registration.ActionDocumentAttached, userId, registration.ActorApplicant,
		fmt.Sprintf("Document attached to slot %s", slot), snapshot)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document attached!", doc)
}

// ListRequestDocuments returns the filled slots of a request plus the
// required slots still missing
func ListRequestDocuments(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request ID!", nil)
	}

	db := database.Database.Db

	var request registration.RegistrationRequest
	if err := db.Preload("Documents").Where("id = ? AND is_deleted = false", id).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	filled := make(map[string]bool, len(request.Documents))
	for _, doc := range request.Documents {
		filled[doc.Slot] = true
	}

	missing := []string{}
	for _, slot := range registration.RequiredSlots(request.RequestType) {
		if !filled[slot] {
			missing = append(missing, slot)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Documents fetched!", fiber.Map{
		"documents":    request.Documents,
		"missingSlots": missing,
	})
}
