package registrationController

import (
	"fmt"
	"log"
	"time"

	"tashil/database"
	"tashil/middleware"
	"tashil/models"
	"tashil/models/registration"
	"tashil/utils"

	"github.com/gofiber/fiber/v2"
)

// ListPendingRequests lists requests awaiting review, oldest first
func ListPendingRequests(c *fiber.Ctx) error {
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

	query := db.Model(&registration.RegistrationRequest{}).
		Where("status = ? AND is_deleted = false", registration.StatusPending)

	var total int64
	query.Count(&total)

	var requests []registration.RegistrationRequest
	if err := db.
		Preload("Documents").
		Where("status = ? AND is_deleted = false", registration.StatusPending).
		Order("submitted_at ASC").
		Offset(offset).Limit(limit).
		Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending requests!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending requests fetched!", fiber.Map{
		"requests": requests,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// ApproveRequest approves a pending registration request. The status flip is
// a conditional update keyed on the PENDING precondition, so of two
// concurrent decisions on the same request only the first one commits.
func ApproveRequest(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedApproveRequest").(*struct {
		RequestID uint   `json:"requestId"`
		Notes     string `json:"notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request registration.RegistrationRequest
	if err := db.Where("id = ? AND is_deleted = false", reqData.RequestID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	prior := request

	now := time.Now()
	result := db.Model(&registration.RegistrationRequest{}).
		Where("id = ? AND status = ? AND is_deleted = false", request.ID, registration.StatusPending).
		Updates(map[string]interface{}{
			"status":      registration.StatusApproved,
			"reviewed_by": userId,
			"reviewed_at": now,
			"notes":       reqData.Notes,
		})
	if result.Error != nil {
		log.Printf("Error approving request %d: %v", request.ID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve request!", nil)
	}
	if result.RowsAffected == 0 {
		// Already decided, or a concurrent reviewer won the race
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request is not pending review!", nil)
	}

	if err := db.Where("id = ?", request.ID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load approved request!", nil)
	}

	recordHistory(request.ID, registration.ActionApproved, userId, registration.ActorReviewer, reqData.Notes, prior)

	// Post-commit side effects are best-effort
	requestID := request.ID
	utils.CreateNotification(request.SubmittedBy, models.NotifRequestApproved,
		"Request approved",
		fmt.Sprintf("Your registration request %s has been approved.", request.RequestNumber),
		nil, &requestID)

	var applicant models.User
	if err := db.Where("id = ?", request.SubmittedBy).First(&applicant).Error; err == nil {
		utils.SendRequestApprovedEmail(applicant.Email, applicant.Name, request.RequestNumber)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request approved successfully!", request)
}

// RejectRequest rejects a pending registration request with a mandatory
// reason. Same conditional-update contract as ApproveRequest.
func RejectRequest(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedRejectRequest").(*struct {
		RequestID uint   `json:"requestId"`
		Reason    string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request registration.RegistrationRequest
	if err := db.Where("id = ? AND is_deleted = false", reqData.RequestID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	prior := request

	now := time.Now()
	result := db.Model(&registration.RegistrationRequest{}).
		Where("id = ? AND status = ? AND is_deleted = false", request.ID, registration.StatusPending).
		Updates(map[string]interface{}{
			"status":           registration.StatusRejected,
			"reviewed_by":      userId,
			"reviewed_at":      now,
			"rejection_reason": reqData.Reason,
		})
	if result.Error != nil {
		log.Printf("Error rejecting request %d: %v", request.ID, result.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reject request!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request is not pending review!", nil)
	}

	if err := db.Where("id = ?", request.ID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load rejected request!", nil)
	}

	recordHistory(request.ID, registration.ActionRejected, userId, registration.ActorReviewer, reqData.Reason, prior)

	requestID := request.ID
	utils.CreateNotification(request.SubmittedBy, models.NotifRequestRejected,
		"Request rejected",
		fmt.Sprintf("Your registration request %s was rejected: %s", request.RequestNumber, reqData.Reason),
		nil, &requestID)

	var applicant models.User
	if err := db.Where("id = ?", request.SubmittedBy).First(&applicant).Error; err == nil {
		utils.SendRequestRejectedEmail(applicant.Email, applicant.Name, request.RequestNumber, reqData.Reason)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Request rejected!", request)
}

// ReviewDocument marks an attached document slot as verified or rejected
func ReviewDocument(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedReviewDocument").(*struct {
		RequestID uint   `json:"requestId"`
		Slot      string `json:"slot"`
		Verified  bool   `json:"verified"`
		Reason    string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var request registration.RegistrationRequest
	if err := db.Where("id = ? AND is_deleted = false", reqData.RequestID).First(&request).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Request not found!", nil)
	}

	var doc registration.RequestDocument
	if err := db.Where("request_id = ? AND slot = ?", request.ID, reqData.Slot).First(&doc).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Document slot is not filled!", nil)
	}

	if err := db.Model(&doc).Update("verified", reqData.Verified).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update document!", nil)
	}

	requestID := request.ID
	if reqData.Verified {
		recordHistory(request.ID, registration.ActionDocumentVerified, userId, registration.ActorReviewer,
			fmt.Sprintf("Document %s verified", reqData.Slot), nil)
	} else {
		recordHistory(request.ID, registration.ActionDocumentRejected, userId, registration.ActorReviewer, reqData.Reason, nil)
		utils.CreateNotification(request.SubmittedBy, models.NotifDocumentRejected,
			"Document rejected",
			fmt.Sprintf("The %s document on request %s was rejected: %s", reqData.Slot, request.RequestNumber, reqData.Reason),
			nil, &requestID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Document review saved!", doc)
}
