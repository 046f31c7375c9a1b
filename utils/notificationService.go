package utils

import (
	"encoding/json"
	"log"

	"tashil/database"
	"tashil/models"

	"gorm.io/datatypes"
)

// CreateNotification inserts one in-app notification row. Workflow callers
// invoke it at most once per logical event, after the triggering mutation
// has committed: a failure here is logged and never rolls the caller back.
func CreateNotification(recipientID uint, ntype, title, message string, metadata map[string]interface{}, requestID *uint) *models.Notification {
	notification := models.Notification{
		RecipientID: recipientID,
		Type:        ntype,
		Title:       title,
		Message:     message,
		RequestID:   requestID,
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			log.Printf("[NOTIFICATION] Failed to encode metadata for %s to user %d: %v", ntype, recipientID, err)
		} else {
			notification.Metadata = datatypes.JSON(raw)
		}
	}

	if err := database.Database.Db.Create(&notification).Error; err != nil {
		log.Printf("[NOTIFICATION] Failed to create %s notification for user %d: %v", ntype, recipientID, err)
		return nil
	}

	return &notification
}

// NotifyReviewers fans one notification out to every user holding the
// approval permission. Best-effort like CreateNotification.
func NotifyReviewers(ntype, title, message string, requestID *uint) {
	var reviewerIDs []uint
	if err := database.Database.Db.Model(&models.Permission{}).
		Where("permission = ? AND is_deleted = false", models.PermApproveRegistration).
		Distinct().
		Pluck("user_id", &reviewerIDs).Error; err != nil {
		log.Printf("[NOTIFICATION] Failed to resolve reviewers: %v", err)
		return
	}

	for _, id := range reviewerIDs {
		CreateNotification(id, ntype, title, message, nil, requestID)
	}
}
