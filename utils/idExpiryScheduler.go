package utils

import (
	"fmt"
	"log"
	"time"

	"tashil/database"
	"tashil/models"
	"tashil/models/registration"

	"github.com/robfig/cron/v3"
)

// InitializeIDExpiryScheduler sets up the daily maintenance jobs
func InitializeIDExpiryScheduler() {
	log.Println("[ID-SCHEDULER] Initializing digital ID scheduler...")

	c := cron.New()

	// Run daily at 8 AM to flag expiring IDs and nudge stale requests
	c.AddFunc("0 8 * * *", func() {
		log.Println("[ID-SCHEDULER] Running daily maintenance...")
		ProcessExpiringIDs()
		RemindStalePendingRequests()
	})

	c.Start()
	log.Println("[ID-SCHEDULER] Scheduler started - runs daily at 8 AM")
}

// ProcessExpiringIDs sends reminders for digital IDs expiring within 30 days
func ProcessExpiringIDs() {
	db := database.Database.Db
	now := time.Now()
	cutoff := now.AddDate(0, 0, 30)

	var expiring []registration.DigitalID
	if err := db.
		Where("expiry_reminder_sent = false AND is_deleted = false").
		Where("expiry_date BETWEEN ? AND ?", now, cutoff).
		Find(&expiring).Error; err != nil {
		log.Printf("[ID-SCHEDULER] Error fetching expiring IDs: %v", err)
		return
	}

	log.Printf("[ID-SCHEDULER] Found %d digital IDs expiring soon", len(expiring))

	for _, id := range expiring {
		var request registration.RegistrationRequest
		if err := db.Where("id = ?", id.RequestID).First(&request).Error; err != nil {
			log.Printf("[ID-SCHEDULER] Error fetching request %d: %v", id.RequestID, err)
			continue
		}

		var applicant models.User
		if err := db.Where("id = ?", request.SubmittedBy).First(&applicant).Error; err == nil {
			SendIDExpiryReminderEmail(applicant.Email, applicant.Name, id.ExpiryDate)
		}

		requestID := id.RequestID
		CreateNotification(request.SubmittedBy, models.NotifAdminAlert,
			"Digital ID expiring soon",
			fmt.Sprintf("The digital ID for request %s expires on %s.", request.RequestNumber, id.ExpiryDate.Format("2006-01-02")),
			nil, &requestID)

		db.Model(&id).Update("expiry_reminder_sent", true)
		log.Printf("[ID-SCHEDULER] Sent expiry reminder for digital ID %d", id.ID)
	}
}

// RemindStalePendingRequests alerts reviewers about requests pending for more
// than 7 days, and tells applicants which required documents are still
// missing after 3 days.
func RemindStalePendingRequests() {
	db := database.Database.Db
	now := time.Now()

	var stale []registration.RegistrationRequest
	if err := db.
		Where("status = ? AND reminder_sent = false AND is_deleted = false", registration.StatusPending).
		Where("submitted_at < ?", now.AddDate(0, 0, -7)).
		Find(&stale).Error; err != nil {
		log.Printf("[ID-SCHEDULER] Error fetching stale requests: %v", err)
		return
	}

	for _, request := range stale {
		requestID := request.ID
		NotifyReviewers(models.NotifAdminAlert,
			"Request pending review",
			fmt.Sprintf("Request %s has been pending for more than 7 days.", request.RequestNumber),
			&requestID)

		db.Model(&request).Update("reminder_sent", true)
	}

	if len(stale) > 0 {
		log.Printf("[ID-SCHEDULER] Nudged reviewers about %d stale requests", len(stale))
	}

	// Missing-document reminders for requests older than 3 days, once per
	// request
	var waiting []registration.RegistrationRequest
	if err := db.
		Preload("Documents").
		Where("status = ? AND missing_docs_notified = false AND is_deleted = false", registration.StatusPending).
		Where("submitted_at < ?", now.AddDate(0, 0, -3)).
		Find(&waiting).Error; err != nil {
		log.Printf("[ID-SCHEDULER] Error fetching waiting requests: %v", err)
		return
	}

	for _, request := range waiting {
		filled := make(map[string]bool, len(request.Documents))
		for _, doc := range request.Documents {
			filled[doc.Slot] = true
		}

		var missing []string
		for _, slot := range registration.RequiredSlots(request.RequestType) {
			if !filled[slot] {
				missing = append(missing, slot)
			}
		}
		if len(missing) == 0 {
			continue
		}

		requestID := request.ID
		CreateNotification(request.SubmittedBy, models.NotifMissingDocuments,
			"Documents missing",
			fmt.Sprintf("Request %s is missing required documents: %v", request.RequestNumber, missing),
			map[string]interface{}{"missingSlots": missing}, &requestID)

		db.Model(&request).Update("missing_docs_notified", true)
	}
}
