package reportController

import (
	"time"

	"tashil/database"
	"tashil/middleware"
	"tashil/models"
	"tashil/models/registration"

	"github.com/gofiber/fiber/v2"
)

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type typeCount struct {
	RequestType string `json:"requestType"`
	Count       int64  `json:"count"`
}

// Dashboard returns the headline numbers for the admin landing page
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var byStatus []statusCount
	if err := db.Model(&registration.RegistrationRequest{}).
		Select("status, COUNT(*) as count").
		Where("is_deleted = false").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build dashboard!", nil)
	}

	var byType []typeCount
	if err := db.Model(&registration.RegistrationRequest{}).
		Select("request_type, COUNT(*) as count").
		Where("is_deleted = false").
		Group("request_type").
		Scan(&byType).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build dashboard!", nil)
	}

	var totalIDs, printedIDs, collectedIDs, expiringIDs int64
	db.Model(&registration.DigitalID{}).Where("is_deleted = false").Count(&totalIDs)
	db.Model(&registration.DigitalID{}).Where("printed = true AND is_deleted = false").Count(&printedIDs)
	db.Model(&registration.DigitalID{}).Where("collected_at IS NOT NULL AND is_deleted = false").Count(&collectedIDs)
	db.Model(&registration.DigitalID{}).
		Where("expiry_date BETWEEN ? AND ? AND is_deleted = false", time.Now(), time.Now().AddDate(0, 0, 30)).
		Count(&expiringIDs)

	var totalDocuments, totalUsers, totalCompanies int64
	db.Model(&models.Document{}).Where("is_deleted = false").Count(&totalDocuments)
	db.Model(&models.User{}).Where("is_deleted = false").Count(&totalUsers)
	db.Model(&models.Company{}).Where("is_deleted = false").Count(&totalCompanies)

	// Requests submitted in the last 7 days
	var recentRequests int64
	db.Model(&registration.RegistrationRequest{}).
		Where("submitted_at >= ? AND is_deleted = false", time.Now().AddDate(0, 0, -7)).
		Count(&recentRequests)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched!", fiber.Map{
		"requestsByStatus": byStatus,
		"requestsByType":   byType,
		"recentRequests":   recentRequests,
		"digitalIds": fiber.Map{
			"total":        totalIDs,
			"printed":      printedIDs,
			"collected":    collectedIDs,
			"expiringSoon": expiringIDs,
		},
		"documents": totalDocuments,
		"users":     totalUsers,
		"companies": totalCompanies,
	})
}

// RequestsReport lists requests filtered by a date window and status, with
// per-reviewer decision counts for the same window
func RequestsReport(c *fiber.Ctx) error {
	db := database.Database.Db

	query := db.Model(&registration.RegistrationRequest{}).Where("is_deleted = false")

	var from, to time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"from": "Date must be in YYYY-MM-DD format!",
			})
		}
		from = parsed
		query = query.Where("submitted_at >= ?", from)
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"to": "Date must be in YYYY-MM-DD format!",
			})
		}
		// Include the whole end day
		to = parsed.AddDate(0, 0, 1)
		query = query.Where("submitted_at < ?", to)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []registration.RegistrationRequest
	if err := query.Order("submitted_at DESC").Find(&requests).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}

	type reviewerCount struct {
		ReviewedBy uint   `json:"reviewedBy"`
		Status     string `json:"status"`
		Count      int64  `json:"count"`
	}
	var decisions []reviewerCount
	decisionQuery := db.Model(&registration.RegistrationRequest{}).
		Select("reviewed_by, status, COUNT(*) as count").
		Where("reviewed_by IS NOT NULL AND is_deleted = false").
		Group("reviewed_by, status")
	if !from.IsZero() {
		decisionQuery = decisionQuery.Where("reviewed_at >= ?", from)
	}
	if !to.IsZero() {
		decisionQuery = decisionQuery.Where("reviewed_at < ?", to)
	}
	if err := decisionQuery.Scan(&decisions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to build report!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Report generated!", fiber.Map{
		"total":     len(requests),
		"requests":  requests,
		"decisions": decisions,
	})
}
