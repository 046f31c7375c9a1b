package notificationController

import (
	"time"

	"tashil/database"
	"tashil/middleware"
	"tashil/models"

	"github.com/gofiber/fiber/v2"
)

// ListNotifications returns the authenticated user's notifications,
// newest first. Pass unread=true to only see unread ones.
func ListNotifications(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

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

	query := db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_deleted = false", userId)

	if c.Query("unread") == "true" {
		query = query.Where("is_read = false")
	}

	var total int64
	query.Count(&total)

	var notifications []models.Notification
	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched!", fiber.Map{
		"notifications": notifications,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// UnreadCount returns how many unread notifications the user has
func UnreadCount(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var count int64
	if err := database.Database.Db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false AND is_deleted = false", userId).
		Count(&count).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to count notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unread count fetched!", fiber.Map{
		"unread": count,
	})
}

// MarkRead marks one notification as read. Only the recipient may do so.
func MarkRead(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid notification ID!", nil)
	}

	db := database.Database.Db

	var notification models.Notification
	if err := db.Where("id = ? AND is_deleted = false", id).First(&notification).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Notification not found!", nil)
	}

	if notification.RecipientID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot modify this notification!", nil)
	}

	if !notification.IsRead {
		now := time.Now()
		if err := db.Model(&notification).Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notification!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notification marked as read!", notification)
}

// MarkAllRead marks every unread notification of the user as read
func MarkAllRead(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	now := time.Now()
	result := database.Database.Db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = false AND is_deleted = false", userId).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": now,
		})
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "All notifications marked as read!", fiber.Map{
		"updated": result.RowsAffected,
	})
}
