package notificationRoutes

import (
	notificationController "tashil/controllers/notification"
	"tashil/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App) {
	notificationGroup := app.Group("/notifications")

	notificationGroup.Get("/", middleware.JWTMiddleware, notificationController.ListNotifications)
	notificationGroup.Get("/unread-count", middleware.JWTMiddleware, notificationController.UnreadCount)
	notificationGroup.Patch("/read-all", middleware.JWTMiddleware, notificationController.MarkAllRead)
	notificationGroup.Patch("/:id/read", middleware.JWTMiddleware, notificationController.MarkRead)
}
