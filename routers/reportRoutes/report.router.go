package reportRoutes

import (
	reportController "tashil/controllers/report"
	"tashil/middleware"
	"tashil/models"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App) {
	reportGroup := app.Group("/reports")

	reportGroup.Get("/dashboard", middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermViewReports), reportController.Dashboard)
	reportGroup.Get("/requests", middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermViewReports), reportController.RequestsReport)
}
