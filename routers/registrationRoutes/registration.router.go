package registrationRoutes

import (
	registrationController "tashil/controllers/registration"
	"tashil/middleware"
	"tashil/models"
	registrationValidator "tashil/validators/registration"

	"github.com/gofiber/fiber/v2"
)

func SetupRegistrationRoutes(app *fiber.App) {
	requestGroup := app.Group("/requests")

	// Applicant routes
	requestGroup.Post("/", registrationValidator.SubmitRequest(), middleware.JWTMiddleware, registrationController.SubmitRequest)
	requestGroup.Get("/", middleware.JWTMiddleware, registrationController.ListRequests)
	requestGroup.Get("/:id", middleware.JWTMiddleware, registrationController.GetRequest)
	requestGroup.Post("/:id/documents", middleware.JWTMiddleware, registrationController.AttachDocument)
	requestGroup.Get("/:id/documents", middleware.JWTMiddleware, registrationController.ListRequestDocuments)

	// Reviewer routes
	adminGroup := requestGroup.Group("/admin")
	adminGroup.Get("/pending", middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermApproveRegistration), registrationController.ListPendingRequests)
	adminGroup.Post("/approve", registrationValidator.ApproveRequest(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermApproveRegistration), registrationController.ApproveRequest)
	adminGroup.Post("/reject", registrationValidator.RejectRequest(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermApproveRegistration), registrationController.RejectRequest)
	adminGroup.Post("/review-document", registrationValidator.ReviewDocument(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermApproveRegistration), registrationController.ReviewDocument)
}
