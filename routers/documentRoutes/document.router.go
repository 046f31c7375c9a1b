package documentRoutes

import (
	documentController "tashil/controllers/document"
	"tashil/middleware"
	"tashil/models"
	documentValidator "tashil/validators/document"

	"github.com/gofiber/fiber/v2"
)

func SetupDocumentRoutes(app *fiber.App) {
	documentGroup := app.Group("/documents")

	documentGroup.Get("/", middleware.JWTMiddleware, documentController.ListDocuments)
	documentGroup.Get("/categories", middleware.JWTMiddleware, documentController.ListCategories)
	documentGroup.Get("/:id", middleware.JWTMiddleware, documentController.GetDocument)
	documentGroup.Get("/:id/versions", middleware.JWTMiddleware, documentController.ListVersions)

	// Library management
	documentGroup.Post("/", middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermManageDocuments), documentController.UploadDocument)
	documentGroup.Patch("/:id", documentValidator.UpdateDocument(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermManageDocuments), documentController.UpdateDocument)
	documentGroup.Delete("/:id", middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermManageDocuments), documentController.DeleteDocument)
	documentGroup.Post("/:id/versions", middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermManageDocuments), documentController.CreateVersion)
	documentGroup.Post("/categories", documentValidator.CreateCategory(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermManageDocuments), documentController.CreateCategory)
}
