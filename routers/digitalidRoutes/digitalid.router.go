package digitalidRoutes

import (
	digitalidController "tashil/controllers/digitalid"
	"tashil/middleware"
	"tashil/models"
	digitalidValidator "tashil/validators/digitalid"

	"github.com/gofiber/fiber/v2"
)

func SetupDigitalIDRoutes(app *fiber.App) {
	idGroup := app.Group("/digital-ids")

	idGroup.Get("/", middleware.JWTMiddleware, digitalidController.ListDigitalIDs)
	idGroup.Get("/:id", middleware.JWTMiddleware, digitalidController.GetDigitalID)

	idGroup.Post("/generate", digitalidValidator.GenerateID(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermPrintDigitalID), digitalidController.GenerateDigitalID)
	idGroup.Post("/print", digitalidValidator.PrintIDs(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermPrintDigitalID), digitalidController.PrintDigitalIDs)
	idGroup.Post("/collect", digitalidValidator.CollectID(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermPrintDigitalID), digitalidController.CollectDigitalID)
}
