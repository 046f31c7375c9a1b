package roleRoutes

import (
	roleController "tashil/controllers/role"
	"tashil/middleware"
	"tashil/models"
	roleValidator "tashil/validators/role"

	"github.com/gofiber/fiber/v2"
)

func SetupRoleRoutes(app *fiber.App) {
	roleGroup := app.Group("/roles")

	roleGroup.Get("/", middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermManageRoles), roleController.ListRoles)
	roleGroup.Post("/", roleValidator.CreateRole(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermManageRoles), roleController.CreateRole)
	roleGroup.Patch("/:id", roleValidator.UpdateRole(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermManageRoles), roleController.UpdateRole)
	roleGroup.Delete("/:id", middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermManageRoles), roleController.DeleteRole)
	roleGroup.Post("/assign", roleValidator.AssignRole(), middleware.JWTMiddleware,
		middleware.CheckPermissionMiddleware(models.PermManageRoles), roleController.AssignRole)
}
