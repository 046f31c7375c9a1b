package roleValidator

import (
	"strings"

	"tashil/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateRole validates a role creation request
func CreateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string   `json:"name"`
			Description string   `json:"description"`
			Permissions []string `json:"permissions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Role name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCreateRole", reqData)
		return c.Next()
	}
}

// UpdateRole validates a role update request
func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Description *string   `json:"description"`
			Permissions *[]string `json:"permissions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedUpdateRole", reqData)
		return c.Next()
	}
}

// AssignRole validates a role assignment request
func AssignRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID uint   `json:"userId"`
			Role   string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.UserID == 0 {
			errors["userId"] = "User ID is required!"
		}
		if strings.TrimSpace(reqData.Role) == "" {
			errors["role"] = "Role is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignRole", reqData)
		return c.Next()
	}
}
