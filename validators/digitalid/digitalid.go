package digitalidValidator

import (
	"strings"

	"tashil/middleware"

	"github.com/gofiber/fiber/v2"
)

// GenerateID validates a digital ID generation request
func GenerateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequestID uint `json:"requestId"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RequestID == 0 {
			errors["requestId"] = "Request ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGenerateID", reqData)
		return c.Next()
	}
}

// PrintIDs validates a batch print request
func PrintIDs() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IDs []uint `json:"ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.IDs) == 0 {
			errors["ids"] = "At least one digital ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPrintIDs", reqData)
		return c.Next()
	}
}

// CollectID validates a collection request
func CollectID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			DigitalIDID   uint   `json:"digitalIdId"`
			CollectorName string `json:"collectorName"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.DigitalIDID == 0 {
			errors["digitalIdId"] = "Digital ID is required!"
		}
		if strings.TrimSpace(reqData.CollectorName) == "" {
			errors["collectorName"] = "Collector name is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCollectID", reqData)
		return c.Next()
	}
}
