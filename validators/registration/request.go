package registrationValidator

import (
	"strings"

	"tashil/middleware"
	"tashil/models/registration"

	"github.com/gofiber/fiber/v2"
)

// SubmitRequest validates a new registration submission
func SubmitRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequestType string `json:"requestType"`
			SubjectName string `json:"subjectName"`
			NationalID  string `json:"nationalId"`
			CompanyID   *uint  `json:"companyId"`
			Position    string `json:"position"`
			Phone       string `json:"phone"`
			Notes       string `json:"notes"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RequestType != registration.TypeEmployee && reqData.RequestType != registration.TypeCompany {
			errors["requestType"] = "Request type must be EMPLOYEE or COMPANY!"
		}
		if strings.TrimSpace(reqData.SubjectName) == "" {
			errors["subjectName"] = "Subject name is required!"
		}
		if strings.TrimSpace(reqData.NationalID) == "" {
			errors["nationalId"] = "National ID is required!"
		}
		if reqData.RequestType == registration.TypeEmployee && (reqData.CompanyID == nil || *reqData.CompanyID == 0) {
			errors["companyId"] = "Company is required for employee requests!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubmitRequest", reqData)
		return c.Next()
	}
}

// ApproveRequest validates an approval request
func ApproveRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequestID uint   `json:"requestId"`
			Notes     string `json:"notes"`
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

		c.Locals("validatedApproveRequest", reqData)
		return c.Next()
	}
}

// RejectRequest validates a rejection request. The reason is mandatory: a
// rejection without one never reaches the workflow engine.
func RejectRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequestID uint   `json:"requestId"`
			Reason    string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RequestID == 0 {
			errors["requestId"] = "Request ID is required!"
		}
		if strings.TrimSpace(reqData.Reason) == "" {
			errors["reason"] = "Rejection reason is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRejectRequest", reqData)
		return c.Next()
	}
}

// ReviewDocument validates a document verify/reject request
func ReviewDocument() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			RequestID uint   `json:"requestId"`
			Slot      string `json:"slot"`
			Verified  bool   `json:"verified"`
			Reason    string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.RequestID == 0 {
			errors["requestId"] = "Request ID is required!"
		}
		if strings.TrimSpace(reqData.Slot) == "" {
			errors["slot"] = "Document slot is required!"
		}
		if !reqData.Verified && strings.TrimSpace(reqData.Reason) == "" {
			errors["reason"] = "A reason is required when rejecting a document!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReviewDocument", reqData)
		return c.Next()
	}
}
