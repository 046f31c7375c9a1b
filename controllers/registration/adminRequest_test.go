package registrationController_test

import (
	"testing"
	"time"

	"tashil/database"
	"tashil/models"
	"tashil/models/registration"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveRequest(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	applicant, _ := newTestUser(t, "Jane Doe", models.RoleStaff)
	reviewer, reviewerToken := newTestUser(t, "Reviewer", models.RoleReviewer)
	request := newPendingRequest(t, applicant.ID, registration.TypeEmployee)

	resp := doJSON(t, app, "POST", "/requests/admin/approve", reviewerToken, fiber.Map{
		"requestId": request.ID,
		"notes":     "All documents verified",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated registration.RegistrationRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, registration.StatusApproved, updated.Status)
	require.NotNil(t, updated.ReviewedBy)
	assert.Equal(t, reviewer.ID, *updated.ReviewedBy)
	assert.NotNil(t, updated.ReviewedAt)
	assert.Empty(t, updated.RejectionReason)

	var history registration.RequestHistory
	require.NoError(t, db.Where("request_id = ? AND action = ?", request.ID, registration.ActionApproved).First(&history).Error)
	assert.Equal(t, reviewer.ID, history.ActorID)

	// The applicant is told about the decision
	var notification models.Notification
	require.NoError(t, db.Where("recipient_id = ? AND type = ?", applicant.ID, models.NotifRequestApproved).First(&notification).Error)
}

func TestApproveAlreadyDecidedRequest(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	applicant, _ := newTestUser(t, "Jane Doe", models.RoleStaff)
	_, reviewerToken := newTestUser(t, "Reviewer", models.RoleReviewer)
	request := newPendingRequest(t, applicant.ID, registration.TypeEmployee)

	resp := doJSON(t, app, "POST", "/requests/admin/approve", reviewerToken, fiber.Map{"requestId": request.ID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/requests/admin/approve", reviewerToken, fiber.Map{"requestId": request.ID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var updated registration.RegistrationRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, registration.StatusApproved, updated.Status)
}

func TestRejectAfterApproveLosesTheRace(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	applicant, _ := newTestUser(t, "Jane Doe", models.RoleStaff)
	_, reviewerToken := newTestUser(t, "Reviewer", models.RoleReviewer)
	request := newPendingRequest(t, applicant.ID, registration.TypeEmployee)

	resp := doJSON(t, app, "POST", "/requests/admin/approve", reviewerToken, fiber.Map{"requestId": request.ID})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/requests/admin/reject", reviewerToken, fiber.Map{
		"requestId": request.ID,
		"reason":    "Too late",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// The losing decision leaves no trace
	var updated registration.RegistrationRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, registration.StatusApproved, updated.Status)
	assert.Empty(t, updated.RejectionReason)

	var count int64
	db.Model(&registration.RequestHistory{}).
		Where("request_id = ? AND action = ?", request.ID, registration.ActionRejected).
		Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRejectRequiresReason(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	applicant, _ := newTestUser(t, "Jane Doe", models.RoleStaff)
	_, reviewerToken := newTestUser(t, "Reviewer", models.RoleReviewer)
	request := newPendingRequest(t, applicant.ID, registration.TypeEmployee)

	resp := doJSON(t, app, "POST", "/requests/admin/reject", reviewerToken, fiber.Map{
		"requestId": request.ID,
		"reason":    "   ",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	fields := envelope["data"].(map[string]interface{})
	assert.Contains(t, fields, "reason")

	// Still pending, untouched
	var updated registration.RegistrationRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, registration.StatusPending, updated.Status)
}

func TestRejectRecordsReason(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	applicant, _ := newTestUser(t, "Jane Doe", models.RoleStaff)
	_, reviewerToken := newTestUser(t, "Reviewer", models.RoleReviewer)
	request := newPendingRequest(t, applicant.ID, registration.TypeEmployee)

	resp := doJSON(t, app, "POST", "/requests/admin/reject", reviewerToken, fiber.Map{
		"requestId": request.ID,
		"reason":    "Insurance document expired",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated registration.RegistrationRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, registration.StatusRejected, updated.Status)
	assert.Equal(t, "Insurance document expired", updated.RejectionReason)
}

func TestApproveWithoutPermission(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	applicant, _ := newTestUser(t, "Jane Doe", models.RoleStaff)
	_, staffToken := newTestUser(t, "Other Staff", models.RoleStaff)
	request := newPendingRequest(t, applicant.ID, registration.TypeEmployee)

	resp := doJSON(t, app, "POST", "/requests/admin/approve", staffToken, fiber.Map{"requestId": request.ID})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// No side effects at all
	var updated registration.RegistrationRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.Equal(t, registration.StatusPending, updated.Status)
	assert.Nil(t, updated.ReviewedBy)

	var count int64
	db.Model(&registration.RequestHistory{}).Where("request_id = ?", request.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestApproveMissingRequest(t *testing.T) {
	app := setupTestApp(t)
	_, reviewerToken := newTestUser(t, "Reviewer", models.RoleReviewer)

	resp := doJSON(t, app, "POST", "/requests/admin/approve", reviewerToken, fiber.Map{"requestId": 4242})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListPendingRequestsOldestFirst(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	applicant, _ := newTestUser(t, "Jane Doe", models.RoleStaff)
	_, reviewerToken := newTestUser(t, "Reviewer", models.RoleReviewer)

	older := newPendingRequest(t, applicant.ID, registration.TypeEmployee)
	require.NoError(t, db.Model(&older).Update("submitted_at", time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)).Error)
	newer := newPendingRequest(t, applicant.ID, registration.TypeEmployee)
	require.NoError(t, db.Model(&newer).Update("submitted_at", time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)).Error)

	resp := doJSON(t, app, "GET", "/requests/admin/pending", reviewerToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	envelope := decodeEnvelope(t, resp)
	data := envelope["data"].(map[string]interface{})
	requests := data["requests"].([]interface{})
	require.Len(t, requests, 2)

	first := requests[0].(map[string]interface{})
	assert.Equal(t, older.RequestNumber, first["requestNumber"])
}

func TestReviewDocumentReject(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	applicant, _ := newTestUser(t, "Jane Doe", models.RoleStaff)
	_, reviewerToken := newTestUser(t, "Reviewer", models.RoleReviewer)
	request := newPendingRequest(t, applicant.ID, registration.TypeEmployee)

	doc := registration.RequestDocument{
		RequestID:  request.ID,
		Slot:       registration.SlotInsuranceDoc,
		FilePath:   "unused",
		UploadedBy: applicant.ID,
	}
	require.NoError(t, db.Create(&doc).Error)

	resp := doJSON(t, app, "POST", "/requests/admin/review-document", reviewerToken, fiber.Map{
		"requestId": request.ID,
		"slot":      registration.SlotInsuranceDoc,
		"verified":  false,
		"reason":    "Document is blurry",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var notification models.Notification
	require.NoError(t, db.Where("recipient_id = ? AND type = ?", applicant.ID, models.NotifDocumentRejected).First(&notification).Error)
}
