package utils_test

import (
	"fmt"
	"testing"
	"time"

	"tashil/config"
	"tashil/database"
	"tashil/models"
	"tashil/models/registration"
	"tashil/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
		UploadDir: t.TempDir(),
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}
	return db
}

func seedApplicant(t *testing.T, db *gorm.DB) models.User {
	t.Helper()

	user := models.User{
		Name:     "Applicant",
		Email:    uuid.NewString() + "@example.com",
		Password: "not-used",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedPendingRequest(t *testing.T, db *gorm.DB, submittedBy uint, ageDays int) registration.RegistrationRequest {
	t.Helper()

	request := registration.RegistrationRequest{
		RequestNumber: "REQ-" + uuid.NewString()[:8],
		RequestType:   registration.TypeEmployee,
		SubmittedBy:   submittedBy,
		SubjectName:   "Subject",
		NationalID:    "123",
		Status:        registration.StatusPending,
		SubmittedAt:   time.Now().AddDate(0, 0, -ageDays),
	}
	require.NoError(t, db.Create(&request).Error)
	return request
}

func TestMissingDocumentsNoticeSentOnce(t *testing.T) {
	db := setupTestDb(t)
	applicant := seedApplicant(t, db)
	request := seedPendingRequest(t, db, applicant.ID, 5)

	utils.RemindStalePendingRequests()
	utils.RemindStalePendingRequests()

	var count int64
	db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", applicant.ID, models.NotifMissingDocuments).
		Count(&count)
	assert.Equal(t, int64(1), count)

	var updated registration.RegistrationRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.True(t, updated.MissingDocsNotified)
}

func TestMissingDocumentsNoticeSkipsCompleteRequests(t *testing.T) {
	db := setupTestDb(t)
	applicant := seedApplicant(t, db)
	request := seedPendingRequest(t, db, applicant.ID, 5)

	for _, slot := range registration.RequiredSlots(registration.TypeEmployee) {
		doc := registration.RequestDocument{
			RequestID:  request.ID,
			Slot:       slot,
			FilePath:   "unused",
			UploadedBy: applicant.ID,
		}
		require.NoError(t, db.Create(&doc).Error)
	}

	utils.RemindStalePendingRequests()

	var count int64
	db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", applicant.ID, models.NotifMissingDocuments).
		Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestStaleRequestNudgeSentOnce(t *testing.T) {
	db := setupTestDb(t)
	applicant := seedApplicant(t, db)

	reviewer := models.User{
		Name:     "Reviewer",
		Email:    uuid.NewString() + "@example.com",
		Role:     models.RoleReviewer,
		Password: "not-used",
	}
	require.NoError(t, db.Create(&reviewer).Error)
	permission := models.Permission{
		UserID:     reviewer.ID,
		Role:       reviewer.Role,
		Permission: models.PermApproveRegistration,
	}
	require.NoError(t, db.Create(&permission).Error)

	request := seedPendingRequest(t, db, applicant.ID, 8)

	utils.RemindStalePendingRequests()
	utils.RemindStalePendingRequests()

	var count int64
	db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", reviewer.ID, models.NotifAdminAlert).
		Count(&count)
	assert.Equal(t, int64(1), count)

	var updated registration.RegistrationRequest
	require.NoError(t, db.First(&updated, request.ID).Error)
	assert.True(t, updated.ReminderSent)
}

func TestExpiryReminderSentOnce(t *testing.T) {
	db := setupTestDb(t)
	applicant := seedApplicant(t, db)
	request := seedPendingRequest(t, db, applicant.ID, 30)
	require.NoError(t, db.Model(&request).Update("status", registration.StatusApproved).Error)

	digitalID := registration.DigitalID{
		RequestID:  request.ID,
		FullName:   "Subject",
		NationalID: "123",
		IssueDate:  time.Now().AddDate(-1, 0, 10),
		ExpiryDate: time.Now().AddDate(0, 0, 10),
	}
	require.NoError(t, db.Create(&digitalID).Error)

	utils.ProcessExpiringIDs()
	utils.ProcessExpiringIDs()

	var count int64
	db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", applicant.ID, models.NotifAdminAlert).
		Count(&count)
	assert.Equal(t, int64(1), count)

	var updated registration.DigitalID
	require.NoError(t, db.First(&updated, digitalID.ID).Error)
	assert.True(t, updated.ExpiryReminderSent)
}
