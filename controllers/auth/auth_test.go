package authController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tashil/config"
	"tashil/database"
	"tashil/models"
	authRoutes "tashil/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestApp(t *testing.T) *fiber.App {
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

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func post(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	resp := post(t, app, "/auth/register", fiber.Map{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "strongpassword",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Equal(t, models.RoleStaff, user.Role)
	assert.NotEqual(t, "strongpassword", user.Password)

	// Default permissions seeded for the role
	var perms int64
	db.Model(&models.Permission{}).Where("user_id = ?", user.ID).Count(&perms)
	assert.Equal(t, int64(len(models.DefaultRolePermissions[models.RoleStaff])), perms)

	resp = post(t, app, "/auth/login", fiber.Map{
		"email":    "jane@example.com",
		"password": "strongpassword",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	data := envelope["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupTestApp(t)

	body := fiber.Map{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "strongpassword",
	}
	resp := post(t, app, "/auth/register", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = post(t, app, "/auth/register", body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestRegisterValidation(t *testing.T) {
	app := setupTestApp(t)

	resp := post(t, app, "/auth/register", fiber.Map{
		"name":     "",
		"email":    "not-an-email",
		"password": "short",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupTestApp(t)

	resp := post(t, app, "/auth/register", fiber.Map{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "strongpassword",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = post(t, app, "/auth/login", fiber.Map{
		"email":    "jane@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	resp := post(t, app, "/auth/register", fiber.Map{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "strongpassword",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	for i := 0; i < 5; i++ {
		resp = post(t, app, "/auth/login", fiber.Map{
			"email":    "jane@example.com",
			"password": "wrongpassword",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}

	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.True(t, user.IsBlocked)
	require.NotNil(t, user.BlockedUntil)

	// Even the right password is refused while blocked
	resp = post(t, app, "/auth/login", fiber.Map{
		"email":    "jane@example.com",
		"password": "strongpassword",
	})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
