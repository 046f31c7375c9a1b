package documentController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	authController "tashil/controllers/auth"
	"tashil/config"
	"tashil/database"
	"tashil/middleware"
	"tashil/models"
	documentRoutes "tashil/routers/documentRoutes"

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
	documentRoutes.SetupDocumentRoutes(app)
	return app
}

func newLibrarian(t *testing.T) (models.User, string) {
	t.Helper()

	db := database.Database.Db
	user := models.User{
		Name:     "Librarian",
		Email:    uuid.NewString() + "@example.com",
		Role:     models.RoleAdmin,
		Password: "not-used",
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, authController.SeedPermissions(db, user.Role, user.ID))

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func uploadDocument(t *testing.T, app *fiber.App, token, name, content string) models.Document {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", name))
	part, err := writer.CreateFormFile("file", "policy.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/documents/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var doc models.Document
	require.NoError(t, database.Database.Db.Where("name = ?", name).First(&doc).Error)
	return doc
}

func addVersion(t *testing.T, app *fiber.App, token string, docID uint, content, summary string) *http.Response {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("changeSummary", summary))
	part, err := writer.CreateFormFile("file", "policy.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", fmt.Sprintf("/documents/%d/versions", docID), body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestUploadCreatesInitialVersion(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db
	_, token := newLibrarian(t)

	doc := uploadDocument(t, app, token, "Leave Policy", "v1 bytes")
	assert.Equal(t, 1, doc.CurrentVersion)

	var version models.DocumentVersion
	require.NoError(t, db.Where("document_id = ?", doc.ID).First(&version).Error)
	assert.Equal(t, 1, version.VersionNumber)
	assert.Equal(t, doc.FilePath, version.FilePath)
}

func TestCreateVersionAdvancesCurrentPointer(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db
	_, token := newLibrarian(t)

	doc := uploadDocument(t, app, token, "Leave Policy", "v1 bytes")

	resp := addVersion(t, app, token, doc.ID, "v2 bytes longer", "Updated for 2026")
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var updated models.Document
	require.NoError(t, db.First(&updated, doc.ID).Error)
	assert.Equal(t, 2, updated.CurrentVersion)
	assert.NotEqual(t, doc.FilePath, updated.FilePath)

	var versions []models.DocumentVersion
	require.NoError(t, db.Where("document_id = ?", doc.ID).Order("version_number ASC").Find(&versions).Error)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].VersionNumber)
	assert.Equal(t, 2, versions[1].VersionNumber)
	assert.Equal(t, updated.FilePath, versions[1].FilePath)
	assert.Equal(t, "Updated for 2026", versions[1].ChangeSummary)
}

func TestVersionNumbersAreSequential(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db
	_, token := newLibrarian(t)

	doc := uploadDocument(t, app, token, "Leave Policy", "v1")
	for i := 2; i <= 5; i++ {
		resp := addVersion(t, app, token, doc.ID, fmt.Sprintf("v%d", i), "")
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	var versions []models.DocumentVersion
	require.NoError(t, db.Where("document_id = ?", doc.ID).Order("version_number ASC").Find(&versions).Error)
	require.Len(t, versions, 5)
	for i, version := range versions {
		assert.Equal(t, i+1, version.VersionNumber)
	}
}

func TestCreateVersionMissingDocument(t *testing.T) {
	app := setupTestApp(t)
	_, token := newLibrarian(t)

	resp := addVersion(t, app, token, 9999, "bytes", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUpdateDocumentMetadata(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db
	_, token := newLibrarian(t)

	doc := uploadDocument(t, app, token, "Leave Policy", "v1")

	payload, err := json.Marshal(fiber.Map{
		"description": "Annual leave rules",
		"keywords":    "leave,hr,policy",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("PATCH", fmt.Sprintf("/documents/%d", doc.ID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Document
	require.NoError(t, db.First(&updated, doc.ID).Error)
	assert.Equal(t, "Annual leave rules", updated.Description)
	assert.Equal(t, "leave,hr,policy", updated.Keywords)
	assert.Equal(t, "Leave Policy", updated.Name)
}

func TestDeleteDocumentRemovesVersions(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db
	_, token := newLibrarian(t)

	doc := uploadDocument(t, app, token, "Leave Policy", "v1")
	resp := addVersion(t, app, token, doc.ID, "v2", "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest("DELETE", fmt.Sprintf("/documents/%d", doc.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var docs, versions int64
	db.Model(&models.Document{}).Where("id = ?", doc.ID).Count(&docs)
	db.Model(&models.DocumentVersion{}).Where("document_id = ?", doc.ID).Count(&versions)
	assert.Equal(t, int64(0), docs)
	assert.Equal(t, int64(0), versions)
}

func TestListDocumentsSearch(t *testing.T) {
	app := setupTestApp(t)
	_, token := newLibrarian(t)

	uploadDocument(t, app, token, "Leave Policy", "a")
	uploadDocument(t, app, token, "Travel Form", "b")

	req := httptest.NewRequest("GET", "/documents/?search=leave", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	data := envelope["data"].(map[string]interface{})
	documents := data["documents"].([]interface{})
	require.Len(t, documents, 1)

	first := documents[0].(map[string]interface{})
	assert.Equal(t, "Leave Policy", first["name"])
}

func TestUploadRequiresPermission(t *testing.T) {
	app := setupTestApp(t)
	db := database.Database.Db

	// Reviewer role has no document management permission
	user := models.User{
		Name:     "Reviewer",
		Email:    uuid.NewString() + "@example.com",
		Role:     models.RoleReviewer,
		Password: "not-used",
	}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, authController.SeedPermissions(db, user.Role, user.ID))
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "x.pdf")
	require.NoError(t, err)
	_, err = io.WriteString(part, "bytes")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/documents/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
