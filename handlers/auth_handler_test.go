package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prnvgithub28/Foundry/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	handler := NewAuthHandler(db)

	app := fiber.New()
	auth := app.Group("/api/auth")
	auth.Post("/create-user", handler.CreateUser)
	auth.Get("/me", handler.Me)
	auth.Get("/user/:uid", handler.GetUser)
	return app, db
}

func TestCreateUserPersistsProfile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, db := newAuthApp(t)

	body, _ := json.Marshal(map[string]string{"uid": "firebase-123", "email": "student@example.edu"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/create-user", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out models.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotNil(t, out.User)
	assert.Equal(t, "firebase-123", out.User.UID)
	assert.Equal(t, "student", out.User.Name, "name defaults to the email local part")
	assert.NotEmpty(t, out.Token)

	var stored models.User
	require.NoError(t, db.Where("uid = ?", "firebase-123").First(&stored).Error)
	assert.Equal(t, "student@example.edu", stored.Email)
}

func TestCreateUserValidation(t *testing.T) {
	app, db := newAuthApp(t)

	for name, payload := range map[string]map[string]string{
		"missing uid":   {"email": "student@example.edu"},
		"missing email": {"uid": "firebase-123"},
	} {
		t.Run(name, func(t *testing.T) {
			body, _ := json.Marshal(payload)
			req := httptest.NewRequest(http.MethodPost, "/api/auth/create-user", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateUserIsIdempotentPerUID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, db := newAuthApp(t)

	for _, email := range []string{"old@example.edu", "new@example.edu"} {
		body, _ := json.Marshal(map[string]string{"uid": "firebase-123", "email": email})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/create-user", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var stored models.User
	require.NoError(t, db.Where("uid = ?", "firebase-123").First(&stored).Error)
	assert.Equal(t, "new@example.edu", stored.Email)
}

func TestMeRequiresValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, db := newAuthApp(t)
	require.NoError(t, db.Create(&models.User{UID: "firebase-123", Name: "student", Email: "student@example.edu"}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A token from create-user resolves the profile.
	body, _ := json.Marshal(map[string]string{"uid": "firebase-123", "email": "student@example.edu"})
	createReq := httptest.NewRequest(http.MethodPost, "/api/auth/create-user", bytes.NewReader(body))
	createReq.Header.Set("Content-Type", "application/json")
	createResp, err := app.Test(createReq, -1)
	require.NoError(t, err)
	var created models.UserResponse
	require.NoError(t, json.NewDecoder(createResp.Body).Decode(&created))
	require.NotEmpty(t, created.Token)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+created.Token)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "firebase-123", out.User.UID)
}

func TestGetUserByUID(t *testing.T) {
	app, db := newAuthApp(t)
	require.NoError(t, db.Create(&models.User{UID: "firebase-123", Name: "student", Email: "student@example.edu"}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user/firebase-123", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/api/auth/user/unknown", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
