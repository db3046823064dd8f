package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"farmledger/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// performRequest performs a request against the engine, optionally with a
// bearer token and a body.
func performRequest(r http.Handler, method, path string, body io.Reader, token string, contentType string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// postForm submits an urlencoded form the way a browser would.
func postForm(r http.Handler, path string, form url.Values, token string) *httptest.ResponseRecorder {
	return performRequest(r, http.MethodPost, path, strings.NewReader(form.Encode()), token, "application/x-www-form-urlencoded")
}

// setupTestServer boots the app against a fresh sqlite database.
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "test.db"))
	jwtSecret = []byte("test-secret")
	initDB()
	r := gin.New()
	setupRoutes(r)
	return r
}

// newFarmer registers an account with a farmer profile and returns the
// farmer record plus a valid access token.
func newFarmer(t *testing.T, username string) (*models.Farmer, string) {
	t.Helper()
	require.NoError(t, RegisterUser(username, "secret123"))
	var user models.User
	require.NoError(t, db.Where("username = ?", username).First(&user).Error)
	farmer := models.Farmer{UserID: user.ID, Name: username}
	require.NoError(t, db.Create(&farmer).Error)
	token, err := mintAccessToken(user, time.Hour)
	require.NoError(t, err)
	return &farmer, token
}

const testTokenTTL = time.Hour

func intToStr(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// newFarm creates a farm owned by the given farmer.
func newFarm(t *testing.T, farmer *models.Farmer, name string) *models.Farm {
	t.Helper()
	farm := models.Farm{FarmerID: farmer.ID, Name: name, Location: "somewhere", SizeAcres: 10}
	require.NoError(t, db.Create(&farm).Error)
	return &farm
}
