package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"farmledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserValidation(t *testing.T) {
	setupTestServer(t)

	assert.Error(t, RegisterUser("", "secret123"), "username required")
	assert.Error(t, RegisterUser("gina", "short"), "password policy")

	require.NoError(t, RegisterUser("gina", "secret123"))
	assert.Error(t, RegisterUser("gina", "secret123"), "duplicate username")
	assert.Error(t, RegisterUser("  gina  ", "secret123"), "trimmed duplicate")
}

func TestAuthenticate(t *testing.T) {
	setupTestServer(t)
	require.NoError(t, RegisterUser("hank", "secret123"))

	user, err := Authenticate("hank", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "hank", user.Username)

	_, err = Authenticate("hank", "wrong")
	assert.Error(t, err)
	_, err = Authenticate("nobody", "secret123")
	assert.Error(t, err)
}

func TestSignupConflict(t *testing.T) {
	r := setupTestServer(t)

	body, _ := json.Marshal(map[string]string{"username": "iris", "password": "secret123"})
	resp := performRequest(r, http.MethodPost, "/signup", bytes.NewBuffer(body), "", "application/json")
	require.Equal(t, http.StatusOK, resp.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	assert.Equal(t, "/login", out["next"], "signup points the user at login")

	resp = performRequest(r, http.MethodPost, "/signup", bytes.NewBuffer(body), "", "application/json")
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestRegisterFarmerProfile(t *testing.T) {
	r := setupTestServer(t)
	require.NoError(t, RegisterUser("jane", "secret123"))
	var user models.User
	require.NoError(t, db.Where("username = ?", "jane").First(&user).Error)
	token, err := mintAccessToken(user, testTokenTTL)
	require.NoError(t, err)

	// missing name fails validation, nothing persisted
	resp := postForm(r, "/register", url.Values{"phone": {"555"}}, token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	var count int64
	db.Model(&models.Farmer{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	resp = postForm(r, "/register", url.Values{"name": {"Jane"}}, token)
	require.Equal(t, http.StatusSeeOther, resp.Code)
	assert.Equal(t, "/dashboard", resp.Header().Get("Location"))

	// exactly one farmer per account
	resp = postForm(r, "/register", url.Values{"name": {"Jane Again"}}, token)
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestSeededCategoriesAndRoles(t *testing.T) {
	setupTestServer(t)

	assert.True(t, validExpenseType("seeds"))
	assert.True(t, validExpenseType("veterinary"))
	assert.False(t, validExpenseType("yachts"))

	var roles int64
	db.Model(&models.Role{}).Count(&roles)
	assert.EqualValues(t, 2, roles)
}
