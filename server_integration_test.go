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

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// 1. Sign up
	regBody, _ := json.Marshal(map[string]string{"username": "alice", "password": "secret123"})
	resp := performRequest(r, http.MethodPost, "/signup", bytes.NewBuffer(regBody), "", "application/json")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// 2. Log in
	loginBody, _ := json.Marshal(map[string]string{"username": "alice", "password": "secret123"})
	resp = performRequest(r, http.MethodPost, "/login", bytes.NewBuffer(loginBody), "", "application/json")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var loginResp map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &loginResp))
	token, _ := loginResp["token"].(string)
	require.NotEmpty(t, token)
	refreshToken, _ := loginResp["refresh_token"].(string)
	require.NotEmpty(t, refreshToken)

	// 3. Register farmer profile, redirected to dashboard
	resp = postForm(r, "/register", url.Values{"name": {"Alice"}, "phone": {"555-0100"}}, token)
	require.Equal(t, http.StatusSeeOther, resp.Code, resp.Body.String())
	assert.Equal(t, "/dashboard", resp.Header().Get("Location"))

	// 4. Add a farm
	resp = postForm(r, "/farms/add", url.Values{"name": {"North Field"}, "location": {"Valley"}, "size_acres": {"42.5"}}, token)
	require.Equal(t, http.StatusSeeOther, resp.Code, resp.Body.String())
	assert.Equal(t, "/farms", resp.Header().Get("Location"))

	var farm models.Farm
	require.NoError(t, db.Where("name = ?", "North Field").First(&farm).Error)

	// 5. Add a crop on that farm
	resp = postForm(r, "/crops/add", url.Values{
		"farm_id":       {intToStr(farm.ID)},
		"crop_type":     {"wheat"},
		"variety":       {"hard red"},
		"planting_date": {"2024-03-10"},
	}, token)
	require.Equal(t, http.StatusSeeOther, resp.Code, resp.Body.String())
	assert.Equal(t, "/crops", resp.Header().Get("Location"))

	// 6. Add livestock on that farm
	resp = postForm(r, "/livestock/add", url.Values{
		"farm_id": {intToStr(farm.ID)},
		"species": {"cattle"},
		"count":   {"12"},
	}, token)
	require.Equal(t, http.StatusSeeOther, resp.Code, resp.Body.String())

	// 7. Record an expense
	resp = postForm(r, "/expenses/add", url.Values{
		"farm_id":      {intToStr(farm.ID)},
		"amount":       {"150.75"},
		"expense_type": {"seeds"},
		"expense_date": {"2024-03-11"},
		"description":  {"spring seed order"},
	}, token)
	require.Equal(t, http.StatusSeeOther, resp.Code, resp.Body.String())
	assert.Equal(t, "/expenses", resp.Header().Get("Location"))

	// 8. Dashboard counts reflect the records (seed data adds none of these)
	resp = performRequest(r, http.MethodGet, "/dashboard", nil, token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var dash map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &dash))
	assert.EqualValues(t, 1, dash["total_farms"])
	assert.EqualValues(t, 1, dash["total_crops"])
	assert.EqualValues(t, 1, dash["total_livestock"])

	// 9. Expense list shows the record for its owner
	resp = performRequest(r, http.MethodGet, "/expenses", nil, token, "")
	require.Equal(t, http.StatusOK, resp.Code)
	var expenses []models.Expense
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &expenses))
	require.Len(t, expenses, 1)
	assert.Equal(t, "seeds", expenses[0].ExpenseType)
	assert.Equal(t, "150.75", expenses[0].Amount.StringFixed(2))

	// 10. Rotate the refresh token, then revoke the new one
	body, _ := json.Marshal(map[string]string{"refresh_token": refreshToken})
	resp = performRequest(r, http.MethodPost, "/refresh", bytes.NewBuffer(body), "", "application/json")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var rotated map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rotated))
	newRefresh, _ := rotated["refresh_token"].(string)
	require.NotEmpty(t, newRefresh)
	assert.NotEqual(t, refreshToken, newRefresh)

	// the old token no longer refreshes
	resp = performRequest(r, http.MethodPost, "/refresh", bytes.NewBuffer(body), "", "application/json")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	body, _ = json.Marshal(map[string]string{"refresh_token": newRefresh})
	resp = performRequest(r, http.MethodPost, "/revoke_refresh", bytes.NewBuffer(body), "", "application/json")
	require.Equal(t, http.StatusOK, resp.Code)
	resp = performRequest(r, http.MethodPost, "/refresh", bytes.NewBuffer(body), "", "application/json")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestUnauthenticatedAccess(t *testing.T) {
	r := setupTestServer(t)

	resp := performRequest(r, http.MethodGet, "/farms", nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = performRequest(r, http.MethodGet, "/dashboard", nil, "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
