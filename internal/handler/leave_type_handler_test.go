package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"leave-service/internal/model"
	"leave-service/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaveTypeCRUD(t *testing.T) {
	e := setupTest(t)
	admin := createUser(t, "admin", "admin@example.com", "secret", model.RoleAdmin)
	alice := createUser(t, "alice", "alice@example.com", "secret", model.RoleEmployee)
	adminToken := tokenFor(t, admin, model.RoleAdmin)

	// Create
	rec := doRequest(e, http.MethodPost, "/api/leave-types", adminToken, map[string]string{
		"name":        "Annual Leave",
		"description": "Paid yearly vacation",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created model.LeaveType
	decodeBody(t, rec, &created)
	assert.Equal(t, "Annual Leave", created.Name)

	// Employees can read the catalogue
	rec = doRequest(e, http.MethodGet, "/api/leave-types", tokenFor(t, alice, model.RoleEmployee), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []model.LeaveType
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)

	// Update
	path := fmt.Sprintf("/api/leave-types/%d", created.ID)
	rec = doRequest(e, http.MethodPut, path, adminToken, map[string]string{
		"name":        "Annual Leave",
		"description": "25 paid days per year",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated model.LeaveType
	require.NoError(t, database.DB.First(&updated, created.ID).Error)
	assert.Equal(t, "25 paid days per year", updated.Description)

	// Delete
	rec = doRequest(e, http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	database.DB.Model(&model.LeaveType{}).Count(&count)
	assert.Zero(t, count)
}

func TestLeaveTypeDuplicateName(t *testing.T) {
	e := setupTest(t)
	admin := createUser(t, "admin", "admin@example.com", "secret", model.RoleAdmin)
	token := tokenFor(t, admin, model.RoleAdmin)

	rec := doRequest(e, http.MethodPost, "/api/leave-types", token, map[string]string{"name": "Sick Leave"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(e, http.MethodPost, "/api/leave-types", token, map[string]string{"name": "Sick Leave"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLeaveTypeWritesRequireAdmin(t *testing.T) {
	e := setupTest(t)
	alice := createUser(t, "alice", "alice@example.com", "secret", model.RoleEmployee)
	token := tokenFor(t, alice, model.RoleEmployee)

	rec := doRequest(e, http.MethodPost, "/api/leave-types", token, map[string]string{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(e, http.MethodPut, "/api/leave-types/1", token, map[string]string{"name": "Nope"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/leave-types/1", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeaveTypeNotFound(t *testing.T) {
	e := setupTest(t)
	admin := createUser(t, "admin", "admin@example.com", "secret", model.RoleAdmin)
	token := tokenFor(t, admin, model.RoleAdmin)

	rec := doRequest(e, http.MethodPut, "/api/leave-types/42", token, map[string]string{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/leave-types/42", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
