package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"leave-service/internal/model"
	"leave-service/internal/router"
	"leave-service/pkg/database"
	"leave-service/pkg/jwtutil"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTest wires an in-memory SQLite database into the package-level
// handle and returns the real router. Each test gets its own named
// shared-cache database so state never leaks between tests.
func setupTest(t *testing.T) *echo.Echo {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Profile{}, &model.LeaveRequest{}, &model.LeaveType{}))
	database.DB = db

	return router.New(zap.NewNop())
}

// createUser inserts a user and, when role is non-empty, its profile
func createUser(t *testing.T, username, email, password, role string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{Username: username, Email: email, Password: string(hash)}
	require.NoError(t, database.DB.Create(user).Error)

	if role != "" {
		require.NoError(t, database.DB.Create(&model.Profile{UserID: user.ID, Role: role}).Error)
	}
	return user
}

func tokenFor(t *testing.T, user *model.User, role string) string {
	t.Helper()

	token, err := jwtutil.GenerateAccessToken(user.ID, user.Username, user.Email, role)
	require.NoError(t, err)
	return token
}

func doRequest(e *echo.Echo, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// createLeave inserts a leave request directly, bypassing the API
func createLeave(t *testing.T, user *model.User, leaveType, start, end, reason, status string) *model.LeaveRequest {
	t.Helper()

	leave := &model.LeaveRequest{
		UserID:    user.ID,
		LeaveType: leaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    reason,
		Status:    status,
	}
	require.NoError(t, database.DB.Create(leave).Error)
	return leave
}
