package database_test

import (
	"testing"

	"leave-service/internal/model"
	"leave-service/pkg/config"
	"leave-service/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupSeedTest(t *testing.T) *config.Config {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:seedtest?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Profile{}, &model.LeaveRequest{}, &model.LeaveType{}))
	database.DB = db

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestEnsureSeedUsers(t *testing.T) {
	cfg := setupSeedTest(t)

	require.NoError(t, database.EnsureSeedUsers(cfg))

	var admin model.User
	require.NoError(t, database.DB.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, cfg.Seed.AdminEmail, admin.Email)

	// Password is stored hashed
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(cfg.Seed.AdminPassword)))

	var profile model.Profile
	require.NoError(t, database.DB.Where("user_id = ?", admin.ID).First(&profile).Error)
	assert.Equal(t, model.RoleAdmin, profile.Role)

	// Running the seed again does not duplicate accounts
	require.NoError(t, database.EnsureSeedUsers(cfg))
	var count int64
	database.DB.Model(&model.User{}).Count(&count)
	assert.EqualValues(t, 2, count)
}
