package handler

import (
	"net/http"
	"time"

	"leave-service/internal/model"
	"leave-service/pkg/database"
	"leave-service/pkg/logger"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// GetProfile returns the caller's user record and role
func GetProfile(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		prometheus.RecordAuthError("missing_identity")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var profile model.Profile
	result := database.GetDB().Preload("User").Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		log.Error("Profile not found", zap.Uint("user_id", userID))
		prometheus.RecordAuthError("profile_not_found")
		return c.JSON(http.StatusNotFound, echo.Map{"error": "profile not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": map[string]interface{}{
			"id":       profile.User.ID,
			"username": profile.User.Username,
			"email":    profile.User.Email,
		},
		"role": profile.Role,
	})
}
