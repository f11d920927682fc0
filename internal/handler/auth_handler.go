package handler

import (
	"net/http"
	"time"

	"leave-service/internal/model"
	"leave-service/pkg/database"
	"leave-service/pkg/jwtutil"
	"leave-service/pkg/logger"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login authenticates an email/password pair and issues an access plus
// refresh token. Unknown email and wrong password produce the identical
// response so callers cannot probe which emails exist.
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	// Find user in database - track DB operation duration
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	result := database.GetDB().Where("email = ?", req.Email).First(&user)
	if result.Error != nil {
		log.Error("User not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid credentials"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_credentials")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid credentials"})
	}

	access, refresh, err := issueTokenPair(&user)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.IncreaseActiveTokens()
	log.Info("User logged in", zap.String("email", user.Email), zap.Uint("user_id", user.ID))

	return c.JSON(http.StatusOK, echo.Map{
		"access":  access,
		"refresh": refresh,
	})
}

// RefreshToken exchanges a valid refresh token for a new access token.
// The role is re-resolved from the profile so role changes take effect
// without waiting for the refresh token to expire.
func RefreshToken(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RefreshCounter.Inc()

	var req struct {
		Refresh string `json:"refresh"`
	}

	if err := c.Bind(&req); err != nil || req.Refresh == "" {
		log.Error("Failed to parse refresh request")
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh token is required"})
	}

	claims, err := jwtutil.ValidateRefreshToken(req.Refresh)
	if err != nil {
		log.Error("Invalid refresh token", zap.Error(err))
		prometheus.RecordAuthError("invalid_refresh_token")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired refresh token"})
	}

	// The account must still exist
	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	if result := database.GetDB().First(&user, claims.UserID); result.Error != nil {
		log.Error("User for refresh token not found", zap.Uint("user_id", claims.UserID))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired refresh token"})
	}

	access, err := jwtutil.GenerateAccessToken(user.ID, user.Username, user.Email, lookupRole(user.ID))
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("Access token refreshed", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, echo.Map{"access": access})
}

// issueTokenPair resolves the user's role and signs an access/refresh pair
func issueTokenPair(user *model.User) (string, string, error) {
	access, err := jwtutil.GenerateAccessToken(user.ID, user.Username, user.Email, lookupRole(user.ID))
	if err != nil {
		return "", "", err
	}

	refresh, err := jwtutil.GenerateRefreshToken(user.ID, user.Username, user.Email)
	if err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// lookupRole returns the profile role for a user. A user without a
// profile is treated as a plain employee everywhere.
func lookupRole(userID uint) string {
	var profile model.Profile
	if result := database.GetDB().Where("user_id = ?", userID).First(&profile); result.Error != nil {
		return ""
	}
	return profile.Role
}
