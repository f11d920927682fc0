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
	"golang.org/x/crypto/bcrypt"
)

// CreateEmployee provisions a user account plus its profile (admin only).
// Accounts are created here rather than through self-service
// registration.
func CreateEmployee(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAdminOperation("create_employee")

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role,omitempty"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse employee request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		log.Error("Invalid employee data",
			zap.String("username", req.Username),
			zap.String("email", req.Email),
			zap.Bool("password_provided", req.Password != ""))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username, email and password are required"})
	}

	switch req.Role {
	case "":
		req.Role = model.RoleEmployee
	case model.RoleAdmin, model.RoleEmployee:
	default:
		log.Error("Invalid role", zap.String("role", req.Role))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "role must be admin or employee"})
	}

	// Check if user already exists - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	var existing model.User
	result := database.GetDB().Where("username = ? OR email = ?", req.Username, req.Email).First(&existing)
	if result.Error == nil {
		log.Error("User already exists",
			zap.String("username", req.Username),
			zap.String("email", req.Email))
		return c.JSON(http.StatusConflict, echo.Map{"error": "username or email already registered"})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "employee creation failed"})
	}

	// Create the user and its profile together
	tx := database.GetDB().Begin()
	if tx.Error != nil {
		log.Error("Failed to begin transaction", zap.Error(tx.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	user := model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := tx.Create(&user); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to create user", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "employee creation failed"})
	}

	profile := model.Profile{
		UserID: user.ID,
		Role:   req.Role,
	}

	if result := tx.Create(&profile); result.Error != nil {
		tx.Rollback()
		log.Error("Failed to create profile", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "employee creation failed"})
	}

	if err := tx.Commit().Error; err != nil {
		log.Error("Failed to commit transaction", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "employee creation failed"})
	}

	log.Info("Employee created",
		zap.String("username", user.Username),
		zap.Uint("user_id", user.ID),
		zap.String("role", profile.Role))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Employee created successfully",
		"user": map[string]interface{}{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"role": profile.Role,
	})
}

// ListEmployees returns every user with its role (admin only)
func ListEmployees(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAdminOperation("list_employees")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var profiles []model.Profile
	if result := database.GetDB().Preload("User").Order("id").Find(&profiles); result.Error != nil {
		log.Error("Failed to list employees", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list employees"})
	}

	response := make([]echo.Map, 0, len(profiles))
	for _, p := range profiles {
		response = append(response, echo.Map{
			"user": map[string]interface{}{
				"id":       p.User.ID,
				"username": p.User.Username,
				"email":    p.User.Email,
			},
			"role": p.Role,
		})
	}

	return c.JSON(http.StatusOK, response)
}
