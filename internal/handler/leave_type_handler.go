package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"leave-service/internal/model"
	"leave-service/pkg/database"
	"leave-service/pkg/logger"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ListLeaveTypes returns the leave type catalogue
func ListLeaveTypes(c echo.Context) error {
	log := logger.FromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var types []model.LeaveType
	if result := database.GetDB().Order("id").Find(&types); result.Error != nil {
		log.Error("Failed to list leave types", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list leave types"})
	}

	return c.JSON(http.StatusOK, types)
}

// CreateLeaveType adds a leave type to the catalogue (admin only)
func CreateLeaveType(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAdminOperation("create_leave_type")

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse leave type request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" {
		log.Error("Invalid leave type data")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	// Reject duplicates before relying on the unique index
	var count int64
	database.GetDB().Model(&model.LeaveType{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		log.Error("Leave type already exists", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{"error": "leave type already exists"})
	}

	leaveType := model.LeaveType{
		Name:        req.Name,
		Description: req.Description,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&leaveType); result.Error != nil {
		log.Error("Failed to create leave type", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create leave type"})
	}

	log.Info("Leave type created", zap.String("name", leaveType.Name), zap.Uint("id", leaveType.ID))
	return c.JSON(http.StatusCreated, leaveType)
}

// UpdateLeaveType renames or re-describes a leave type (admin only)
func UpdateLeaveType(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAdminOperation("update_leave_type")

	leaveType, err := findLeaveType(c)
	if err != nil {
		log.Error("Leave type not found", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "leave type not found"})
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}

	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse leave type update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Name == "" {
		log.Error("Invalid leave type data")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	var count int64
	database.GetDB().Model(&model.LeaveType{}).
		Where("name = ? AND id <> ?", req.Name, leaveType.ID).Count(&count)
	if count > 0 {
		log.Error("Leave type name already taken", zap.String("name", req.Name))
		return c.JSON(http.StatusConflict, echo.Map{"error": "leave type already exists"})
	}

	leaveType.Name = req.Name
	leaveType.Description = req.Description

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(leaveType); result.Error != nil {
		log.Error("Failed to update leave type", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update leave type"})
	}

	log.Info("Leave type updated", zap.Uint("id", leaveType.ID))
	return c.JSON(http.StatusOK, leaveType)
}

// DeleteLeaveType removes a leave type from the catalogue (admin only)
func DeleteLeaveType(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordAdminOperation("delete_leave_type")

	leaveType, err := findLeaveType(c)
	if err != nil {
		log.Error("Leave type not found", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "leave type not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(leaveType); result.Error != nil {
		log.Error("Failed to delete leave type", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete leave type"})
	}

	log.Info("Leave type deleted", zap.Uint("id", leaveType.ID))
	return c.NoContent(http.StatusNoContent)
}

func findLeaveType(c echo.Context) (*model.LeaveType, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, errors.New("invalid leave type id")
	}

	var leaveType model.LeaveType
	if result := database.GetDB().First(&leaveType, id); result.Error != nil {
		return nil, result.Error
	}
	return &leaveType, nil
}
