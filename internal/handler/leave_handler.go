package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"leave-service/internal/model"
	"leave-service/pkg/database"
	"leave-service/pkg/logger"
	"leave-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// leaveRequestResponse is the wire shape of a leave request, with the
// owner's username denormalized in
type leaveRequestResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
}

type leaveRequestInput struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

func toLeaveResponse(leave *model.LeaveRequest) leaveRequestResponse {
	return leaveRequestResponse{
		ID:        leave.ID,
		Username:  leave.User.Username,
		LeaveType: leave.LeaveType,
		StartDate: leave.StartDate,
		EndDate:   leave.EndDate,
		Reason:    leave.Reason,
		Status:    leave.Status,
	}
}

// scopedLeaveQuery returns the set of leave requests visible to the
// caller: admins see every record, everyone else only their own. All
// single-record lookups go through this scope so an out-of-scope id is
// indistinguishable from a nonexistent one.
func scopedLeaveQuery(c echo.Context) *gorm.DB {
	db := database.GetDB().Model(&model.LeaveRequest{})
	if role, _ := c.Get("role").(string); role == model.RoleAdmin {
		return db
	}
	userID, _ := c.Get("user_id").(uint)
	return db.Where("user_id = ?", userID)
}

// findScopedLeave looks up one leave request within the caller's scope
func findScopedLeave(c echo.Context) (*model.LeaveRequest, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return nil, err
	}

	var leave model.LeaveRequest
	if result := scopedLeaveQuery(c).Preload("User").Where("leave_requests.id = ?", id).First(&leave); result.Error != nil {
		return nil, result.Error
	}
	return &leave, nil
}

// ListLeaveRequests returns the caller's visible leave requests in
// insertion order
func ListLeaveRequests(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("list")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var leaves []model.LeaveRequest
	if result := scopedLeaveQuery(c).Preload("User").Order("id").Find(&leaves); result.Error != nil {
		log.Error("Failed to list leave requests", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to list leave requests"})
	}

	response := make([]leaveRequestResponse, 0, len(leaves))
	for i := range leaves {
		response = append(response, toLeaveResponse(&leaves[i]))
	}

	return c.JSON(http.StatusOK, response)
}

// CreateLeaveRequest files a new leave request for the caller. The owner
// is always the authenticated identity and the status always starts as
// pending, whatever the body says.
func CreateLeaveRequest(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("create")

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		log.Error("Failed to get user ID from context")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req leaveRequestInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse leave request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := validateDates(req.StartDate, req.EndDate); err != nil {
		log.Error("Invalid leave dates",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	leave := model.LeaveRequest{
		UserID:    userID,
		LeaveType: req.LeaveType,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		Status:    model.StatusPending,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&leave); result.Error != nil {
		log.Error("Failed to create leave request", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create leave request"})
	}

	// Load the owner for the response
	database.GetDB().First(&leave.User, leave.UserID)

	log.Info("Leave request created",
		zap.Uint("id", leave.ID),
		zap.Uint("user_id", userID),
		zap.String("leave_type", leave.LeaveType))

	return c.JSON(http.StatusCreated, toLeaveResponse(&leave))
}

// GetLeaveRequest returns a single leave request within the caller's scope
func GetLeaveRequest(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("retrieve")

	defer prometheus.TrackDBOperation("query")(time.Now())
	leave, err := findScopedLeave(c)
	if err != nil {
		log.Error("Leave request not found", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "leave request not found"})
	}

	return c.JSON(http.StatusOK, toLeaveResponse(leave))
}

// UpdateLeaveRequest rewrites the request's type, dates and reason. The
// owner and status are not writable here; a decided request stays
// editable by its owner.
func UpdateLeaveRequest(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("update")

	leave, err := findScopedLeave(c)
	if err != nil {
		log.Error("Leave request not found", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "leave request not found"})
	}

	var req leaveRequestInput
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse leave update", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if err := validateDates(req.StartDate, req.EndDate); err != nil {
		log.Error("Invalid leave dates",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	leave.LeaveType = req.LeaveType
	leave.StartDate = req.StartDate
	leave.EndDate = req.EndDate
	leave.Reason = req.Reason

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(leave); result.Error != nil {
		log.Error("Failed to update leave request", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update leave request"})
	}

	log.Info("Leave request updated", zap.Uint("id", leave.ID))
	return c.JSON(http.StatusOK, toLeaveResponse(leave))
}

// DeleteLeaveRequest removes a leave request within the caller's scope
func DeleteLeaveRequest(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation("delete")

	leave, err := findScopedLeave(c)
	if err != nil {
		log.Error("Leave request not found", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "leave request not found"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if result := database.GetDB().Delete(leave); result.Error != nil {
		log.Error("Failed to delete leave request", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete leave request"})
	}

	log.Info("Leave request deleted", zap.Uint("id", leave.ID))
	return c.NoContent(http.StatusNoContent)
}

// ApproveLeaveRequest sets the status to Approved. There is no
// state-machine guard: an already decided request is overwritten, and
// two concurrent decisions race with last-write-wins.
func ApproveLeaveRequest(c echo.Context) error {
	return decideLeaveRequest(c, "approve", model.StatusApproved, "approved")
}

// RejectLeaveRequest sets the status to Rejected, with the same
// last-write-wins semantics as approve
func RejectLeaveRequest(c echo.Context) error {
	return decideLeaveRequest(c, "reject", model.StatusRejected, "rejected")
}

func decideLeaveRequest(c echo.Context, operation, status, ack string) error {
	log := logger.FromContext(c)
	prometheus.RecordLeaveOperation(operation)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		log.Error("Invalid leave request ID", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "leave request not found"})
	}

	var leave model.LeaveRequest
	if result := database.GetDB().First(&leave, id); result.Error != nil {
		log.Error("Leave request not found", zap.Uint64("id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "leave request not found"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Model(&leave).Update("status", status); result.Error != nil {
		log.Error("Failed to update leave status", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update leave request"})
	}

	log.Info("Leave request decided",
		zap.Uint("id", leave.ID),
		zap.String("status", status))

	return c.JSON(http.StatusOK, echo.Map{"status": ack})
}

// validateDates checks that both dates parse as YYYY-MM-DD. The range
// itself is not validated: end before start is accepted.
func validateDates(start, end string) error {
	if _, err := time.Parse(dateLayout, start); err != nil {
		return fmt.Errorf("start_date must be a valid date in YYYY-MM-DD format")
	}
	if _, err := time.Parse(dateLayout, end); err != nil {
		return fmt.Errorf("end_date must be a valid date in YYYY-MM-DD format")
	}
	return nil
}
