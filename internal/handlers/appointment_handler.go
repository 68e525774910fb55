package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TatianaS7/booksy/internal/dto"
	"github.com/TatianaS7/booksy/internal/httperr"
	"github.com/TatianaS7/booksy/internal/middleware"
	"github.com/TatianaS7/booksy/internal/models"
	ucBooking "github.com/TatianaS7/booksy/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db *gorm.DB

	createUC     *ucBooking.CreateAppointment
	rescheduleUC *ucBooking.RescheduleAppointment
	cancelUC     *ucBooking.CancelAppointment
	confirmUC    *ucBooking.ConfirmAppointment
	completeUC   *ucBooking.CompleteAppointment
}

func NewAppointmentHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateAppointment,
	rescheduleUC *ucBooking.RescheduleAppointment,
	cancelUC *ucBooking.CancelAppointment,
	confirmUC *ucBooking.ConfirmAppointment,
	completeUC *ucBooking.CompleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:           db,
		createUC:     createUC,
		rescheduleUC: rescheduleUC,
		cancelUC:     cancelUC,
		confirmUC:    confirmUC,
		completeUC:   completeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BusinessID uint   `json:"business_id" binding:"required"`
	ServiceID  uint   `json:"service_id" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string `json:"time" binding:"required"` // HH:mm
	Notes      string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Date      *string `json:"date,omitempty"`
	Time      *string `json:"time,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	ServiceID *uint   `json:"service_id,omitempty"`
}

// ======================================================
// USER ROUTES
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextActorID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request data.")
		return
	}

	ap, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateAppointmentInput{
			UserID:     userID,
			BusinessID: req.BusinessID,
			ServiceID:  req.ServiceID,
			Date:       req.Date,
			Time:       req.Time,
			Notes:      req.Notes,
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewAppointment(ap))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	userID := c.MustGet(middleware.ContextActorID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Appointment not found.")
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointment(&ap))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	userID := c.MustGet(middleware.ContextActorID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request data.")
		return
	}

	ap, err := h.rescheduleUC.Execute(
		c.Request.Context(),
		ucBooking.RescheduleAppointmentInput{
			UserID:        userID,
			AppointmentID: id,
			Date:          req.Date,
			Time:          req.Time,
			Notes:         req.Notes,
			ServiceID:     req.ServiceID,
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointment(ap))
}

// Cancel backs both PATCH .../cancel and DELETE: removal is a soft cancel so
// the history row survives and the slot frees up.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextActorID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.ExecuteForUser(c.Request.Context(), userID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointment(ap))
}

// ======================================================
// BUSINESS ROUTES
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextActorID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "Date is required.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid date.")
		return
	}

	start := date
	end := start.Add(24 * time.Hour)

	var aps []models.Appointment
	if err := h.db.
		Where(
			"business_id = ? AND start_time >= ? AND start_time < ?",
			businessID, start, end,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointments(aps))
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextActorID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), businessID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointment(ap))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextActorID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), businessID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointment(ap))
}

func (h *AppointmentHandler) CancelForBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextActorID).(uint)

	id, err := parseID(c)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.ExecuteForBusiness(c.Request.Context(), businessID, id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointment(ap))
}

// ======================================================
// HELPERS
// ======================================================

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
