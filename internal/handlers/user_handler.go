package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TatianaS7/booksy/internal/dto"
	"github.com/TatianaS7/booksy/internal/httperr"
	"github.com/TatianaS7/booksy/internal/middleware"
	"github.com/TatianaS7/booksy/internal/models"
	"github.com/TatianaS7/booksy/internal/password"
	"github.com/TatianaS7/booksy/internal/validators"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type UpdateUserRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Username    *string `json:"username,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Password    *string `json:"password,omitempty"`
}

func (h *UserHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextActorID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "User not found.")
		return
	}

	var appointments []models.Appointment
	h.db.Where("user_id = ?", userID).Order("start_time ASC").Find(&appointments)

	c.JSON(http.StatusOK, dto.NewUser(&user, appointments))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextActorID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "User not found.")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request data.")
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validators.IsEmailValid(email) {
			httperr.BadRequest(c, httperr.CodeValidation, "Invalid email address.")
			return
		}
		if h.credentialTaken(userID, "email", email) {
			httperr.BadRequest(c, httperr.CodeDuplicateCredential, "Email already in use.")
			return
		}
		user.Email = email
	}

	if req.Username != nil {
		username := strings.ToLower(strings.TrimSpace(*req.Username))
		if username == "" {
			httperr.BadRequest(c, httperr.CodeValidation, "Username cannot be empty.")
			return
		}
		if h.credentialTaken(userID, "username", username) {
			httperr.BadRequest(c, httperr.CodeDuplicateCredential, "Username already in use.")
			return
		}
		user.Username = username
	}

	if req.PhoneNumber != nil {
		if !validators.IsPhoneValid(*req.PhoneNumber) {
			httperr.BadRequest(c, httperr.CodeValidation, "Invalid phone number.")
			return
		}
		if h.credentialTaken(userID, "phone_number", *req.PhoneNumber) {
			httperr.BadRequest(c, httperr.CodeDuplicateCredential, "Phone number already in use.")
			return
		}
		user.PhoneNumber = *req.PhoneNumber
	}

	if req.Password != nil {
		if len(*req.Password) < 6 {
			httperr.BadRequest(c, httperr.CodeValidation, "Password must have at least 6 characters.")
			return
		}
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
			return
		}
		user.PasswordHash = hashed
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update user.")
		return
	}

	c.JSON(http.StatusOK, dto.NewUser(&user, nil))
}

func (h *UserHandler) ListMyAppointments(c *gin.Context) {
	userID := c.MustGet(middleware.ContextActorID).(uint)

	var appointments []models.Appointment
	if err := h.db.
		Where("user_id = ?", userID).
		Order("start_time ASC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, dto.NewAppointments(appointments))
}

func (h *UserHandler) credentialTaken(userID uint, column, value string) bool {
	var count int64
	h.db.Model(&models.User{}).
		Where(column+" = ? AND id <> ?", value, userID).
		Count(&count)
	return count > 0
}
