package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/TatianaS7/booksy/internal/audit"
	"github.com/TatianaS7/booksy/internal/config"
	"github.com/TatianaS7/booksy/internal/dto"
	"github.com/TatianaS7/booksy/internal/httperr"
	"github.com/TatianaS7/booksy/internal/middleware"
	"github.com/TatianaS7/booksy/internal/models"
	"github.com/TatianaS7/booksy/internal/password"
	"github.com/TatianaS7/booksy/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, dispatcher *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, audit: dispatcher}
}

// --------- Requests ---------

type RegisterUserRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Username    string `json:"username" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required,min=6"`
}

type RegisterBusinessRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- User handlers ---------

func (h *AuthHandler) RegisterUser(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request data.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if !validators.IsEmailValid(email) {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid email address.")
		return
	}
	if !validators.IsPhoneValid(req.PhoneNumber) {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid phone number.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).
		Where("email = ? OR username = ? OR phone_number = ?", email, username, req.PhoneNumber).
		Count(&count).Error; err != nil {
		httperr.Internal(c, "duplicate_check_failed", "Could not verify credentials.")
		return
	}
	if count > 0 {
		httperr.BadRequest(c, httperr.CodeDuplicateCredential, "Email, username or phone number already in use.")
		return
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	user := models.User{
		FullName:     req.FullName,
		Email:        email,
		Username:     username,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: hashed,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Could not create user.")
		return
	}

	token, err := h.generateToken(user.ID, middleware.ActorUser)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  dto.NewUser(&user, nil),
		"token": token,
	})
}

func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Email and password are required.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "User not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		httperr.Unauthorized(c, httperr.CodeInvalidCredentials, "Invalid credentials.")
		return
	}

	token, err := h.generateToken(user.ID, middleware.ActorUser)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  dto.NewUser(&user, nil),
		"token": token,
	})
}

// --------- Business handlers ---------

func (h *AuthHandler) RegisterBusiness(c *gin.Context) {
	var req RegisterBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request data.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !validators.IsEmailValid(email) {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid email address.")
		return
	}

	var count int64
	if err := h.db.Model(&models.Business{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "duplicate_check_failed", "Could not verify credentials.")
		return
	}
	if count > 0 {
		httperr.BadRequest(c, httperr.CodeDuplicateCredential, "Email already in use.")
		return
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process password.")
		return
	}

	business := models.Business{
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		State:        strings.ToUpper(strings.TrimSpace(req.State)),
		PhoneNumber:  req.PhoneNumber,
		Email:        email,
		PasswordHash: hashed,
	}

	if err := h.db.Create(&business).Error; err != nil {
		httperr.Internal(c, "failed_to_create_business", "Could not create business.")
		return
	}

	token, err := h.generateToken(business.ID, middleware.ActorBusiness)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: business.ID,
		Action:     "business_registered",
		Entity:     "business",
		EntityID:   &business.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"business": dto.NewBusiness(&business),
		"token":    token,
	})
}

func (h *AuthHandler) LoginBusiness(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Email and password are required.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var business models.Business
	if err := h.db.Where("email = ?", email).First(&business).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, httperr.CodeNotFound, "Business not found.")
			return
		}
		httperr.Internal(c, "internal_error", "Something went wrong.")
		return
	}

	if !password.Verify(req.Password, business.PasswordHash) {
		httperr.Unauthorized(c, httperr.CodeInvalidCredentials, "Invalid credentials.")
		return
	}

	token, err := h.generateToken(business.ID, middleware.ActorBusiness)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"business": dto.NewBusiness(&business),
		"token":    token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(id uint, actor string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   id,
		"actor": actor,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
