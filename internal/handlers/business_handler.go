package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TatianaS7/booksy/internal/cache"
	domain "github.com/TatianaS7/booksy/internal/domain/booking"
	"github.com/TatianaS7/booksy/internal/dto"
	"github.com/TatianaS7/booksy/internal/httperr"
	"github.com/TatianaS7/booksy/internal/httpresp"
	"github.com/TatianaS7/booksy/internal/middleware"
	"github.com/TatianaS7/booksy/internal/models"
	"github.com/TatianaS7/booksy/internal/password"
	ucBooking "github.com/TatianaS7/booksy/internal/usecase/booking"
)

type BusinessHandler struct {
	db           *gorm.DB
	cache        *cache.Cache
	availability *ucBooking.GetAvailability
}

func NewBusinessHandler(
	db *gorm.DB,
	searchCache *cache.Cache,
	availability *ucBooking.GetAvailability,
) *BusinessHandler {
	return &BusinessHandler{
		db:           db,
		cache:        searchCache,
		availability: availability,
	}
}

type UpdateBusinessRequest struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Password    *string `json:"password,omitempty"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *BusinessHandler) ListAll(c *gin.Context) {
	var businesses []models.Business
	if err := h.db.
		Preload("Services").
		Preload("Appointments").
		Order("id ASC").
		Find(&businesses).Error; err != nil {
		httperr.Internal(c, "failed_to_list_businesses", "Could not list businesses.")
		return
	}

	httpresp.List(c, dto.NewBusinesses(businesses))
}

// Search matches a case-insensitive substring against business name, city,
// state, or the name of any service the business offers.
func (h *BusinessHandler) Search(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))
	if query == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "Search query is required.")
		return
	}

	cacheKey := "business_search:" + query

	var cached []dto.BusinessDTO
	if h.cache.Get(c.Request.Context(), cacheKey, &cached) {
		httpresp.List(c, cached)
		return
	}

	like := "%" + query + "%"

	serviceMatch := h.db.Model(&models.Service{}).
		Select("business_id").
		Where("LOWER(name) LIKE ?", like)

	var businesses []models.Business
	if err := h.db.
		Preload("Services").
		Preload("Appointments").
		Where(
			"LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ? OR id IN (?)",
			like, like, like, serviceMatch,
		).
		Order("id ASC").
		Find(&businesses).Error; err != nil {
		httperr.Internal(c, "failed_to_search_businesses", "Could not search businesses.")
		return
	}

	result := dto.NewBusinesses(businesses)
	h.cache.Set(c.Request.Context(), cacheKey, result)

	httpresp.List(c, result)
}

func (h *BusinessHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	var business models.Business
	if err := h.db.
		Preload("Services").
		Preload("Appointments").
		First(&business, id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Business not found.")
		return
	}

	c.JSON(http.StatusOK, dto.NewBusiness(&business))
}

func (h *BusinessHandler) ListServices(c *gin.Context) {
	id := c.Param("id")

	var business models.Business
	if err := h.db.First(&business, id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Business not found.")
		return
	}

	var services []models.Service
	if err := h.db.
		Where("business_id = ?", business.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	c.JSON(http.StatusOK, dto.NewServices(services))
}

func (h *BusinessHandler) Availability(c *gin.Context) {
	id := c.Param("id")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid service id.")
		return
	}

	var business models.Business
	if err := h.db.First(&business, id).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Business not found.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid date.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BusinessID: business.ID,
			ServiceID:  uint(serviceID),
			Date:       date,
		},
	)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// PRIVATE (business actor)
// ======================================================

func (h *BusinessHandler) GetMe(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextActorID).(uint)

	var business models.Business
	if err := h.db.
		Preload("Services").
		Preload("Appointments").
		First(&business, businessID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Business not found.")
		return
	}

	c.JSON(http.StatusOK, dto.NewBusiness(&business))
}

func (h *BusinessHandler) UpdateMe(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextActorID).(uint)

	var business models.Business
	if err := h.db.First(&business, businessID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Business not found.")
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Invalid request data.")
		return
	}

	if req.Name != nil {
		business.Name = *req.Name
	}
	if req.Address != nil {
		business.Address = *req.Address
	}
	if req.City != nil {
		business.City = *req.City
	}
	if req.State != nil {
		business.State = strings.ToUpper(strings.TrimSpace(*req.State))
	}
	if req.PhoneNumber != nil {
		business.PhoneNumber = *req.PhoneNumber
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
		business.PasswordHash = hashed
	}

	if err := h.db.Save(&business).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Could not update business.")
		return
	}

	c.JSON(http.StatusOK, dto.NewBusiness(&business))
}
