package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/TatianaS7/booksy/internal/audit"
	"github.com/TatianaS7/booksy/internal/cache"
	"github.com/TatianaS7/booksy/internal/config"
	infraRepo "github.com/TatianaS7/booksy/internal/infra/repository"
	"github.com/TatianaS7/booksy/internal/middleware"
	"github.com/TatianaS7/booksy/internal/models"
	ucBooking "github.com/TatianaS7/booksy/internal/usecase/booking"
)

const testSecret = "test-secret"

// async audit assertions poll with these bounds
const (
	eventuallyTimeout = 2 * time.Second
	eventuallyTick    = 10 * time.Millisecond
)

func jsonUnmarshal(b []byte, dest any) error {
	return json.Unmarshal(b, dest)
}

type testApp struct {
	db     *gorm.DB
	router *gin.Engine
	cfg    *config.Config
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	))

	return db
}

// newTestApp wires the same graph the route registration builds, minus Redis.
func newTestApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)
	cfg := &config.Config{JWTSecret: testSecret}

	repo := infraRepo.NewBookingGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(db))

	createUC := ucBooking.NewCreateAppointment(repo, dispatcher)
	rescheduleUC := ucBooking.NewRescheduleAppointment(repo, dispatcher)
	cancelUC := ucBooking.NewCancelAppointment(repo, dispatcher)
	confirmUC := ucBooking.NewConfirmAppointment(repo, dispatcher)
	completeUC := ucBooking.NewCompleteAppointment(repo, dispatcher)
	availabilityUC := ucBooking.NewGetAvailability(repo)

	authHandler := NewAuthHandler(db, cfg, dispatcher)
	userHandler := NewUserHandler(db)
	businessHandler := NewBusinessHandler(db, (*cache.Cache)(nil), availabilityUC)
	serviceHandler := NewServiceHandler(db)
	auditLogsHandler := NewAuditLogsHandler(db)
	appointmentHandler := NewAppointmentHandler(db, createUC, rescheduleUC, cancelUC, confirmUC, completeUC)

	r := gin.New()

	auth := r.Group("/auth")
	{
		auth.POST("/user/register", authHandler.RegisterUser)
		auth.POST("/user/login", authHandler.LoginUser)
		auth.POST("/business/register", authHandler.RegisterBusiness)
		auth.POST("/business/login", authHandler.LoginBusiness)
	}

	business := r.Group("/business")
	{
		business.GET("/all", businessHandler.ListAll)
		business.GET("/search", businessHandler.Search)
		business.GET("/:id", businessHandler.GetByID)
		business.GET("/:id/services", businessHandler.ListServices)
		business.GET("/:id/availability", businessHandler.Availability)
	}

	user := r.Group("/user/me")
	user.Use(middleware.AuthMiddleware(cfg, middleware.ActorUser))
	{
		user.GET("", userHandler.GetMe)
		user.PATCH("", userHandler.UpdateMe)

		user.GET("/appointments", userHandler.ListMyAppointments)
		user.POST("/appointments", appointmentHandler.Create)
		user.GET("/appointments/:id", appointmentHandler.Get)
		user.PATCH("/appointments/:id", appointmentHandler.Update)
		user.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		user.DELETE("/appointments/:id", appointmentHandler.Cancel)
	}

	me := r.Group("/business/me")
	me.Use(middleware.AuthMiddleware(cfg, middleware.ActorBusiness))
	{
		me.GET("", businessHandler.GetMe)
		me.PATCH("", businessHandler.UpdateMe)

		me.GET("/services", serviceHandler.List)
		me.POST("/services", serviceHandler.Create)
		me.PATCH("/services/:id", serviceHandler.Update)

		me.GET("/appointments", appointmentHandler.ListByDate)
		me.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		me.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
		me.PATCH("/appointments/:id/cancel", appointmentHandler.CancelForBusiness)

		me.GET("/audit-logs", auditLogsHandler.List)
	}

	return &testApp{db: db, router: r, cfg: cfg}
}

func (a *testApp) token(t *testing.T, id uint, actor string) string {
	claims := jwt.MapClaims{
		"sub":   id,
		"actor": actor,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	return signed
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// seedUserAccount creates a user directly and returns it with a valid token.
func (a *testApp) seedUserAccount(t *testing.T, email, username, phone string) (models.User, string) {
	w := a.do(t, "POST", "/auth/user/register", "", gin.H{
		"full_name":    "Test User",
		"email":        email,
		"username":     username,
		"phone_number": phone,
		"password":     "password123",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	body := decode(t, w)
	id := uint(body["user"].(map[string]any)["id"].(float64))

	var user models.User
	require.NoError(t, a.db.First(&user, id).Error)

	return user, body["token"].(string)
}

func (a *testApp) seedBusinessAccount(t *testing.T, name, email string) (models.Business, string) {
	w := a.do(t, "POST", "/auth/business/register", "", gin.H{
		"name":         name,
		"address":      "12 Main St",
		"city":         "Brooklyn",
		"state":        "ny",
		"phone_number": "5550200001",
		"email":        email,
		"password":     "business123",
	})
	require.Equal(t, 201, w.Code, w.Body.String())

	body := decode(t, w)
	id := uint(body["business"].(map[string]any)["id"].(float64))

	var business models.Business
	require.NoError(t, a.db.First(&business, id).Error)

	return business, body["token"].(string)
}

func (a *testApp) seedService(t *testing.T, businessID uint, name string, duration int, price float64) models.Service {
	service := models.Service{
		BusinessID:  businessID,
		Name:        name,
		DurationMin: duration,
		Price:       price,
	}
	require.NoError(t, a.db.Create(&service).Error)
	return service
}
