package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/TatianaS7/booksy/internal/models"
	"github.com/TatianaS7/booksy/internal/password"
)

func writeFixtures(t *testing.T) string {
	dir := t.TempDir()

	files := map[string]string{
		"users.json": `[
			{"full_name": "Ava Thompson", "email": "ava@example.com", "username": "avat",
			 "phone_number": "5550100001", "password": "password123"}
		]`,
		"businesses.json": `[
			{"name": "Shear Genius", "address": "12 Main St", "city": "Brooklyn", "state": "NY",
			 "phone_number": "5550200001", "email": "hello@sheargenius.example.com", "password": "business123"}
		]`,
		"services.json": `[
			{"name": "Haircut", "duration": 30, "price": 20.0, "description": "", "business_id": 1}
		]`,
		"appointments.json": `[
			{"date": "2024-09-04", "time": "14:30:00", "user_id": 1, "business_id": 1, "service_id": 1, "notes": "first visit"}
		]`,
	}

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	return dir
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Service{},
		&models.Appointment{},
	))

	return db
}

func TestLoad(t *testing.T) {
	db := setupTestDB(t)
	dir := writeFixtures(t)

	require.NoError(t, Load(db, dir))

	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.Equal(t, "ava@example.com", user.Email)
	assert.True(t, password.Verify("password123", user.PasswordHash))

	var business models.Business
	require.NoError(t, db.First(&business).Error)
	assert.Equal(t, "Shear Genius", business.Name)

	var ap models.Appointment
	require.NoError(t, db.First(&ap).Error)
	assert.Equal(t, time.Date(2024, 9, 4, 14, 30, 0, 0, time.UTC), ap.StartTime)
	assert.Equal(t, time.Date(2024, 9, 4, 15, 0, 0, 0, time.UTC), ap.EndTime)
	assert.Equal(t, "pending_confirmation", ap.Status)
	assert.NotEmpty(t, ap.Reference)
}

func TestLoadReplacesExistingData(t *testing.T) {
	db := setupTestDB(t)
	dir := writeFixtures(t)

	stale := models.User{
		FullName: "Stale", Email: "stale@example.com", Username: "stale",
		PhoneNumber: "5550109999", PasswordHash: "x",
	}
	require.NoError(t, db.Create(&stale).Error)

	require.NoError(t, Load(db, dir))

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var user models.User
	require.NoError(t, db.First(&user).Error)
	assert.Equal(t, "ava@example.com", user.Email)
}

func TestLoadMissingDir(t *testing.T) {
	db := setupTestDB(t)

	assert.Error(t, Load(db, filepath.Join(t.TempDir(), "nope")))
}

func TestParseSlot(t *testing.T) {
	got, err := parseSlot("2024-09-04", "14:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 4, 14, 30, 0, 0, time.UTC), got)

	got, err = parseSlot("2024-09-04", "14:30:45")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 9, 4, 14, 30, 0, 0, time.UTC), got)

	_, err = parseSlot("04-09-2024", "14:30")
	assert.Error(t, err)
}
