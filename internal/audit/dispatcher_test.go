package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/TatianaS7/booksy/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}

func TestLoggerWritesRow(t *testing.T) {
	db := setupTestDB(t)
	logger := New(db)

	userID := uint(7)
	entityID := uint(42)
	err := logger.Log(1, &userID, "appointment_created", "appointment", &entityID, map[string]string{"k": "v"})
	require.NoError(t, err)

	var row models.AuditLog
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, uint(1), row.BusinessID)
	assert.Equal(t, "appointment_created", row.Action)
	assert.JSONEq(t, `{"k":"v"}`, row.Metadata)
}

func TestDispatcherDeliversAsync(t *testing.T) {
	db := setupTestDB(t)
	d := NewDispatcher(New(db))

	id := uint(1)
	d.Dispatch(Event{BusinessID: 1, Action: "appointment_created", Entity: "appointment", EntityID: &id})

	var count int64
	assert.Eventually(t, func() bool {
		db.Model(&models.AuditLog{}).Count(&count)
		return count == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDispatchNeverBlocksOnFullQueue(t *testing.T) {
	// no worker draining, so the queue stays full
	d := &Dispatcher{queue: make(chan Event, 1)}
	d.queue <- Event{}

	done := make(chan struct{})
	go func() {
		d.Dispatch(Event{BusinessID: 1, Action: "dropped"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Dispatch blocked on a full queue")
	}

	assert.Len(t, d.queue, 1)
}
