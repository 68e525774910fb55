package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/TatianaS7/booksy/internal/domain/booking"
	"github.com/TatianaS7/booksy/internal/httperr"
	"github.com/TatianaS7/booksy/internal/models"
)

func bookSlot(t *testing.T, env *testEnv, date, timeStr string) *models.Appointment {
	uc := NewCreateAppointment(env.repo, env.dispatcher)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		UserID:     env.user.ID,
		BusinessID: env.business.ID,
		ServiceID:  env.service.ID,
		Date:       date,
		Time:       timeStr,
	})
	require.NoError(t, err)
	return ap
}

func TestConfirmThenComplete(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	ap := bookSlot(t, env, "2024-09-04", "14:30")

	confirmed, err := NewConfirmAppointment(env.repo, env.dispatcher).
		Execute(ctx, env.business.ID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), confirmed.Status)

	completed, err := NewCompleteAppointment(env.repo, env.dispatcher).
		Execute(ctx, env.business.ID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), completed.Status)
	assert.NotNil(t, completed.CompletedAt)
}

func TestCompleteWithoutConfirm(t *testing.T) {
	env := setupEnv(t)
	ap := bookSlot(t, env, "2024-09-04", "14:30")

	_, err := NewCompleteAppointment(env.repo, env.dispatcher).
		Execute(context.Background(), env.business.ID, ap.ID)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestConfirmWrongBusiness(t *testing.T) {
	env := setupEnv(t)
	ap := bookSlot(t, env, "2024-09-04", "14:30")

	_, err := NewConfirmAppointment(env.repo, env.dispatcher).
		Execute(context.Background(), env.business.ID+99, ap.ID)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestCancelReleasesSlot(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	ap := bookSlot(t, env, "2024-09-04", "14:30")

	cancelled, err := NewCancelAppointment(env.repo, env.dispatcher).
		ExecuteForUser(ctx, env.user.ID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	// row survives as history
	var stored models.Appointment
	require.NoError(t, env.db.First(&stored, ap.ID).Error)
	assert.Equal(t, string(domain.StatusCancelled), stored.Status)

	// and the slot is bookable again
	bookSlot(t, env, "2024-09-04", "14:30")
}

func TestCancelTwice(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	ap := bookSlot(t, env, "2024-09-04", "14:30")

	uc := NewCancelAppointment(env.repo, env.dispatcher)

	_, err := uc.ExecuteForUser(ctx, env.user.ID, ap.ID)
	require.NoError(t, err)

	_, err = uc.ExecuteForUser(ctx, env.user.ID, ap.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestCancelForBusiness(t *testing.T) {
	env := setupEnv(t)
	ap := bookSlot(t, env, "2024-09-04", "14:30")

	cancelled, err := NewCancelAppointment(env.repo, env.dispatcher).
		ExecuteForBusiness(context.Background(), env.business.ID, ap.ID)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
}

func TestCancelSomeoneElsesAppointment(t *testing.T) {
	env := setupEnv(t)
	ap := bookSlot(t, env, "2024-09-04", "14:30")

	other := models.User{
		FullName:     "Marcus Lee",
		Email:        "marcus@example.com",
		Username:     "mlee",
		PhoneNumber:  "5550100002",
		PasswordHash: "x",
	}
	require.NoError(t, env.db.Create(&other).Error)

	_, err := NewCancelAppointment(env.repo, env.dispatcher).
		ExecuteForUser(context.Background(), other.ID, ap.ID)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}
