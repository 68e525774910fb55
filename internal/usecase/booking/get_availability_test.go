package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/TatianaS7/booksy/internal/domain/booking"
	"github.com/TatianaS7/booksy/internal/httperr"
	"github.com/TatianaS7/booksy/internal/models"
)

func TestAvailabilityEmptyDay(t *testing.T) {
	env := setupEnv(t)
	uc := NewGetAvailability(env.repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BusinessID: env.business.ID,
		ServiceID:  env.service.ID,
		Date:       time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	// 09:00 to 18:00 holds 18 half-hour slots
	require.Len(t, slots, 18)
	assert.Equal(t, domain.TimeSlot{Start: "09:00", End: "09:30"}, slots[0])
	assert.Equal(t, domain.TimeSlot{Start: "17:30", End: "18:00"}, slots[17])
}

func TestAvailabilitySkipsBookedSlots(t *testing.T) {
	env := setupEnv(t)
	uc := NewGetAvailability(env.repo)

	bookSlot(t, env, "2024-09-04", "14:30")

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BusinessID: env.business.ID,
		ServiceID:  env.service.ID,
		Date:       time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Len(t, slots, 17)
	for _, s := range slots {
		assert.NotEqual(t, "14:30", s.Start)
	}
}

func TestAvailabilityIgnoresCancelled(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	uc := NewGetAvailability(env.repo)

	ap := bookSlot(t, env, "2024-09-04", "14:30")
	_, err := NewCancelAppointment(env.repo, env.dispatcher).
		ExecuteForUser(ctx, env.user.ID, ap.ID)
	require.NoError(t, err)

	slots, err := uc.Execute(ctx, domain.AvailabilityInput{
		BusinessID: env.business.ID,
		ServiceID:  env.service.ID,
		Date:       time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Len(t, slots, 18)
}

func TestAvailabilityAgreesWithCreateOnStraddlingBooking(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	long := models.Service{
		BusinessID:  env.business.ID,
		Name:        "Cut and Color",
		DurationMin: 60,
		Price:       75,
	}
	require.NoError(t, env.db.Create(&long).Error)

	// 08:30 to 09:30 runs into the business day
	createUC := NewCreateAppointment(env.repo, env.dispatcher)
	_, err := createUC.Execute(ctx, CreateAppointmentInput{
		UserID:     env.user.ID,
		BusinessID: env.business.ID,
		ServiceID:  long.ID,
		Date:       "2024-09-04",
		Time:       "08:30",
	})
	require.NoError(t, err)

	slots, err := NewGetAvailability(env.repo).Execute(ctx, domain.AvailabilityInput{
		BusinessID: env.business.ID,
		ServiceID:  env.service.ID,
		Date:       time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// the 09:00 slot is blocked, so it must not be offered
	require.Len(t, slots, 17)
	assert.Equal(t, domain.TimeSlot{Start: "09:30", End: "10:00"}, slots[0])

	// every offered slot must actually be bookable
	_, err = createUC.Execute(ctx, CreateAppointmentInput{
		UserID:     env.user.ID,
		BusinessID: env.business.ID,
		ServiceID:  env.service.ID,
		Date:       "2024-09-04",
		Time:       slots[0].Start,
	})
	assert.NoError(t, err)
}

func TestAvailabilityServiceMismatch(t *testing.T) {
	env := setupEnv(t)
	uc := NewGetAvailability(env.repo)

	other := models.Business{Name: "Polished", Email: "book@polished.example.com", PasswordHash: "x"}
	require.NoError(t, env.db.Create(&other).Error)
	foreign := models.Service{BusinessID: other.ID, Name: "Manicure", DurationMin: 45, Price: 35}
	require.NoError(t, env.db.Create(&foreign).Error)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BusinessID: env.business.ID,
		ServiceID:  foreign.ID,
		Date:       time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC),
	})

	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceMismatch))
}

func TestAvailabilitySlotLengthFollowsService(t *testing.T) {
	env := setupEnv(t)
	uc := NewGetAvailability(env.repo)

	long := models.Service{
		BusinessID:  env.business.ID,
		Name:        "Full Treatment",
		DurationMin: 120,
		Price:       120,
	}
	require.NoError(t, env.db.Create(&long).Error)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		BusinessID: env.business.ID,
		ServiceID:  long.ID,
		Date:       time.Date(2024, 9, 4, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	// four two-hour slots fit between 09:00 and 18:00
	require.Len(t, slots, 4)
	assert.Equal(t, domain.TimeSlot{Start: "09:00", End: "11:00"}, slots[0])
}
