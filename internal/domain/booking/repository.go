package booking

import (
	"context"
	"time"

	"github.com/TatianaS7/booksy/internal/models"
)

type Repository interface {
	// -------- Parents --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Appointment (create / reschedule, slot-guarded) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForUser(
		ctx context.Context,
		appointmentID uint,
		userID uint,
	) (*models.Appointment, error)

	GetAppointmentForBusiness(
		ctx context.Context,
		appointmentID uint,
		businessID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	// ListAppointmentsOverlapping returns appointments whose [start, end)
	// window intersects the given one, including ones that merely straddle
	// its edges.
	ListAppointmentsOverlapping(
		ctx context.Context,
		businessID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
