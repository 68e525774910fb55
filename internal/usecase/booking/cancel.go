package booking

import (
	"context"
	"time"

	"github.com/TatianaS7/booksy/internal/audit"
	domain "github.com/TatianaS7/booksy/internal/domain/booking"
	"github.com/TatianaS7/booksy/internal/httperr"
	"github.com/TatianaS7/booksy/internal/models"
)

// Cancellation is a soft delete: the row stays, status becomes cancelled and
// the slot is released for other bookings.
type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ExecuteForUser cancels an appointment owned by the given user.
func (uc *CancelAppointment) ExecuteForUser(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return uc.cancel(ctx, ap, &userID)
}

// ExecuteForBusiness cancels an appointment booked with the given business.
func (uc *CancelAppointment) ExecuteForBusiness(
	ctx context.Context,
	businessID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForBusiness(ctx, appointmentID, businessID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return uc.cancel(ctx, ap, nil)
}

func (uc *CancelAppointment) cancel(
	ctx context.Context,
	ap *models.Appointment,
	userID *uint,
) (*models.Appointment, error) {

	if err := domain.Cancel(ap, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		UserID:     userID,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
