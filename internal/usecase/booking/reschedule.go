package booking

import (
	"context"
	"time"

	"github.com/TatianaS7/booksy/internal/audit"
	domain "github.com/TatianaS7/booksy/internal/domain/booking"
	"github.com/TatianaS7/booksy/internal/httperr"
	"github.com/TatianaS7/booksy/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// Nil fields are left untouched; only the owning user may reschedule.
type RescheduleAppointmentInput struct {
	UserID        uint
	AppointmentID uint

	Date      *string
	Time      *string
	Notes     *string
	ServiceID *uint
}

// ======================================================
// USE CASE
// ======================================================

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, in.AppointmentID, in.UserID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	service, err := uc.repo.GetServiceByID(ctx, ap.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if in.ServiceID != nil && *in.ServiceID != ap.ServiceID {
		service, err = uc.repo.GetServiceByID(ctx, *in.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		if service.BusinessID != ap.BusinessID {
			return nil, httperr.ErrBusiness(httperr.CodeServiceMismatch)
		}
		ap.ServiceID = service.ID
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	dateStr := ap.StartTime.UTC().Format(dateLayout)
	timeStr := ap.StartTime.UTC().Format(timeLayout)
	if in.Date != nil {
		dateStr = *in.Date
	}
	if in.Time != nil {
		timeStr = *in.Time
	}

	start, err := parseSlotStart(dateStr, timeStr)
	if err != nil {
		return nil, err
	}

	slotMoved := !start.Equal(ap.StartTime) || in.ServiceID != nil
	ap.StartTime = start
	ap.EndTime = start.Add(time.Duration(service.DurationMin) * time.Minute)

	if slotMoved {
		err = uc.repo.RescheduleAppointment(ctx, ap)
	} else {
		err = uc.repo.UpdateAppointment(ctx, ap)
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: ap.BusinessID,
		UserID:     &in.UserID,
		Action:     "appointment_rescheduled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
