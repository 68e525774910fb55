package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/TatianaS7/booksy/internal/audit"
	domain "github.com/TatianaS7/booksy/internal/domain/booking"
	"github.com/TatianaS7/booksy/internal/httperr"
	"github.com/TatianaS7/booksy/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID     uint
	BusinessID uint
	ServiceID  uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if in.UserID == 0 || in.BusinessID == 0 || in.ServiceID == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeValidation)
	}

	if _, err := uc.repo.GetUserByID(ctx, in.UserID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	if _, err := uc.repo.GetBusinessByID(ctx, in.BusinessID); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	service, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	// The referenced service must belong to the referenced business.
	if service.BusinessID != in.BusinessID {
		return nil, httperr.ErrBusiness(httperr.CodeServiceMismatch)
	}

	start, err := parseSlotStart(in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	end := start.Add(time.Duration(service.DurationMin) * time.Minute)

	ap := &models.Appointment{
		Reference:  uuid.NewString(),
		UserID:     in.UserID,
		BusinessID: in.BusinessID,
		ServiceID:  service.ID,
		StartTime:  start,
		EndTime:    end,
		Status:     string(domain.InitialStatus()),
		Notes:      in.Notes,
	}

	// The repository runs the slot-conflict check and the insert in one
	// transaction; a concurrent double-submit loses with time_conflict.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     &in.UserID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
