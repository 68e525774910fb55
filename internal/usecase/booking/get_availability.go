package booking

import (
	"context"
	"time"

	domain "github.com/TatianaS7/booksy/internal/domain/booking"
	"github.com/TatianaS7/booksy/internal/httperr"
)

// Businesses have no per-day schedule in the data model, so availability is
// computed over a fixed business day.
const (
	dayOpensAt  = 9 * time.Hour
	dayClosesAt = 18 * time.Hour
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	if service.BusinessID != in.BusinessID {
		return nil, httperr.ErrBusiness(httperr.CodeServiceMismatch)
	}

	midnight := time.Date(
		in.Date.Year(), in.Date.Month(), in.Date.Day(),
		0, 0, 0, 0,
		time.UTC,
	)
	dayStart := midnight.Add(dayOpensAt)
	dayEnd := midnight.Add(dayClosesAt)

	appointments, err := uc.repo.ListAppointmentsOverlapping(
		ctx,
		in.BusinessID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slotDuration := time.Duration(service.DurationMin) * time.Minute
	slots := []domain.TimeSlot{}

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		conflict := false
		for _, ap := range appointments {
			if ap.Status == string(domain.StatusCancelled) {
				continue
			}
			if slotStart.Before(ap.EndTime) && slotEnd.After(ap.StartTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: slotStart.Format(timeLayout),
				End:   slotEnd.Format(timeLayout),
			})
		}
	}

	return slots, nil
}
