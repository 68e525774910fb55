// Package dto holds the transport representations. Password hashes are never
// part of a DTO, and nesting stops one level down: collections below that are
// id references, which keeps payloads bounded and cycle-free
// (User -> Appointment -> Business -> Appointments -> ...).
package dto

import "github.com/TatianaS7/booksy/internal/models"

const (
	dateLayout = "Mon, 02 Jan 2006"
	timeLayout = "15:04"
)

type AppointmentDTO struct {
	ID         uint   `json:"id"`
	Reference  string `json:"reference"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Status     string `json:"status"`
	UserID     uint   `json:"user_id"`
	BusinessID uint   `json:"business_id"`
	ServiceID  uint   `json:"service_id"`
	Notes      string `json:"notes"`
}

func NewAppointment(ap *models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:         ap.ID,
		Reference:  ap.Reference,
		Date:       ap.StartTime.UTC().Format(dateLayout),
		Time:       ap.StartTime.UTC().Format(timeLayout),
		Status:     ap.Status,
		UserID:     ap.UserID,
		BusinessID: ap.BusinessID,
		ServiceID:  ap.ServiceID,
		Notes:      ap.Notes,
	}
}

func NewAppointments(aps []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(aps))
	for i := range aps {
		out = append(out, NewAppointment(&aps[i]))
	}
	return out
}

type ServiceDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	BusinessID  uint    `json:"business_id"`
}

func NewService(s *models.Service) ServiceDTO {
	return ServiceDTO{
		ID:          s.ID,
		Name:        s.Name,
		Duration:    s.DurationMin,
		Price:       s.Price,
		Description: s.Description,
		BusinessID:  s.BusinessID,
	}
}

func NewServices(services []models.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(services))
	for i := range services {
		out = append(out, NewService(&services[i]))
	}
	return out
}

type UserDTO struct {
	ID           uint             `json:"id"`
	FullName     string           `json:"full_name"`
	Email        string           `json:"email"`
	Username     string           `json:"username"`
	PhoneNumber  string           `json:"phone_number"`
	Appointments []AppointmentDTO `json:"appointments"`
}

// NewUser nests the user's appointments by value; the appointments themselves
// reference their business/service by id only.
func NewUser(u *models.User, appointments []models.Appointment) UserDTO {
	return UserDTO{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Username:     u.Username,
		PhoneNumber:  u.PhoneNumber,
		Appointments: NewAppointments(appointments),
	}
}

type BusinessDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`

	Services       []ServiceDTO `json:"services"`
	AppointmentIDs []uint       `json:"appointment_ids"`
}

// NewBusiness expects Services and Appointments to be preloaded on b.
func NewBusiness(b *models.Business) BusinessDTO {
	apIDs := make([]uint, 0, len(b.Appointments))
	for i := range b.Appointments {
		apIDs = append(apIDs, b.Appointments[i].ID)
	}

	return BusinessDTO{
		ID:             b.ID,
		Name:           b.Name,
		Address:        b.Address,
		City:           b.City,
		State:          b.State,
		PhoneNumber:    b.PhoneNumber,
		Email:          b.Email,
		Services:       NewServices(b.Services),
		AppointmentIDs: apIDs,
	}
}

func NewBusinesses(businesses []models.Business) []BusinessDTO {
	out := make([]BusinessDTO, 0, len(businesses))
	for i := range businesses {
		out = append(out, NewBusiness(&businesses[i]))
	}
	return out
}
