// Package seed loads demo fixtures into an empty (or stale) database. It is a
// dev/bootstrap helper, not part of the runtime contract.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/TatianaS7/booksy/internal/domain/booking"
	"github.com/TatianaS7/booksy/internal/models"
	"github.com/TatianaS7/booksy/internal/password"
)

type seedUser struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type seedBusiness struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

type seedService struct {
	Name        string  `json:"name"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	BusinessID  uint    `json:"business_id"`
}

type seedAppointment struct {
	Date       string `json:"date"`
	Time       string `json:"time"`
	UserID     uint   `json:"user_id"`
	BusinessID uint   `json:"business_id"`
	ServiceID  uint   `json:"service_id"`
	Notes      string `json:"notes"`
}

// Load truncates the four entity tables and repopulates them from the JSON
// fixtures in dir. Passwords in fixtures are plaintext and hashed on load.
func Load(db *gorm.DB, dir string) error {
	del := db.Session(&gorm.Session{AllowGlobalUpdate: true})

	// children before parents
	if err := del.Delete(&models.Appointment{}).Error; err != nil {
		return err
	}
	if err := del.Delete(&models.Service{}).Error; err != nil {
		return err
	}
	if err := del.Delete(&models.User{}).Error; err != nil {
		return err
	}
	if err := del.Delete(&models.Business{}).Error; err != nil {
		return err
	}

	var users []seedUser
	if err := readFixture(dir, "users.json", &users); err != nil {
		return err
	}
	for _, u := range users {
		hashed, err := password.Hash(u.Password)
		if err != nil {
			return err
		}
		user := models.User{
			FullName:     u.FullName,
			Email:        u.Email,
			Username:     u.Username,
			PhoneNumber:  u.PhoneNumber,
			PasswordHash: hashed,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	}

	var businesses []seedBusiness
	if err := readFixture(dir, "businesses.json", &businesses); err != nil {
		return err
	}
	for _, b := range businesses {
		hashed, err := password.Hash(b.Password)
		if err != nil {
			return err
		}
		business := models.Business{
			Name:         b.Name,
			Address:      b.Address,
			City:         b.City,
			State:        b.State,
			PhoneNumber:  b.PhoneNumber,
			Email:        b.Email,
			PasswordHash: hashed,
		}
		if err := db.Create(&business).Error; err != nil {
			return err
		}
	}

	var services []seedService
	if err := readFixture(dir, "services.json", &services); err != nil {
		return err
	}
	for _, s := range services {
		service := models.Service{
			BusinessID:  s.BusinessID,
			Name:        s.Name,
			DurationMin: s.Duration,
			Price:       s.Price,
			Description: s.Description,
		}
		if err := db.Create(&service).Error; err != nil {
			return err
		}
	}

	var appointments []seedAppointment
	if err := readFixture(dir, "appointments.json", &appointments); err != nil {
		return err
	}
	for _, a := range appointments {
		start, err := parseSlot(a.Date, a.Time)
		if err != nil {
			return fmt.Errorf("appointment fixture: %w", err)
		}

		var service models.Service
		if err := db.First(&service, a.ServiceID).Error; err != nil {
			return fmt.Errorf("appointment fixture references service %d: %w", a.ServiceID, err)
		}

		ap := models.Appointment{
			Reference:  uuid.NewString(),
			UserID:     a.UserID,
			BusinessID: a.BusinessID,
			ServiceID:  a.ServiceID,
			StartTime:  start,
			EndTime:    start.Add(time.Duration(service.DurationMin) * time.Minute),
			Status:     string(domain.InitialStatus()),
			Notes:      a.Notes,
		}
		if err := db.Create(&ap).Error; err != nil {
			return err
		}
	}

	return nil
}

func readFixture(dir, name string, dest any) error {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dest)
}

// Fixture times may carry seconds ("14:30:00"); seconds are dropped either way.
func parseSlot(dateStr, timeStr string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, dateStr+" "+timeStr, time.UTC); err == nil {
			return t.Truncate(time.Minute), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date/time %q %q", dateStr, timeStr)
}
