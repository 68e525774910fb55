package models

import "time"

type Business struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Address     string `gorm:"size:100" json:"address"`
	City        string `gorm:"size:100" json:"city"`
	State       string `gorm:"size:2" json:"state"`
	PhoneNumber string `gorm:"size:20" json:"phone_number"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Services     []Service     `gorm:"foreignKey:BusinessID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:BusinessID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
