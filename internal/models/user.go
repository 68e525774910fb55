package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username     string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PhoneNumber  string `gorm:"size:20;uniqueIndex;not null" json:"phone_number"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Appointments []Appointment `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
