package domain

import (
	"time"
)

type User struct {
	ID              uint       `json:"-" gorm:"primaryKey"`
	UUID            string     `json:"uuid" gorm:"size:36;uniqueIndex;not null"`
	FirstName       string     `json:"first_name" gorm:"size:255;not null"`
	LastName        string     `json:"last_name" gorm:"size:255;not null"`
	IsAdmin         bool       `json:"is_admin" gorm:"not null;default:false"`
	Email           string     `json:"email" gorm:"size:255;uniqueIndex;not null"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	Password        string     `json:"-" gorm:"size:255;not null"`
	Avatar          *string    `json:"avatar" gorm:"size:36"`
	Address         string     `json:"address" gorm:"size:255;not null"`
	PhoneNumber     string     `json:"phone_number" gorm:"size:20;not null"`
	IsMarketing     bool       `json:"is_marketing" gorm:"not null;default:false"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	LastLoginAt     *time.Time `json:"last_login_at"`
}

// UserSortColumns are the columns list endpoints may order users by.
var UserSortColumns = []string{"created_at", "updated_at", "first_name", "last_name", "email", "last_login_at"}
