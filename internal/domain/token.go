package domain

import (
	"time"

	"gorm.io/datatypes"
)

// JwtToken is a revocation-list record. A signed token is only accepted while
// a record with its jti exists.
type JwtToken struct {
	ID           uint           `json:"-" gorm:"primaryKey"`
	UserID       uint           `json:"-" gorm:"not null;index"`
	User         *User          `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	UniqueID     string         `json:"unique_id" gorm:"size:64;uniqueIndex;not null"`
	TokenTitle   *string        `json:"token_title" gorm:"size:255"`
	Restrictions datatypes.JSON `json:"restrictions"`
	Permissions  datatypes.JSON `json:"permissions"`
	ExpiresAt    time.Time      `json:"expires_at" gorm:"not null;index"`
	LastUsedAt   *time.Time     `json:"last_used_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type PasswordReset struct {
	Email     string    `json:"email" gorm:"size:255;primaryKey"`
	Token     string    `json:"-" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (PasswordReset) TableName() string {
	return "password_reset_tokens"
}
