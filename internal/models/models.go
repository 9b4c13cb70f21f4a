package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"  json:"id"`
	Email             string     `gorm:"uniqueIndex;not null"  json:"email"`
	Name              string     `gorm:"not null"              json:"name"`
	PasswordHash      string     `gorm:"not null"              json:"-"`
	Role              string     `gorm:"not null"              json:"role"`
	IsVerified        bool       `gorm:"default:false"         json:"is_verified"`
	VerificationToken string     `json:"-"`
	VerifiedAt        *time.Time `json:"verified_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Session is the server-side refresh token record, one row per user.
type Session struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"           json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	RefreshSecret string    `gorm:"uniqueIndex;not null"           json:"-"`
	IsValid       bool      `gorm:"default:true"                   json:"is_valid"`
	IP            string    `json:"ip"`
	UserAgent     string    `json:"user_agent"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TokenUser is the projection of User that goes into signed tokens and
// response bodies. Never carries the password hash or verification token.
type TokenUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func NewTokenUser(u *User) TokenUser {
	return TokenUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
