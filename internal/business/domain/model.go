package domain

import "time"

type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Business is a registered B2B buyer. Credentials live with the external
// identity provider; this row only carries the profile.
type Business struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:text;not null"`
	Email        string    `json:"email" gorm:"type:text;not null;uniqueIndex"`
	ContactName  string    `json:"contact_name" gorm:"type:text;not null"`
	Phone        *string   `json:"phone,omitempty" gorm:"type:text"`
	Address      *string   `json:"address,omitempty" gorm:"type:text"`
	BusinessType *string   `json:"business_type,omitempty" gorm:"type:text"`
	Status       Status    `json:"status" gorm:"type:text;not null;default:active"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"not null"`
}

func (Business) TableName() string { return "businesses" }

func (b *Business) Active() bool { return b.Status == StatusActive }
