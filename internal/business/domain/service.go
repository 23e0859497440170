package domain

import (
	"context"
	"errors"
	"time"
)

type Service interface {
	// ResolveActive loads a business by ID and rejects suspended accounts.
	// Request authentication goes through here.
	ResolveActive(ctx context.Context, id int64) (*Business, error)
	// Me returns the caller's own profile.
	Me(ctx context.Context) (*Response, error)
}

type Response struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ContactName  string    `json:"contact_name"`
	Phone        *string   `json:"phone,omitempty"`
	Address      *string   `json:"address,omitempty"`
	BusinessType *string   `json:"business_type,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

var (
	ErrOwnerRequired = errors.New("owner_required")
	ErrNotFound      = errors.New("business_not_found")
	ErrSuspended     = errors.New("business_suspended")
)
