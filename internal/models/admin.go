package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin is an account that manages one or more companies. UID is the hosted
// auth provider's user id; CompanyUID lists the companies the admin manages.
type Admin struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	UID        uuid.UUID   `json:"uid" db:"uid"`
	Email      string      `json:"email" db:"email"`
	CompanyUID []uuid.UUID `json:"company_uid" db:"company_uid"`
	PhotoURL   *string     `json:"photo_url" db:"photo_url"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
}
