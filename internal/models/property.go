package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is a rentable unit owned by a company.
type Property struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	CompanyUID uuid.UUID  `json:"company_uid" db:"company_uid"`
	Name       string     `json:"name" db:"name"`
	Location   *string    `json:"location" db:"location"`
	Status     string     `json:"status" db:"status"`
	Image      *string    `json:"image" db:"image"`
	CreatedBy  *uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
