package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses a company moves through during subscription billing.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Company is a tenant. Bookings, expenses and properties reference it via
// CompanyUID; admins manage one or more companies.
type Company struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	UID                   uuid.UUID  `json:"uid" db:"uid"`
	Name                  string     `json:"name" db:"name"`
	Logo                  string     `json:"logo" db:"logo"`
	Plan                  string     `json:"plan" db:"plan"`
	AdminEmail            string     `json:"admin_email" db:"admin_email"`
	ManagersEmail         []string   `json:"managers_email" db:"managers_email"`
	IsSubscribed          bool       `json:"isSubscribed" db:"is_subscribed"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date" db:"subscription_start_date"`
	// The wire name keeps the original misspelling; clients depend on it.
	SubscriptionEndDate *time.Time `json:"subcription_end_date" db:"subscription_end_date"`
	PaymentStatus       string     `json:"payment_status" db:"payment_status"`
	TransactionID       *string    `json:"transaction_id" db:"transaction_id"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
}
