package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense is a single cost entry. Field is the expense category
// (maintenance, cleaning, utilities and so on; free text).
type Expense struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CompanyUID   uuid.UUID  `json:"company_uid" db:"company_uid"`
	Field        string     `json:"field" db:"field"`
	Description  *string    `json:"description" db:"description"`
	Date         time.Time  `json:"date" db:"date"`
	Amount       float64    `json:"amount" db:"amount"`
	ReceiptImage *string    `json:"receiptImage" db:"receipt_image"`
	CreatedBy    *uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
