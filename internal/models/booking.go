package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking methods recognised by the reporting endpoints. Anything else is
// ignored by the breakdown, not bucketed into a catch-all.
const (
	BookingMethodOnline   = "online"
	BookingMethodPhone    = "phone"
	BookingMethodInPerson = "in-person"
)

// Booking is a single reservation. TotalAmount should equal
// DailyAmount * NumberOfDays but the server does not enforce that; the
// invariant is maintained client-side only.
type Booking struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	CompanyUID    uuid.UUID  `json:"company_uid" db:"company_uid"`
	PropertyID    *uuid.UUID `json:"propertyId" db:"property_id"`
	CustomerName  string     `json:"customerName" db:"customer_name"`
	EntryDate     time.Time  `json:"entryDate" db:"entry_date"`
	ExitDate      time.Time  `json:"exitDate" db:"exit_date"`
	DailyAmount   float64    `json:"dailyAmount" db:"daily_amount"`
	NumberOfDays  int        `json:"numberOfDays" db:"number_of_days"`
	TotalAmount   float64    `json:"totalAmount" db:"total_amount"`
	BookingMethod string     `json:"bookingMethod" db:"booking_method"`
	ReceiptImage  *string    `json:"receiptImage" db:"receipt_image"`
	CreatedBy     *uuid.UUID `json:"created_by" db:"created_by"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}
