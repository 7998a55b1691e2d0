package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingPayment is the in-flight payment context recorded when a charge is
// created and cleared once the charge is captured. Keyed by the transaction
// reference; it is the server-side record of an unresolved redirect round
// trip.
type PendingPayment struct {
	CompanyID      uuid.UUID `json:"company_id"`
	Plan           string    `json:"plan"`
	Amount         float64   `json:"amount"`
	TransactionRef string    `json:"transaction_ref"`
	CreatedAt      time.Time `json:"created_at"`
}
