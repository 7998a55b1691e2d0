package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"mybnb/internal/caching"
	"mybnb/internal/models"
	"mybnb/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
)

// ChargeStatusCaptured is the single Tap status that marks a payment as
// settled; every other status is treated as a failure.
const ChargeStatusCaptured = "CAPTURED"

// PlanPrices is the fixed plan price table, in USD per month.
var PlanPrices = map[string]float64{
	"basic":      30,
	"premium":    50,
	"enterprise": 100,
}

const (
	chargeCurrency    = "USD"
	pendingPaymentTTL = 24 * time.Hour
)

// SubscriptionChargeRequest is what the create-charge endpoint accepts; the
// service derives the full Tap payload from it and the plan table.
type SubscriptionChargeRequest struct {
	CompanyID        uuid.UUID `json:"company_id"`
	CompanyName      string    `json:"company_name"`
	Plan             string    `json:"plan"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	PhoneCountryCode int       `json:"phone_country_code"`
	PhoneNumber      int64     `json:"phone_number"`
}

// PaymentService drives the subscription payment flow: charge creation before
// the redirect, and the single verification call after the user returns.
type PaymentService interface {
	CreateSubscriptionCharge(ctx context.Context, req *SubscriptionChargeRequest) (*TapCharge, error)
	VerifyCharge(ctx context.Context, companyID uuid.UUID, tapID string) (*TapCharge, error)
}

type paymentService struct {
	tap             TapService
	companyRepo     repositories.CompanyRepository
	cache           caching.CacheService
	callbackBaseURL string
}

func NewPaymentService(tap TapService, companyRepo repositories.CompanyRepository, cache caching.CacheService, callbackBaseURL string) PaymentService {
	return &paymentService{
		tap:             tap,
		companyRepo:     companyRepo,
		cache:           cache,
		callbackBaseURL: callbackBaseURL,
	}
}

// newReference mints a unique-looking charge reference. References are not
// deduplicated anywhere; two calls can in principle collide and nothing
// guards against reuse.
func newReference(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), random.String(8, random.Lowercase+random.Numeric))
}

// CreateSubscriptionCharge creates a Tap charge for the company's plan and
// records the pending-payment context so the callback can be reconciled after
// the redirect round trip. The returned charge carries the hosted payment
// page URL in Transaction.URL.
func (s *paymentService) CreateSubscriptionCharge(ctx context.Context, req *SubscriptionChargeRequest) (*TapCharge, error) {
	price, ok := PlanPrices[req.Plan]
	if !ok {
		return nil, fmt.Errorf("invalid plan: %s", req.Plan)
	}

	transactionRef := newReference("txn")
	orderRef := newReference("ord")

	chargeReq := &TapChargeRequest{
		Amount:            price,
		Currency:          chargeCurrency,
		CustomerInitiated: true,
		ThreeDSecure:      true,
		SaveCard:          false,
		Description:       fmt.Sprintf("Subscription for %s plan - %s", req.Plan, req.CompanyName),
		Metadata: map[string]string{
			"company_id": req.CompanyID.String(),
			"plan":       req.Plan,
		},
		Receipt:   TapReceipt{Email: true, SMS: false},
		Reference: TapReference{Transaction: transactionRef, Order: orderRef},
		Customer: TapCustomer{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     TapPhone{CountryCode: req.PhoneCountryCode, Number: req.PhoneNumber},
		},
		Source:   TapSource{ID: "src_all"},
		Redirect: TapRedirect{URL: fmt.Sprintf("%s/payment/callback?company_id=%s", s.callbackBaseURL, req.CompanyID)},
	}

	charge, err := s.tap.CreateCharge(ctx, chargeReq)
	if err != nil {
		return nil, err
	}
	if charge.Transaction.URL == "" {
		return nil, fmt.Errorf("no payment URL received")
	}

	pending := &models.PendingPayment{
		CompanyID:      req.CompanyID,
		Plan:           req.Plan,
		Amount:         price,
		TransactionRef: transactionRef,
		CreatedAt:      time.Now(),
	}
	if err := s.cache.SetPendingPayment(ctx, pending, pendingPaymentTTL); err != nil {
		// The charge already exists upstream; losing the pending record only
		// costs the callback its plan/amount context.
		log.Printf("failed to record pending payment %s: %v", transactionRef, err)
	}

	return charge, nil
}

// VerifyCharge performs the one post-redirect verification call and applies
// the outcome. CAPTURED marks the company paid; any other status, or a failed
// lookup, marks it failed. The status write is unconditional so re-running
// the callback (page refresh) just re-applies the same result.
func (s *paymentService) VerifyCharge(ctx context.Context, companyID uuid.UUID, tapID string) (*TapCharge, error) {
	charge, err := s.tap.GetCharge(ctx, tapID)
	if err != nil {
		if companyID != uuid.Nil {
			if uerr := s.companyRepo.UpdatePaymentStatus(ctx, companyID, models.PaymentStatusFailed, nil); uerr != nil {
				log.Printf("failed to mark company %s payment failed: %v", companyID, uerr)
			}
		}
		return nil, err
	}

	// A callback arriving without a company id can still be reconciled
	// through the pending-payment record keyed by the charge reference.
	if companyID == uuid.Nil && charge.Reference.Transaction != "" {
		if pending, err := s.cache.GetPendingPayment(ctx, charge.Reference.Transaction); err != nil {
			log.Printf("failed to read pending payment %s: %v", charge.Reference.Transaction, err)
		} else if pending != nil {
			companyID = pending.CompanyID
		}
	}

	if charge.Status == ChargeStatusCaptured {
		if companyID != uuid.Nil {
			if err := s.companyRepo.UpdatePaymentStatus(ctx, companyID, models.PaymentStatusPaid, &charge.ID); err != nil {
				return nil, fmt.Errorf("charge captured but status update failed: %w", err)
			}
		}
		if charge.Reference.Transaction != "" {
			if err := s.cache.DeletePendingPayment(ctx, charge.Reference.Transaction); err != nil {
				log.Printf("failed to clear pending payment %s: %v", charge.Reference.Transaction, err)
			}
		}
		return charge, nil
	}

	if companyID != uuid.Nil {
		if err := s.companyRepo.UpdatePaymentStatus(ctx, companyID, models.PaymentStatusFailed, &charge.ID); err != nil {
			log.Printf("failed to mark company %s payment failed: %v", companyID, err)
		}
	}
	return charge, nil
}
