package handlers

import (
	"net/http"

	"mybnb/internal/common"
	"mybnb/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PaymentHandlers exposes the subscription payment flow over HTTP.
type PaymentHandlers struct {
	paymentService services.PaymentService
}

func NewPaymentHandlers(paymentService services.PaymentService) *PaymentHandlers {
	return &PaymentHandlers{paymentService: paymentService}
}

// CreateCharge handles POST /api/payment/create-charge. On success the client is
// expected to redirect the user to transaction.url in the response.
func (h *PaymentHandlers) CreateCharge(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.SubscriptionChargeRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.CompanyID == uuid.Nil {
		return common.SendClientError(c, "company_id is required")
	}
	if err := common.ValidatePlan(req.Plan); err != nil {
		return common.SendClientError(c, err.Error())
	}

	charge, err := h.paymentService.CreateSubscriptionCharge(ctx, &req)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, charge)
}

// VerifyCharge handles GET /api/payment/verify. tap_id is mandatory;
// company_id is optional and falls back to the merchant order reference
// recorded on the charge when absent. The response is a trimmed view of the
// charge, not the full Tap object.
func (h *PaymentHandlers) VerifyCharge(c echo.Context) error {
	ctx := c.Request().Context()

	tapID := c.QueryParam("tap_id")
	if tapID == "" {
		return common.SendClientError(c, "Missing tap_id parameter")
	}

	companyID := uuid.Nil
	if companyIDStr := c.QueryParam("company_id"); companyIDStr != "" {
		id, err := common.ValidateUUID(companyIDStr, "company_id")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		companyID = id
	}

	charge, err := h.paymentService.VerifyCharge(ctx, companyID, tapID)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":        charge.ID,
		"status":    charge.Status,
		"amount":    charge.Amount,
		"currency":  charge.Currency,
		"customer":  charge.Customer,
		"source":    charge.Source,
		"reference": charge.Reference,
	})
}
