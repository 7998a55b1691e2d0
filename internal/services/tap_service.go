package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// defaultTapAPIURL is Tap Payments' charges endpoint.
const defaultTapAPIURL = "https://api.tap.company/v2/charges/"

// TapService is the HTTP client for the Tap Payments charges API. One call,
// one request: no retries and no timeout beyond what the context carries,
// matching how the rest of the app talks to external systems.
type TapService interface {
	CreateCharge(ctx context.Context, req *TapChargeRequest) (*TapCharge, error)
	GetCharge(ctx context.Context, chargeID string) (*TapCharge, error)
}

type tapService struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

// NewTapService creates a Tap client. baseURL is overridable for tests; empty
// means the production API.
func NewTapService(secretKey, baseURL string) TapService {
	if baseURL == "" {
		baseURL = defaultTapAPIURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &tapService{
		secretKey: secretKey,
		baseURL:   baseURL,
		http:      &http.Client{},
	}
}

// TapChargeRequest is the charge-creation payload, field names per Tap's API.
type TapChargeRequest struct {
	Amount            float64           `json:"amount"`
	Currency          string            `json:"currency"`
	CustomerInitiated bool              `json:"customer_initiated"`
	ThreeDSecure      bool              `json:"threeDSecure"`
	SaveCard          bool              `json:"save_card"`
	Description       string            `json:"description"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	Receipt           TapReceipt        `json:"receipt"`
	Reference         TapReference      `json:"reference"`
	Customer          TapCustomer       `json:"customer"`
	Source            TapSource         `json:"source"`
	Redirect          TapRedirect       `json:"redirect"`
}

type TapReceipt struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

type TapReference struct {
	Transaction string `json:"transaction,omitempty"`
	Order       string `json:"order,omitempty"`
}

type TapPhone struct {
	CountryCode int   `json:"country_code"`
	Number      int64 `json:"number"`
}

type TapCustomer struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     TapPhone `json:"phone"`
}

type TapSource struct {
	ID string `json:"id"`
}

type TapRedirect struct {
	URL string `json:"url"`
}

type TapTransaction struct {
	URL string `json:"url"`
}

// TapCharge is the charge object Tap returns from both creation and lookup.
type TapCharge struct {
	ID          string         `json:"id"`
	Status      string         `json:"status"`
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Description string         `json:"description,omitempty"`
	Customer    TapCustomer    `json:"customer"`
	Source      TapSource      `json:"source"`
	Reference   TapReference   `json:"reference"`
	Transaction TapTransaction `json:"transaction"`
}

// tapError is the error shape Tap responds with on non-2xx.
type tapError struct {
	Message string `json:"message"`
	Errors  []struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"errors"`
}

func (e *tapError) text(statusCode int) string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Errors) > 0 && e.Errors[0].Description != "" {
		return e.Errors[0].Description
	}
	return fmt.Sprintf("tap request failed with status %d", statusCode)
}

func (s *tapService) CreateCharge(ctx context.Context, req *TapChargeRequest) (*TapCharge, error) {
	body, err := s.makeRequest(ctx, http.MethodPost, "", req)
	if err != nil {
		return nil, err
	}

	charge := &TapCharge{}
	if err := json.Unmarshal(body, charge); err != nil {
		return nil, fmt.Errorf("failed to decode tap charge response: %w", err)
	}
	return charge, nil
}

func (s *tapService) GetCharge(ctx context.Context, chargeID string) (*TapCharge, error) {
	body, err := s.makeRequest(ctx, http.MethodGet, chargeID, nil)
	if err != nil {
		return nil, err
	}

	charge := &TapCharge{}
	if err := json.Unmarshal(body, charge); err != nil {
		return nil, fmt.Errorf("failed to decode tap charge response: %w", err)
	}
	return charge, nil
}

func (s *tapService) makeRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		tapErr := &tapError{}
		if err := json.Unmarshal(body, tapErr); err != nil {
			return nil, fmt.Errorf("tap request failed with status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s", tapErr.text(resp.StatusCode))
	}

	return body, nil
}
