package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

const dateLayout = "2006-01-02"

// SendClientError sends a 400 with the flat error envelope every route uses.
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": message})
}

// SendServerError sends a 500 with the flat error envelope.
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": message})
}

// SendNotFoundError sends a 404 with the flat error envelope.
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("%s not found", resource)})
}

// ValidateUUID parses a required UUID parameter.
func ValidateUUID(idStr, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", fieldName)
	}
	return id, nil
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(dateStr, fieldName string) (time.Time, error) {
	d, err := time.Parse(dateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be in YYYY-MM-DD format", fieldName)
	}
	return d, nil
}

// ParseDateRange parses a required [start, end] pair and rejects inverted
// ranges.
func ParseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := ParseDate(startStr, "startDate")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDate(endStr, "endDate")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("endDate cannot be before startDate")
	}
	return start, end, nil
}

// ValidatePlan checks a subscription plan name against the fixed plan table.
func ValidatePlan(plan string) error {
	switch plan {
	case "basic", "premium", "enterprise":
		return nil
	}
	return fmt.Errorf("plan must be one of: basic, premium, enterprise")
}

// SafeString safely handles string pointer operations.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetUserIDFromContext extracts the authenticated user id from the request
// context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts the authenticated user email from the
// request context.
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// WithUserID returns ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// WithUserEmail returns ctx carrying the authenticated user email.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, UserEmailKey, email)
}
