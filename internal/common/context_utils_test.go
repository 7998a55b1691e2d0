package common

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateUUID(t *testing.T) {
	id := uuid.New()

	got, err := ValidateUUID(id.String(), "id")
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = ValidateUUID("", "id")
	assert.EqualError(t, err, "id is required")

	_, err = ValidateUUID("not-a-uuid", "company_id")
	assert.EqualError(t, err, "company_id is not a valid UUID")
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15", "date")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("15/03/2024", "date")
	assert.EqualError(t, err, "date must be in YYYY-MM-DD format")
}

func TestParseDateRange_RejectsInverted(t *testing.T) {
	_, _, err := ParseDateRange("2024-03-31", "2024-03-01")
	assert.EqualError(t, err, "endDate cannot be before startDate")

	start, end, err := ParseDateRange("2024-03-01", "2024-03-31")
	assert.NoError(t, err)
	assert.True(t, end.After(start))
}

func TestValidatePlan(t *testing.T) {
	for _, plan := range []string{"basic", "premium", "enterprise"} {
		assert.NoError(t, ValidatePlan(plan))
	}
	assert.Error(t, ValidatePlan("gold"))
	assert.Error(t, ValidatePlan(""))
	assert.Error(t, ValidatePlan("Basic"))
}

func TestUserContextRoundTrip(t *testing.T) {
	userID := uuid.New()
	ctx := WithUserID(context.Background(), userID)
	ctx = WithUserEmail(ctx, "owner@example.com")

	gotID, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, userID, gotID)

	gotEmail, ok := GetUserEmailFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "owner@example.com", gotEmail)
}

func TestUserContextMissing(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestSafeString(t *testing.T) {
	assert.Equal(t, "", SafeString(nil))
	s := "value"
	assert.Equal(t, "value", SafeString(&s))
}
