package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"mybnb/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByCompany(ctx context.Context, companyUID uuid.UUID, start, end *time.Time, createdBy *uuid.UUID) ([]*models.Booking, error) {
	args := m.Called(ctx, companyUID, start, end, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) ListByDateRange(ctx context.Context, companyUID uuid.UUID, start, end time.Time) ([]*models.Booking, error) {
	args := m.Called(ctx, companyUID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestListBookings_DataEnvelope(t *testing.T) {
	repo := new(mockBookingRepo)
	h := NewBookingHandlers(repo, nil, nil)

	companyUID := uuid.New()
	repo.On("ListByCompany", mock.Anything, companyUID, (*time.Time)(nil), (*time.Time)(nil), (*uuid.UUID)(nil)).
		Return([]*models.Booking{{ID: uuid.New(), CompanyUID: companyUID, CustomerName: "Guest One"}}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+url.Values{"id": {companyUID.String()}}.Encode(), nil)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.ListBookings(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body["data"], 1)
	assert.Equal(t, "Guest One", body["data"][0]["customerName"])
}

func TestListBookings_MissingCompanyID(t *testing.T) {
	repo := new(mockBookingRepo)
	h := NewBookingHandlers(repo, nil, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.ListBookings(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "ListByCompany", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateBooking_StoresTotalAsSent(t *testing.T) {
	repo := new(mockBookingRepo)
	h := NewBookingHandlers(repo, nil, nil)

	companyUID := uuid.New()
	var created *models.Booking
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Booking")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Booking)
		}).
		Return(nil)

	// totalAmount deliberately disagrees with dailyAmount * numberOfDays.
	payload := `{
		"company_uid": "` + companyUID.String() + `",
		"customerName": "Guest One",
		"entryDate": "2024-03-01",
		"exitDate": "2024-03-04",
		"dailyAmount": 100,
		"numberOfDays": 3,
		"totalAmount": 999,
		"bookingMethod": "online"
	}`

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	assert.NoError(t, h.CreateBooking(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 999.0, created.TotalAmount)
	assert.Equal(t, companyUID, created.CompanyUID)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestUpdateBooking_PartialPatch(t *testing.T) {
	repo := new(mockBookingRepo)
	h := NewBookingHandlers(repo, nil, nil)

	existing := &models.Booking{
		ID:            uuid.New(),
		CompanyUID:    uuid.New(),
		CustomerName:  "Guest One",
		DailyAmount:   100,
		NumberOfDays:  3,
		TotalAmount:   300,
		BookingMethod: models.BookingMethodOnline,
	}
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(b *models.Booking) bool {
		return b.CustomerName == "Guest Renamed" && b.TotalAmount == 300
	})).Return(nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"customerName":"Guest Renamed"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(existing.ID.String())

	assert.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (string, error) {
	args := m.Called(ctx, objectName, reader, objectSize, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *mockStorage) EnsureBucketExists(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestDeleteBooking_RemovesStoredReceipt(t *testing.T) {
	repo := new(mockBookingRepo)
	storage := new(mockStorage)
	h := NewBookingHandlers(repo, nil, storage)

	receiptURL := "https://minio.example.com/mybnb-uploads/abc123.jpg?X-Amz-Signature=deadbeef"
	existing := &models.Booking{ID: uuid.New(), ReceiptImage: &receiptURL}
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Delete", mock.Anything, existing.ID).Return(nil)
	storage.On("Delete", mock.Anything, "abc123.jpg").Return(nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(existing.ID.String())

	assert.NoError(t, h.DeleteBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	storage.AssertExpectations(t)
}

func TestDeleteBooking_NoReceiptSkipsStorage(t *testing.T) {
	repo := new(mockBookingRepo)
	storage := new(mockStorage)
	h := NewBookingHandlers(repo, nil, storage)

	existing := &models.Booking{ID: uuid.New()}
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Delete", mock.Anything, existing.ID).Return(nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(existing.ID.String())

	assert.NoError(t, h.DeleteBooking(c))
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteBooking_EchoesDeletedRow(t *testing.T) {
	repo := new(mockBookingRepo)
	h := NewBookingHandlers(repo, nil, nil)

	existing := &models.Booking{ID: uuid.New(), CustomerName: "Guest One"}
	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Delete", mock.Anything, existing.ID).Return(nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(existing.ID.String())

	assert.NoError(t, h.DeleteBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Guest One", body["customerName"])
}
