package handlers

import (
	"net/http"
	"time"

	"mybnb/internal/caching"
	"mybnb/internal/common"
	"mybnb/internal/models"
	"mybnb/internal/repositories"
	"mybnb/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BookingHandlers handles HTTP requests for bookings.
type BookingHandlers struct {
	bookingRepo repositories.BookingRepository
	cache       caching.CacheService
	storage     services.StorageService
}

func NewBookingHandlers(bookingRepo repositories.BookingRepository, cache caching.CacheService, storage services.StorageService) *BookingHandlers {
	return &BookingHandlers{bookingRepo: bookingRepo, cache: cache, storage: storage}
}

// invalidateStats drops the company's cached stat cards after a write. Cache
// failures only log; the write already succeeded.
func (h *BookingHandlers) invalidateStats(c echo.Context, companyUID uuid.UUID) {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateCompanyCache(c.Request().Context(), companyUID); err != nil {
		c.Logger().Errorf("failed to invalidate stats cache for %s: %v", companyUID, err)
	}
}

// removeReceipt deletes the stored receipt object once the owning row is
// gone. The row deletion already succeeded, so storage failures only log.
func (h *BookingHandlers) removeReceipt(c echo.Context, receiptURL *string) {
	if h.storage == nil || receiptURL == nil {
		return
	}
	objectName := services.ObjectNameFromURL(*receiptURL)
	if objectName == "" {
		return
	}
	if err := h.storage.Delete(c.Request().Context(), objectName); err != nil {
		c.Logger().Errorf("failed to delete receipt object %s: %v", objectName, err)
	}
}

// ListBookings handles GET /api/bookings. The company id is mandatory; the
// date window and created_by filters are optional. The list is wrapped in a
// data envelope, unlike the expenses list; both shapes are inherited.
func (h *BookingHandlers) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()

	companyUID, err := common.ValidateUUID(c.QueryParam("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	startStr := c.QueryParam("startDate")
	endStr := c.QueryParam("endDate")

	var startAt, endAt *time.Time
	if startStr != "" {
		t, err := common.ParseDate(startStr, "startDate")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		startAt = &t
	}
	if endStr != "" {
		t, err := common.ParseDate(endStr, "endDate")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		endAt = &t
	}

	var createdBy *uuid.UUID
	if createdByStr := c.QueryParam("created_by"); createdByStr != "" {
		id, err := common.ValidateUUID(createdByStr, "created_by")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		createdBy = &id
	}

	bookings, err := h.bookingRepo.ListByCompany(ctx, companyUID, startAt, endAt, createdBy)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": bookings})
}

// CreateBooking handles POST /api/bookings. totalAmount is stored as sent;
// the dailyAmount x numberOfDays identity is a client-side concern.
func (h *BookingHandlers) CreateBooking(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		CompanyUID    string  `json:"company_uid"`
		PropertyID    *string `json:"propertyId"`
		CustomerName  string  `json:"customerName"`
		EntryDate     string  `json:"entryDate"`
		ExitDate      string  `json:"exitDate"`
		DailyAmount   float64 `json:"dailyAmount"`
		NumberOfDays  int     `json:"numberOfDays"`
		TotalAmount   float64 `json:"totalAmount"`
		BookingMethod string  `json:"bookingMethod"`
		ReceiptImage  *string `json:"receiptImage"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	companyUID, err := common.ValidateUUID(req.CompanyUID, "company_uid")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	entryDate, err := common.ParseDate(req.EntryDate, "entryDate")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	exitDate, err := common.ParseDate(req.ExitDate, "exitDate")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	booking := &models.Booking{
		ID:            uuid.New(),
		CompanyUID:    companyUID,
		CustomerName:  req.CustomerName,
		EntryDate:     entryDate,
		ExitDate:      exitDate,
		DailyAmount:   req.DailyAmount,
		NumberOfDays:  req.NumberOfDays,
		TotalAmount:   req.TotalAmount,
		BookingMethod: req.BookingMethod,
		ReceiptImage:  req.ReceiptImage,
	}

	if req.PropertyID != nil && *req.PropertyID != "" {
		propertyID, err := common.ValidateUUID(*req.PropertyID, "propertyId")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		booking.PropertyID = &propertyID
	}
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		booking.CreatedBy = &userID
	}

	if err := h.bookingRepo.Create(ctx, booking); err != nil {
		return common.SendClientError(c, err.Error())
	}
	h.invalidateStats(c, booking.CompanyUID)

	return c.JSON(http.StatusCreated, booking)
}

// UpdateBooking handles PATCH /api/bookings/:id with partial fields.
func (h *BookingHandlers) UpdateBooking(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		PropertyID    *string  `json:"propertyId"`
		CustomerName  *string  `json:"customerName"`
		EntryDate     *string  `json:"entryDate"`
		ExitDate      *string  `json:"exitDate"`
		DailyAmount   *float64 `json:"dailyAmount"`
		NumberOfDays  *int     `json:"numberOfDays"`
		TotalAmount   *float64 `json:"totalAmount"`
		BookingMethod *string  `json:"bookingMethod"`
		ReceiptImage  *string  `json:"receiptImage"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	booking, err := h.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Booking")
	}

	if req.PropertyID != nil {
		propertyID, err := common.ValidateUUID(*req.PropertyID, "propertyId")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		booking.PropertyID = &propertyID
	}
	if req.CustomerName != nil {
		booking.CustomerName = *req.CustomerName
	}
	if req.EntryDate != nil {
		entryDate, err := common.ParseDate(*req.EntryDate, "entryDate")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		booking.EntryDate = entryDate
	}
	if req.ExitDate != nil {
		exitDate, err := common.ParseDate(*req.ExitDate, "exitDate")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		booking.ExitDate = exitDate
	}
	if req.DailyAmount != nil {
		booking.DailyAmount = *req.DailyAmount
	}
	if req.NumberOfDays != nil {
		booking.NumberOfDays = *req.NumberOfDays
	}
	if req.TotalAmount != nil {
		booking.TotalAmount = *req.TotalAmount
	}
	if req.BookingMethod != nil {
		booking.BookingMethod = *req.BookingMethod
	}
	if req.ReceiptImage != nil {
		booking.ReceiptImage = req.ReceiptImage
	}

	if err := h.bookingRepo.Update(ctx, booking); err != nil {
		return common.SendClientError(c, err.Error())
	}
	h.invalidateStats(c, booking.CompanyUID)

	return c.JSON(http.StatusOK, booking)
}

// DeleteBooking handles DELETE /api/bookings/:id and echoes back the
// deleted row.
func (h *BookingHandlers) DeleteBooking(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	booking, err := h.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Booking")
	}

	if err := h.bookingRepo.Delete(ctx, id); err != nil {
		return common.SendClientError(c, err.Error())
	}
	h.invalidateStats(c, booking.CompanyUID)
	h.removeReceipt(c, booking.ReceiptImage)

	return c.JSON(http.StatusOK, booking)
}
