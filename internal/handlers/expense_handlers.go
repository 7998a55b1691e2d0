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

// ExpenseHandlers handles HTTP requests for expenses.
type ExpenseHandlers struct {
	expenseRepo repositories.ExpenseRepository
	cache       caching.CacheService
	storage     services.StorageService
}

func NewExpenseHandlers(expenseRepo repositories.ExpenseRepository, cache caching.CacheService, storage services.StorageService) *ExpenseHandlers {
	return &ExpenseHandlers{expenseRepo: expenseRepo, cache: cache, storage: storage}
}

func (h *ExpenseHandlers) invalidateStats(c echo.Context, companyUID uuid.UUID) {
	if h.cache == nil {
		return
	}
	if err := h.cache.InvalidateCompanyCache(c.Request().Context(), companyUID); err != nil {
		c.Logger().Errorf("failed to invalidate stats cache for %s: %v", companyUID, err)
	}
}

func (h *ExpenseHandlers) removeReceipt(c echo.Context, receiptURL *string) {
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

// ListExpenses handles GET /api/expenses. The response is a bare JSON array,
// not a data envelope. The company id is mandatory.
func (h *ExpenseHandlers) ListExpenses(c echo.Context) error {
	ctx := c.Request().Context()

	companyUID, err := common.ValidateUUID(c.QueryParam("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var startAt, endAt *time.Time
	if startStr := c.QueryParam("startDate"); startStr != "" {
		t, err := common.ParseDate(startStr, "startDate")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		startAt = &t
	}
	if endStr := c.QueryParam("endDate"); endStr != "" {
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

	expenses, err := h.expenseRepo.ListByCompany(ctx, companyUID, startAt, endAt, createdBy)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, expenses)
}

// CreateExpense handles POST /api/expenses.
func (h *ExpenseHandlers) CreateExpense(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		CompanyUID   string  `json:"company_uid"`
		Field        string  `json:"field"`
		Description  *string `json:"description"`
		Date         string  `json:"date"`
		Amount       float64 `json:"amount"`
		ReceiptImage *string `json:"receiptImage"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	companyUID, err := common.ValidateUUID(req.CompanyUID, "company_uid")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	date, err := common.ParseDate(req.Date, "date")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	expense := &models.Expense{
		ID:           uuid.New(),
		CompanyUID:   companyUID,
		Field:        req.Field,
		Description:  req.Description,
		Date:         date,
		Amount:       req.Amount,
		ReceiptImage: req.ReceiptImage,
	}
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		expense.CreatedBy = &userID
	}

	if err := h.expenseRepo.Create(ctx, expense); err != nil {
		return common.SendClientError(c, err.Error())
	}
	h.invalidateStats(c, expense.CompanyUID)

	return c.JSON(http.StatusCreated, expense)
}

// UpdateExpense handles PATCH /api/expenses/:id with partial fields.
func (h *ExpenseHandlers) UpdateExpense(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Field        *string  `json:"field"`
		Description  *string  `json:"description"`
		Date         *string  `json:"date"`
		Amount       *float64 `json:"amount"`
		ReceiptImage *string  `json:"receiptImage"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	expense, err := h.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Expense")
	}

	if req.Field != nil {
		expense.Field = *req.Field
	}
	if req.Description != nil {
		expense.Description = req.Description
	}
	if req.Date != nil {
		date, err := common.ParseDate(*req.Date, "date")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		expense.Date = date
	}
	if req.Amount != nil {
		expense.Amount = *req.Amount
	}
	if req.ReceiptImage != nil {
		expense.ReceiptImage = req.ReceiptImage
	}

	if err := h.expenseRepo.Update(ctx, expense); err != nil {
		return common.SendClientError(c, err.Error())
	}
	h.invalidateStats(c, expense.CompanyUID)

	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense handles DELETE /api/expenses/:id and echoes back the deleted
// row.
func (h *ExpenseHandlers) DeleteExpense(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	expense, err := h.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Expense")
	}

	if err := h.expenseRepo.Delete(ctx, id); err != nil {
		return common.SendClientError(c, err.Error())
	}
	h.invalidateStats(c, expense.CompanyUID)
	h.removeReceipt(c, expense.ReceiptImage)

	return c.JSON(http.StatusOK, expense)
}
