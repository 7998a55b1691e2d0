package handlers

import (
	"net/http"
	"strconv"

	"mybnb/internal/common"
	"mybnb/internal/models"
	"mybnb/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CompanyHandlers handles HTTP requests for companies.
type CompanyHandlers struct {
	companyRepo repositories.CompanyRepository
}

func NewCompanyHandlers(companyRepo repositories.CompanyRepository) *CompanyHandlers {
	return &CompanyHandlers{companyRepo: companyRepo}
}

// ListCompanies handles GET /api/companies with limit/offset paging.
func (h *CompanyHandlers) ListCompanies(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 50
	offset := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			return common.SendClientError(c, "limit must be a positive integer")
		}
		limit = n
	}
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		n, err := strconv.Atoi(offsetStr)
		if err != nil || n < 0 {
			return common.SendClientError(c, "offset must be a non-negative integer")
		}
		offset = n
	}

	companies, err := h.companyRepo.List(ctx, limit, offset)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": companies})
}

// GetCompany handles GET /api/companies/:id.
func (h *CompanyHandlers) GetCompany(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	company, err := h.companyRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Company")
	}

	return c.JSON(http.StatusOK, company)
}

// CreateCompany handles POST /api/companies. New companies start with
// payment_status pending until a subscription charge is captured.
func (h *CompanyHandlers) CreateCompany(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Name          string   `json:"name"`
		Logo          string   `json:"logo"`
		Plan          string   `json:"plan"`
		AdminEmail    string   `json:"admin_email"`
		ManagersEmail []string `json:"managers_email"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.Name == "" {
		return common.SendClientError(c, "name is required")
	}
	if req.AdminEmail == "" {
		return common.SendClientError(c, "admin_email is required")
	}
	if err := common.ValidatePlan(req.Plan); err != nil {
		return common.SendClientError(c, err.Error())
	}
	if req.ManagersEmail == nil {
		req.ManagersEmail = []string{}
	}

	company := &models.Company{
		ID:            uuid.New(),
		UID:           uuid.New(),
		Name:          req.Name,
		Logo:          req.Logo,
		Plan:          req.Plan,
		AdminEmail:    req.AdminEmail,
		ManagersEmail: req.ManagersEmail,
		IsSubscribed:  false,
		PaymentStatus: models.PaymentStatusPending,
	}

	if err := h.companyRepo.Create(ctx, company); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, company)
}

// UpdateCompany handles PATCH /api/companies/:id with partial fields.
// Payment fields are owned by the payment flow and cannot be set here.
func (h *CompanyHandlers) UpdateCompany(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Name          *string   `json:"name"`
		Logo          *string   `json:"logo"`
		Plan          *string   `json:"plan"`
		AdminEmail    *string   `json:"admin_email"`
		ManagersEmail *[]string `json:"managers_email"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	company, err := h.companyRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Company")
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Logo != nil {
		company.Logo = *req.Logo
	}
	if req.Plan != nil {
		if err := common.ValidatePlan(*req.Plan); err != nil {
			return common.SendClientError(c, err.Error())
		}
		company.Plan = *req.Plan
	}
	if req.AdminEmail != nil {
		company.AdminEmail = *req.AdminEmail
	}
	if req.ManagersEmail != nil {
		company.ManagersEmail = *req.ManagersEmail
	}

	if err := h.companyRepo.Update(ctx, company); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, company)
}

// DeleteCompany handles DELETE /api/companies/:id and echoes back the
// deleted row.
func (h *CompanyHandlers) DeleteCompany(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	company, err := h.companyRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Company")
	}

	if err := h.companyRepo.Delete(ctx, id); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, company)
}
