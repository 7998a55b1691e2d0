package handlers

import (
	"net/http"

	"mybnb/internal/common"
	"mybnb/internal/models"
	"mybnb/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AdminHandlers handles HTTP requests for admin accounts.
type AdminHandlers struct {
	adminRepo repositories.AdminRepository
}

func NewAdminHandlers(adminRepo repositories.AdminRepository) *AdminHandlers {
	return &AdminHandlers{adminRepo: adminRepo}
}

// GetAdmin handles GET /api/admins/:uid. Lookup is by the auth provider uid,
// not the row id, because the client only ever knows the former.
func (h *AdminHandlers) GetAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	uid, err := common.ValidateUUID(c.Param("uid"), "uid")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	admin, err := h.adminRepo.GetByUID(ctx, uid)
	if err != nil {
		return common.SendNotFoundError(c, "Admin")
	}

	return c.JSON(http.StatusOK, admin)
}

// CreateAdmin handles POST /api/admins.
func (h *AdminHandlers) CreateAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		UID        string   `json:"uid"`
		Email      string   `json:"email"`
		CompanyUID []string `json:"company_uid"`
		PhotoURL   *string  `json:"photo_url"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	uid, err := common.ValidateUUID(req.UID, "uid")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if req.Email == "" {
		return common.SendClientError(c, "email is required")
	}

	companyUIDs := make([]uuid.UUID, 0, len(req.CompanyUID))
	for _, s := range req.CompanyUID {
		id, err := common.ValidateUUID(s, "company_uid")
		if err != nil {
			return common.SendClientError(c, err.Error())
		}
		companyUIDs = append(companyUIDs, id)
	}

	admin := &models.Admin{
		ID:         uuid.New(),
		UID:        uid,
		Email:      req.Email,
		CompanyUID: companyUIDs,
		PhotoURL:   req.PhotoURL,
	}

	if err := h.adminRepo.Create(ctx, admin); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, admin)
}

// UpdateAdmin handles PATCH /api/admins/:uid with partial fields.
func (h *AdminHandlers) UpdateAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	uid, err := common.ValidateUUID(c.Param("uid"), "uid")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Email      *string   `json:"email"`
		CompanyUID *[]string `json:"company_uid"`
		PhotoURL   *string   `json:"photo_url"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	admin, err := h.adminRepo.GetByUID(ctx, uid)
	if err != nil {
		return common.SendNotFoundError(c, "Admin")
	}

	if req.Email != nil {
		admin.Email = *req.Email
	}
	if req.CompanyUID != nil {
		companyUIDs := make([]uuid.UUID, 0, len(*req.CompanyUID))
		for _, s := range *req.CompanyUID {
			id, err := common.ValidateUUID(s, "company_uid")
			if err != nil {
				return common.SendClientError(c, err.Error())
			}
			companyUIDs = append(companyUIDs, id)
		}
		admin.CompanyUID = companyUIDs
	}
	if req.PhotoURL != nil {
		admin.PhotoURL = req.PhotoURL
	}

	if err := h.adminRepo.Update(ctx, admin); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, admin)
}

// DeleteAdmin handles DELETE /api/admins/:uid and echoes back the deleted
// row.
func (h *AdminHandlers) DeleteAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	uid, err := common.ValidateUUID(c.Param("uid"), "uid")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	admin, err := h.adminRepo.GetByUID(ctx, uid)
	if err != nil {
		return common.SendNotFoundError(c, "Admin")
	}

	if err := h.adminRepo.Delete(ctx, admin.ID); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, admin)
}
