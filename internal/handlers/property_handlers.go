package handlers

import (
	"net/http"

	"mybnb/internal/common"
	"mybnb/internal/models"
	"mybnb/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PropertyHandlers handles HTTP requests for properties.
type PropertyHandlers struct {
	propertyRepo repositories.PropertyRepository
}

func NewPropertyHandlers(propertyRepo repositories.PropertyRepository) *PropertyHandlers {
	return &PropertyHandlers{propertyRepo: propertyRepo}
}

// ListProperties handles GET /api/properties for a company.
func (h *PropertyHandlers) ListProperties(c echo.Context) error {
	ctx := c.Request().Context()

	companyUID, err := common.ValidateUUID(c.QueryParam("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	properties, err := h.propertyRepo.ListByCompany(ctx, companyUID)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"data": properties})
}

// CreateProperty handles POST /api/properties.
func (h *PropertyHandlers) CreateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		CompanyUID string  `json:"company_uid"`
		Name       string  `json:"name"`
		Location   *string `json:"location"`
		Status     string  `json:"status"`
		Image      *string `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	companyUID, err := common.ValidateUUID(req.CompanyUID, "company_uid")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if req.Name == "" {
		return common.SendClientError(c, "name is required")
	}
	if req.Status == "" {
		req.Status = "available"
	}

	property := &models.Property{
		ID:         uuid.New(),
		CompanyUID: companyUID,
		Name:       req.Name,
		Location:   req.Location,
		Status:     req.Status,
		Image:      req.Image,
	}
	if userID, ok := common.GetUserIDFromContext(ctx); ok {
		property.CreatedBy = &userID
	}

	if err := h.propertyRepo.Create(ctx, property); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, property)
}

// UpdateProperty handles PATCH /api/properties/:id with partial fields.
func (h *PropertyHandlers) UpdateProperty(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req struct {
		Name     *string `json:"name"`
		Location *string `json:"location"`
		Status   *string `json:"status"`
		Image    *string `json:"image"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	property, err := h.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Property")
	}

	if req.Name != nil {
		property.Name = *req.Name
	}
	if req.Location != nil {
		property.Location = req.Location
	}
	if req.Status != nil {
		property.Status = *req.Status
	}
	if req.Image != nil {
		property.Image = req.Image
	}

	if err := h.propertyRepo.Update(ctx, property); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, property)
}

// DeleteProperty handles DELETE /api/properties/:id and echoes back the
// deleted row.
func (h *PropertyHandlers) DeleteProperty(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	property, err := h.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return common.SendNotFoundError(c, "Property")
	}

	if err := h.propertyRepo.Delete(ctx, id); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, property)
}
