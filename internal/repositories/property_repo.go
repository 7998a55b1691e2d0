package repositories

import (
	"context"

	"mybnb/internal/models"

	"github.com/google/uuid"
)

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByCompany(ctx context.Context, companyUID uuid.UUID) ([]*models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type propertyRepo struct {
	db Database
}

func NewPropertyRepo(db Database) PropertyRepository {
	return &propertyRepo{db: db}
}

const propertyColumns = `id, company_uid, name, location, status, image, created_by, created_at`

func (r *propertyRepo) Create(ctx context.Context, property *models.Property) error {
	query := `
		INSERT INTO properties (id, company_uid, name, location, status, image, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, property.ID, property.CompanyUID, property.Name, property.Location, property.Status, property.Image, property.CreatedBy)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property := &models.Property{}
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&property.ID, &property.CompanyUID, &property.Name, &property.Location, &property.Status, &property.Image, &property.CreatedBy, &property.CreatedAt)
	if err != nil {
		return nil, err
	}
	return property, nil
}

func (r *propertyRepo) ListByCompany(ctx context.Context, companyUID uuid.UUID) ([]*models.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE company_uid = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, companyUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []*models.Property{}
	for rows.Next() {
		property := &models.Property{}
		if err := rows.Scan(&property.ID, &property.CompanyUID, &property.Name, &property.Location, &property.Status, &property.Image, &property.CreatedBy, &property.CreatedAt); err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *propertyRepo) Update(ctx context.Context, property *models.Property) error {
	query := `
		UPDATE properties
		SET name = $1, location = $2, status = $3, image = $4
		WHERE id = $5
	`
	_, err := r.db.Exec(ctx, query, property.Name, property.Location, property.Status, property.Image, property.ID)
	return err
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM properties WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
