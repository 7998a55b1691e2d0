package repositories

import (
	"context"

	"mybnb/internal/models"

	"github.com/google/uuid"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	GetByUID(ctx context.Context, uid uuid.UUID) (*models.Admin, error)
	Update(ctx context.Context, admin *models.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type adminRepo struct {
	db Database
}

func NewAdminRepo(db Database) AdminRepository {
	return &adminRepo{db: db}
}

const adminColumns = `id, uid, email, company_uid, photo_url, created_at`

func (r *adminRepo) Create(ctx context.Context, admin *models.Admin) error {
	query := `
		INSERT INTO admins (id, uid, email, company_uid, photo_url, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, admin.ID, admin.UID, admin.Email, admin.CompanyUID, admin.PhotoURL)
	return err
}

func (r *adminRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	admin := &models.Admin{}
	query := `
		SELECT ` + adminColumns + `
		FROM admins
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&admin.ID, &admin.UID, &admin.Email, &admin.CompanyUID, &admin.PhotoURL, &admin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *adminRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*models.Admin, error) {
	admin := &models.Admin{}
	query := `
		SELECT ` + adminColumns + `
		FROM admins
		WHERE uid = $1
	`
	err := r.db.QueryRow(ctx, query, uid).Scan(&admin.ID, &admin.UID, &admin.Email, &admin.CompanyUID, &admin.PhotoURL, &admin.CreatedAt)
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *adminRepo) Update(ctx context.Context, admin *models.Admin) error {
	query := `
		UPDATE admins
		SET email = $1, company_uid = $2, photo_url = $3
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, admin.Email, admin.CompanyUID, admin.PhotoURL, admin.ID)
	return err
}

func (r *adminRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM admins WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
