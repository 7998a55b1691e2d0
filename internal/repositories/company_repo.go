package repositories

import (
	"context"

	"mybnb/internal/models"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	List(ctx context.Context, limit, offset int) ([]*models.Company, error)
	Update(ctx context.Context, company *models.Company) error
	// UpdatePaymentStatus is an unconditional status write; re-applying the
	// same verification result is safe because of that, not because anything
	// deduplicates it.
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string, transactionID *string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type companyRepo struct {
	db Database
}

func NewCompanyRepo(db Database) CompanyRepository {
	return &companyRepo{db: db}
}

const companyColumns = `id, uid, name, logo, plan, admin_email, managers_email, is_subscribed, subscription_start_date, subscription_end_date, payment_status, transaction_id, created_at, updated_at`

func (r *companyRepo) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (id, uid, name, logo, plan, admin_email, managers_email, is_subscribed, subscription_start_date, subscription_end_date, payment_status, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, company.ID, company.UID, company.Name, company.Logo, company.Plan, company.AdminEmail, company.ManagersEmail, company.IsSubscribed, company.SubscriptionStartDate, company.SubscriptionEndDate, company.PaymentStatus, company.TransactionID)
	return err
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company := &models.Company{}
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&company.ID, &company.UID, &company.Name, &company.Logo, &company.Plan, &company.AdminEmail, &company.ManagersEmail, &company.IsSubscribed, &company.SubscriptionStartDate, &company.SubscriptionEndDate, &company.PaymentStatus, &company.TransactionID, &company.CreatedAt, &company.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (r *companyRepo) List(ctx context.Context, limit, offset int) ([]*models.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM companies
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []*models.Company{}
	for rows.Next() {
		company := &models.Company{}
		if err := rows.Scan(&company.ID, &company.UID, &company.Name, &company.Logo, &company.Plan, &company.AdminEmail, &company.ManagersEmail, &company.IsSubscribed, &company.SubscriptionStartDate, &company.SubscriptionEndDate, &company.PaymentStatus, &company.TransactionID, &company.CreatedAt, &company.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *companyRepo) Update(ctx context.Context, company *models.Company) error {
	query := `
		UPDATE companies
		SET name = $1, logo = $2, plan = $3, admin_email = $4, managers_email = $5, is_subscribed = $6, subscription_start_date = $7, subscription_end_date = $8, payment_status = $9, transaction_id = $10, updated_at = NOW()
		WHERE id = $11
	`
	_, err := r.db.Exec(ctx, query, company.Name, company.Logo, company.Plan, company.AdminEmail, company.ManagersEmail, company.IsSubscribed, company.SubscriptionStartDate, company.SubscriptionEndDate, company.PaymentStatus, company.TransactionID, company.ID)
	return err
}

func (r *companyRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string, transactionID *string) error {
	query := `
		UPDATE companies
		SET payment_status = $1, transaction_id = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, status, transactionID, id)
	return err
}

func (r *companyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM companies WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
