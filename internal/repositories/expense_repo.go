package repositories

import (
	"context"
	"time"

	"mybnb/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ExpenseRepository is the aggregation query layer for expenses. Date filters
// apply to the expense date, not created_at.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *models.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error)
	ListByCompany(ctx context.Context, companyUID uuid.UUID, start, end *time.Time, createdBy *uuid.UUID) ([]*models.Expense, error)
	ListByDateRange(ctx context.Context, companyUID uuid.UUID, start, end time.Time) ([]*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type expenseRepo struct {
	db Database
}

func NewExpenseRepo(db Database) ExpenseRepository {
	return &expenseRepo{db: db}
}

const expenseColumns = `id, company_uid, field, description, date, amount, receipt_image, created_by, created_at`

func (r *expenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO expenses (id, company_uid, field, description, date, amount, receipt_image, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	_, err := r.db.Exec(ctx, query, expense.ID, expense.CompanyUID, expense.Field, expense.Description, expense.Date, expense.Amount, expense.ReceiptImage, expense.CreatedBy)
	return err
}

func (r *expenseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Expense, error) {
	expense := &models.Expense{}
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&expense.ID, &expense.CompanyUID, &expense.Field, &expense.Description, &expense.Date, &expense.Amount, &expense.ReceiptImage, &expense.CreatedBy, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (r *expenseRepo) ListByCompany(ctx context.Context, companyUID uuid.UUID, start, end *time.Time, createdBy *uuid.UUID) ([]*models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE company_uid = $1
		  AND ($2::date IS NULL OR date >= $2)
		  AND ($3::date IS NULL OR date <= $3)
		  AND ($4::uuid IS NULL OR created_by = $4)
		ORDER BY date DESC
	`
	rows, err := r.db.Query(ctx, query, companyUID, start, end, createdBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// ListByDateRange returns the expenses dated inside the closed interval
// [start, end].
func (r *expenseRepo) ListByDateRange(ctx context.Context, companyUID uuid.UUID, start, end time.Time) ([]*models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE company_uid = $1 AND date >= $2 AND date <= $3
	`
	rows, err := r.db.Query(ctx, query, companyUID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func (r *expenseRepo) Update(ctx context.Context, expense *models.Expense) error {
	query := `
		UPDATE expenses
		SET field = $1, description = $2, date = $3, amount = $4, receipt_image = $5
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, expense.Field, expense.Description, expense.Date, expense.Amount, expense.ReceiptImage, expense.ID)
	return err
}

func (r *expenseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM expenses WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func scanExpenses(rows pgx.Rows) ([]*models.Expense, error) {
	expenses := []*models.Expense{}
	for rows.Next() {
		expense := &models.Expense{}
		if err := rows.Scan(&expense.ID, &expense.CompanyUID, &expense.Field, &expense.Description, &expense.Date, &expense.Amount, &expense.ReceiptImage, &expense.CreatedBy, &expense.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return expenses, nil
}
