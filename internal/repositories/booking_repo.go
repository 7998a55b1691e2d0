package repositories

import (
	"context"
	"time"

	"mybnb/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// BookingRepository is the aggregation query layer for bookings. Every listing
// method takes the owning company uid; it is the multi-tenancy boundary and is
// never optional.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListByCompany(ctx context.Context, companyUID uuid.UUID, start, end *time.Time, createdBy *uuid.UUID) ([]*models.Booking, error)
	ListByDateRange(ctx context.Context, companyUID uuid.UUID, start, end time.Time) ([]*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingRepo struct {
	db Database
}

func NewBookingRepo(db Database) BookingRepository {
	return &bookingRepo{db: db}
}

const bookingColumns = `id, company_uid, property_id, customer_name, entry_date, exit_date, daily_amount, number_of_days, total_amount, booking_method, receipt_image, created_by, created_at`

func (r *bookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (id, company_uid, property_id, customer_name, entry_date, exit_date, daily_amount, number_of_days, total_amount, booking_method, receipt_image, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
	`
	_, err := r.db.Exec(ctx, query, booking.ID, booking.CompanyUID, booking.PropertyID, booking.CustomerName, booking.EntryDate, booking.ExitDate, booking.DailyAmount, booking.NumberOfDays, booking.TotalAmount, booking.BookingMethod, booking.ReceiptImage, booking.CreatedBy)
	return err
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	booking := &models.Booking{}
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&booking.ID, &booking.CompanyUID, &booking.PropertyID, &booking.CustomerName, &booking.EntryDate, &booking.ExitDate, &booking.DailyAmount, &booking.NumberOfDays, &booking.TotalAmount, &booking.BookingMethod, &booking.ReceiptImage, &booking.CreatedBy, &booking.CreatedAt)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// ListByCompany lists a company's bookings newest first, optionally narrowed
// to a created_at window and a creating user.
func (r *bookingRepo) ListByCompany(ctx context.Context, companyUID uuid.UUID, start, end *time.Time, createdBy *uuid.UUID) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE company_uid = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		  AND ($4::uuid IS NULL OR created_by = $4)
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, companyUID, start, end, createdBy)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListByDateRange returns the bookings whose created_at falls inside the
// closed interval [start, end]. No pagination; callers bound the range.
func (r *bookingRepo) ListByDateRange(ctx context.Context, companyUID uuid.UUID, start, end time.Time) ([]*models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE company_uid = $1 AND created_at >= $2 AND created_at <= $3
	`
	rows, err := r.db.Query(ctx, query, companyUID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	query := `
		UPDATE bookings
		SET property_id = $1, customer_name = $2, entry_date = $3, exit_date = $4, daily_amount = $5, number_of_days = $6, total_amount = $7, booking_method = $8, receipt_image = $9
		WHERE id = $10
	`
	_, err := r.db.Exec(ctx, query, booking.PropertyID, booking.CustomerName, booking.EntryDate, booking.ExitDate, booking.DailyAmount, booking.NumberOfDays, booking.TotalAmount, booking.BookingMethod, booking.ReceiptImage, booking.ID)
	return err
}

func (r *bookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bookings WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func scanBookings(rows pgx.Rows) ([]*models.Booking, error) {
	bookings := []*models.Booking{}
	for rows.Next() {
		booking := &models.Booking{}
		if err := rows.Scan(&booking.ID, &booking.CompanyUID, &booking.PropertyID, &booking.CustomerName, &booking.EntryDate, &booking.ExitDate, &booking.DailyAmount, &booking.NumberOfDays, &booking.TotalAmount, &booking.BookingMethod, &booking.ReceiptImage, &booking.CreatedBy, &booking.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
