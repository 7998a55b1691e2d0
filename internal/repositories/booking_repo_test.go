package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"mybnb/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type BookingRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       BookingRepository
	companyUID uuid.UUID
	context    context.Context
}

func (suite *BookingRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewBookingRepo(mock)
	suite.companyUID = uuid.New()
	suite.context = context.Background()
}

func (suite *BookingRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestBookingRepoTestSuite(t *testing.T) {
	suite.Run(t, new(BookingRepoTestSuite))
}

func (suite *BookingRepoTestSuite) bookingRows(bookings ...*models.Booking) *pgxmock.Rows {
	rows := pgxmock.NewRows([]string{"id", "company_uid", "property_id", "customer_name", "entry_date", "exit_date", "daily_amount", "number_of_days", "total_amount", "booking_method", "receipt_image", "created_by", "created_at"})
	for _, b := range bookings {
		rows.AddRow(b.ID, b.CompanyUID, b.PropertyID, b.CustomerName, b.EntryDate, b.ExitDate, b.DailyAmount, b.NumberOfDays, b.TotalAmount, b.BookingMethod, b.ReceiptImage, b.CreatedBy, b.CreatedAt)
	}
	return rows
}

func (suite *BookingRepoTestSuite) newBooking() *models.Booking {
	return &models.Booking{
		ID:            uuid.New(),
		CompanyUID:    suite.companyUID,
		CustomerName:  "Guest One",
		EntryDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ExitDate:      time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		DailyAmount:   120,
		NumberOfDays:  3,
		TotalAmount:   360,
		BookingMethod: models.BookingMethodOnline,
		CreatedAt:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (suite *BookingRepoTestSuite) TestCreate_Success() {
	booking := suite.newBooking()

	suite.mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(booking.ID, booking.CompanyUID, booking.PropertyID, booking.CustomerName, booking.EntryDate, booking.ExitDate, booking.DailyAmount, booking.NumberOfDays, booking.TotalAmount, booking.BookingMethod, booking.ReceiptImage, booking.CreatedBy).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, booking)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *BookingRepoTestSuite) TestGetByID_Success() {
	booking := suite.newBooking()

	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings\s+WHERE id = \$1`).
		WithArgs(booking.ID).
		WillReturnRows(suite.bookingRows(booking))

	got, err := suite.repo.GetByID(suite.context, booking.ID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), booking.ID, got.ID)
	assert.Equal(suite.T(), booking.CustomerName, got.CustomerName)
	assert.Equal(suite.T(), booking.TotalAmount, got.TotalAmount)
}

func (suite *BookingRepoTestSuite) TestGetByID_NotFound() {
	id := uuid.New()

	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings\s+WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(errors.New("no rows in result set"))

	got, err := suite.repo.GetByID(suite.context, id)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), got)
}

func (suite *BookingRepoTestSuite) TestListByCompany_ScopesToCompany() {
	booking := suite.newBooking()

	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings\s+WHERE company_uid = \$1`).
		WithArgs(suite.companyUID, (*time.Time)(nil), (*time.Time)(nil), (*uuid.UUID)(nil)).
		WillReturnRows(suite.bookingRows(booking))

	got, err := suite.repo.ListByCompany(suite.context, suite.companyUID, nil, nil, nil)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 1)
	assert.Equal(suite.T(), suite.companyUID, got[0].CompanyUID)
}

func (suite *BookingRepoTestSuite) TestListByCompany_EmptyIsNotNil() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings\s+WHERE company_uid = \$1`).
		WithArgs(suite.companyUID, (*time.Time)(nil), (*time.Time)(nil), (*uuid.UUID)(nil)).
		WillReturnRows(suite.bookingRows())

	got, err := suite.repo.ListByCompany(suite.context, suite.companyUID, nil, nil, nil)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), got)
	assert.Len(suite.T(), got, 0)
}

func (suite *BookingRepoTestSuite) TestListByDateRange_PassesBounds() {
	booking := suite.newBooking()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`SELECT (.+) FROM bookings\s+WHERE company_uid = \$1 AND created_at >= \$2 AND created_at <= \$3`).
		WithArgs(suite.companyUID, start, end).
		WillReturnRows(suite.bookingRows(booking))

	got, err := suite.repo.ListByDateRange(suite.context, suite.companyUID, start, end)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), got, 1)
}

func (suite *BookingRepoTestSuite) TestUpdate_Success() {
	booking := suite.newBooking()
	booking.CustomerName = "Guest Renamed"

	suite.mock.ExpectExec(`UPDATE bookings`).
		WithArgs(booking.PropertyID, booking.CustomerName, booking.EntryDate, booking.ExitDate, booking.DailyAmount, booking.NumberOfDays, booking.TotalAmount, booking.BookingMethod, booking.ReceiptImage, booking.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.Update(suite.context, booking)
	assert.NoError(suite.T(), err)
}

func (suite *BookingRepoTestSuite) TestDelete_Success() {
	id := uuid.New()

	suite.mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, id)
	assert.NoError(suite.T(), err)
}
