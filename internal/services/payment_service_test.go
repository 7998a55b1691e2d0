package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"mybnb/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockTapService struct {
	mock.Mock
}

func (m *mockTapService) CreateCharge(ctx context.Context, req *TapChargeRequest) (*TapCharge, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TapCharge), args.Error(1)
}

func (m *mockTapService) GetCharge(ctx context.Context, chargeID string) (*TapCharge, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TapCharge), args.Error(1)
}

type mockCompanyRepo struct {
	mock.Mock
}

func (m *mockCompanyRepo) Create(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *mockCompanyRepo) List(ctx context.Context, limit, offset int) ([]*models.Company, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Company), args.Error(1)
}

func (m *mockCompanyRepo) Update(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *mockCompanyRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string, transactionID *string) error {
	args := m.Called(ctx, id, status, transactionID)
	return args.Error(0)
}

func (m *mockCompanyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockCacheService struct {
	mock.Mock
}

func (m *mockCacheService) SetPendingPayment(ctx context.Context, payment *models.PendingPayment, ttl time.Duration) error {
	args := m.Called(ctx, payment, ttl)
	return args.Error(0)
}

func (m *mockCacheService) GetPendingPayment(ctx context.Context, transactionRef string) (*models.PendingPayment, error) {
	args := m.Called(ctx, transactionRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PendingPayment), args.Error(1)
}

func (m *mockCacheService) DeletePendingPayment(ctx context.Context, transactionRef string) error {
	args := m.Called(ctx, transactionRef)
	return args.Error(0)
}

func (m *mockCacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *mockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockCacheService) InvalidateCompanyCache(ctx context.Context, companyUID uuid.UUID) error {
	args := m.Called(ctx, companyUID)
	return args.Error(0)
}

func (m *mockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type PaymentServiceTestSuite struct {
	suite.Suite
	tap         *mockTapService
	companyRepo *mockCompanyRepo
	cache       *mockCacheService
	service     PaymentService
	companyID   uuid.UUID
	context     context.Context
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.tap = new(mockTapService)
	suite.companyRepo = new(mockCompanyRepo)
	suite.cache = new(mockCacheService)
	suite.service = NewPaymentService(suite.tap, suite.companyRepo, suite.cache, "https://app.example.com")
	suite.companyID = uuid.New()
	suite.context = context.Background()
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (suite *PaymentServiceTestSuite) chargeRequest(plan string) *SubscriptionChargeRequest {
	return &SubscriptionChargeRequest{
		CompanyID:        suite.companyID,
		CompanyName:      "Seaside Stays",
		Plan:             plan,
		FirstName:        "Dana",
		LastName:         "Khalil",
		Email:            "dana@example.com",
		PhoneCountryCode: 965,
		PhoneNumber:      51234567,
	}
}

func (suite *PaymentServiceTestSuite) TestCreateSubscriptionCharge_BuildsTapPayload() {
	var gotReq *TapChargeRequest
	suite.tap.On("CreateCharge", suite.context, mock.AnythingOfType("*services.TapChargeRequest")).
		Run(func(args mock.Arguments) {
			gotReq = args.Get(1).(*TapChargeRequest)
		}).
		Return(&TapCharge{ID: "chg_1", Transaction: TapTransaction{URL: "https://checkout.example.com/chg_1"}}, nil)
	suite.cache.On("SetPendingPayment", suite.context, mock.AnythingOfType("*models.PendingPayment"), 24*time.Hour).Return(nil)

	charge, err := suite.service.CreateSubscriptionCharge(suite.context, suite.chargeRequest("premium"))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "chg_1", charge.ID)

	assert.Equal(suite.T(), 50.0, gotReq.Amount)
	assert.Equal(suite.T(), "USD", gotReq.Currency)
	assert.Equal(suite.T(), "src_all", gotReq.Source.ID)
	assert.True(suite.T(), gotReq.ThreeDSecure)
	assert.True(suite.T(), gotReq.CustomerInitiated)
	assert.False(suite.T(), gotReq.SaveCard)
	assert.Equal(suite.T(), "https://app.example.com/payment/callback?company_id="+suite.companyID.String(), gotReq.Redirect.URL)
	assert.Regexp(suite.T(), regexp.MustCompile(`^txn_\d+_[a-z0-9]{8}$`), gotReq.Reference.Transaction)
	assert.Regexp(suite.T(), regexp.MustCompile(`^ord_\d+_[a-z0-9]{8}$`), gotReq.Reference.Order)

	suite.cache.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreateSubscriptionCharge_PlanPrices() {
	for plan, want := range map[string]float64{"basic": 30, "premium": 50, "enterprise": 100} {
		tap := new(mockTapService)
		cache := new(mockCacheService)
		svc := NewPaymentService(tap, suite.companyRepo, cache, "https://app.example.com")

		tap.On("CreateCharge", suite.context, mock.MatchedBy(func(req *TapChargeRequest) bool {
			return req.Amount == want
		})).Return(&TapCharge{ID: "chg_x", Transaction: TapTransaction{URL: "https://checkout.example.com/x"}}, nil)
		cache.On("SetPendingPayment", suite.context, mock.Anything, mock.Anything).Return(nil)

		_, err := svc.CreateSubscriptionCharge(suite.context, suite.chargeRequest(plan))
		assert.NoError(suite.T(), err, plan)
		tap.AssertExpectations(suite.T())
	}
}

func (suite *PaymentServiceTestSuite) TestCreateSubscriptionCharge_UnknownPlan() {
	charge, err := suite.service.CreateSubscriptionCharge(suite.context, suite.chargeRequest("gold"))

	assert.Nil(suite.T(), charge)
	assert.EqualError(suite.T(), err, "invalid plan: gold")
	suite.tap.AssertNotCalled(suite.T(), "CreateCharge", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreateSubscriptionCharge_MissingPaymentURL() {
	suite.tap.On("CreateCharge", suite.context, mock.Anything).Return(&TapCharge{ID: "chg_1"}, nil)

	charge, err := suite.service.CreateSubscriptionCharge(suite.context, suite.chargeRequest("basic"))

	assert.Nil(suite.T(), charge)
	assert.EqualError(suite.T(), err, "no payment URL received")
}

func (suite *PaymentServiceTestSuite) TestCreateSubscriptionCharge_PendingRecordFailureIsNotFatal() {
	suite.tap.On("CreateCharge", suite.context, mock.Anything).
		Return(&TapCharge{ID: "chg_1", Transaction: TapTransaction{URL: "https://checkout.example.com/chg_1"}}, nil)
	suite.cache.On("SetPendingPayment", suite.context, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	charge, err := suite.service.CreateSubscriptionCharge(suite.context, suite.chargeRequest("basic"))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "chg_1", charge.ID)
}

func (suite *PaymentServiceTestSuite) TestVerifyCharge_CapturedMarksPaid() {
	charge := &TapCharge{
		ID:        "chg_1",
		Status:    ChargeStatusCaptured,
		Reference: TapReference{Transaction: "txn_1_abcdefgh"},
	}
	suite.tap.On("GetCharge", suite.context, "chg_1").Return(charge, nil)
	suite.companyRepo.On("UpdatePaymentStatus", suite.context, suite.companyID, models.PaymentStatusPaid, &charge.ID).Return(nil)
	suite.cache.On("DeletePendingPayment", suite.context, "txn_1_abcdefgh").Return(nil)

	got, err := suite.service.VerifyCharge(suite.context, suite.companyID, "chg_1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), charge, got)
	suite.companyRepo.AssertExpectations(suite.T())
	suite.cache.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVerifyCharge_CapturedButWriteFails() {
	charge := &TapCharge{ID: "chg_1", Status: ChargeStatusCaptured}
	suite.tap.On("GetCharge", suite.context, "chg_1").Return(charge, nil)
	suite.companyRepo.On("UpdatePaymentStatus", suite.context, suite.companyID, models.PaymentStatusPaid, &charge.ID).Return(errors.New("db down"))

	got, err := suite.service.VerifyCharge(suite.context, suite.companyID, "chg_1")

	assert.Nil(suite.T(), got)
	assert.ErrorContains(suite.T(), err, "charge captured but status update failed")
}

func (suite *PaymentServiceTestSuite) TestVerifyCharge_DeclinedMarksFailed() {
	charge := &TapCharge{ID: "chg_1", Status: "DECLINED"}
	suite.tap.On("GetCharge", suite.context, "chg_1").Return(charge, nil)
	suite.companyRepo.On("UpdatePaymentStatus", suite.context, suite.companyID, models.PaymentStatusFailed, &charge.ID).Return(nil)

	got, err := suite.service.VerifyCharge(suite.context, suite.companyID, "chg_1")

	// A declined charge is still a successful verification; the caller gets
	// the charge back and reads its status.
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "DECLINED", got.Status)
	suite.companyRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVerifyCharge_LookupFailureMarksFailed() {
	suite.tap.On("GetCharge", suite.context, "chg_1").Return(nil, errors.New("tap unavailable"))
	suite.companyRepo.On("UpdatePaymentStatus", suite.context, suite.companyID, models.PaymentStatusFailed, (*string)(nil)).Return(nil)

	got, err := suite.service.VerifyCharge(suite.context, suite.companyID, "chg_1")

	assert.Nil(suite.T(), got)
	assert.EqualError(suite.T(), err, "tap unavailable")
	suite.companyRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVerifyCharge_RecoversCompanyFromPendingRecord() {
	charge := &TapCharge{
		ID:        "chg_1",
		Status:    ChargeStatusCaptured,
		Reference: TapReference{Transaction: "txn_1_abcdefgh"},
	}
	suite.tap.On("GetCharge", suite.context, "chg_1").Return(charge, nil)
	suite.cache.On("GetPendingPayment", suite.context, "txn_1_abcdefgh").Return(&models.PendingPayment{
		CompanyID:      suite.companyID,
		Plan:           "basic",
		Amount:         30,
		TransactionRef: "txn_1_abcdefgh",
	}, nil)
	suite.companyRepo.On("UpdatePaymentStatus", suite.context, suite.companyID, models.PaymentStatusPaid, &charge.ID).Return(nil)
	suite.cache.On("DeletePendingPayment", suite.context, "txn_1_abcdefgh").Return(nil)

	got, err := suite.service.VerifyCharge(suite.context, uuid.Nil, "chg_1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), charge, got)
	suite.companyRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestVerifyCharge_NoCompanySkipsStatusWrite() {
	charge := &TapCharge{ID: "chg_1", Status: "DECLINED"}
	suite.tap.On("GetCharge", suite.context, "chg_1").Return(charge, nil)

	got, err := suite.service.VerifyCharge(suite.context, uuid.Nil, "chg_1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), charge, got)
	suite.companyRepo.AssertNotCalled(suite.T(), "UpdatePaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
