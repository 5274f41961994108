package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/officio/business_mgmt_app/internal/apperrors"
	"github.com/officio/business_mgmt_app/internal/core/domain"
	portsrepo "github.com/officio/business_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/officio/business_mgmt_app/internal/core/ports/services"
	"github.com/officio/business_mgmt_app/internal/core/services"
	"github.com/officio/business_mgmt_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

// Ensure MockTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsBySaleID(ctx context.Context, saleID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkTransactionPaid(ctx context.Context, transactionID string, paidDate time.Time, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, transactionID, paidDate, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockTxnRepo *MockTransactionRepository
	service     portssvc.LedgerSvcFacade
	userID      string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewLedgerService(suite.mockTxnRepo)
	suite.userID = uuid.NewString()
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestCreateTransaction_DefaultsToPending() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Description: "Office rent",
		Amount:      decimal.NewFromInt(500),
		Type:        domain.Expense,
		DueDate:     time.Now().AddDate(0, 0, 14),
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Status == domain.TransactionPending && t.PaidDate == nil && t.SaleID == nil
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionPending, txn.Status)
	suite.Nil(txn.PaidDate)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_PaidGetsPaidDate() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Description: "Cash purchase",
		Amount:      decimal.NewFromInt(120),
		Type:        domain.Expense,
		Status:      domain.TransactionPaid,
		DueDate:     time.Now(),
	}

	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionPaid, txn.Status)
	suite.Require().NotNil(txn.PaidDate)
}

func (suite *LedgerServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Description: "Bad entry",
		Amount:      decimal.Zero,
		Type:        domain.Income,
		DueDate:     time.Now(),
	}

	_, err := suite.service.CreateTransaction(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestMarkTransactionPaid_Success() {
	ctx := context.Background()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   "Invoice",
		Amount:        decimal.NewFromInt(90),
		Type:          domain.Income,
		Status:        domain.TransactionPending,
		DueDate:       time.Now(),
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("MarkTransactionPaid", ctx, txn.TransactionID, mock.AnythingOfType("time.Time"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	settled, err := suite.service.MarkTransactionPaid(ctx, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.TransactionPaid, settled.Status)
	suite.Require().NotNil(settled.PaidDate)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestMarkTransactionPaid_AlreadySettled() {
	ctx := context.Background()
	paidDate := time.Now()
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Status:        domain.TransactionPaid,
		PaidDate:      &paidDate,
	}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.MarkTransactionPaid(ctx, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransactionSettled)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "MarkTransactionPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListSaleTransactions_ReturnsLinkedEntries() {
	ctx := context.Background()
	saleID := uuid.NewString()
	txns := []domain.Transaction{{
		TransactionID: uuid.NewString(),
		Description:   "Sale #" + saleID,
		Amount:        decimal.NewFromInt(100),
		Type:          domain.Income,
		Status:        domain.TransactionPaid,
		SaleID:        &saleID,
	}}

	suite.mockTxnRepo.On("FindTransactionsBySaleID", ctx, saleID).Return(txns, nil).Once()

	found, err := suite.service.ListSaleTransactions(ctx, saleID)

	suite.Require().NoError(err)
	suite.Require().Len(found, 1)
	suite.Require().NotNil(found[0].SaleID)
	suite.Equal(saleID, *found[0].SaleID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListSaleTransactions_EmptyForUnlinkedSale() {
	ctx := context.Background()
	saleID := uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionsBySaleID", ctx, saleID).Return([]domain.Transaction{}, nil).Once()

	found, err := suite.service.ListSaleTransactions(ctx, saleID)

	suite.Require().NoError(err)
	suite.Empty(found)
}

func (suite *LedgerServiceTestSuite) TestListTransactions_PassesToken() {
	ctx := context.Background()
	token := "opaque-token"
	params := dto.ListTransactionsParams{Limit: 5, NextToken: &token}

	txns := []domain.Transaction{{TransactionID: uuid.NewString(), Amount: decimal.NewFromInt(10)}}
	suite.mockTxnRepo.On("ListTransactions", ctx, 5, &token).Return(txns, "next", nil).Once()

	resp, err := suite.service.ListTransactions(ctx, params)

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next", *resp.NextToken)
}

// --- Run Test Suite ---
func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
