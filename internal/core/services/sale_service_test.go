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
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

// Ensure MockSaleRepository implements portsrepo.SaleRepositoryWithTx
var _ portsrepo.SaleRepositoryWithTx = (*MockSaleRepository)(nil)

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindItemsBySaleID(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleItem), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Sale), returnedNextToken, args.Error(2)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) AddItem(ctx context.Context, sale domain.Sale, item domain.SaleItem) error {
	args := m.Called(ctx, sale, item)
	return args.Error(0)
}

func (m *MockSaleRepository) RemoveItem(ctx context.Context, sale domain.Sale, itemID string) error {
	args := m.Called(ctx, sale, itemID)
	return args.Error(0)
}

func (m *MockSaleRepository) UpdateSaleStatus(ctx context.Context, saleID string, status domain.SaleStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, saleID, status, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockSaleRepository) FinalizeSale(ctx context.Context, sale domain.Sale, ledgerTxn domain.Transaction) error {
	args := m.Called(ctx, sale, ledgerTxn)
	return args.Error(0)
}

func (m *MockSaleRepository) DeleteSale(ctx context.Context, sale domain.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSaleRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSaleRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

var _ portsrepo.ProductRepositoryFacade = (*MockProductRepository)(nil)

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListLowStockProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductsByIDsForUpdate(ctx context.Context, tx pgx.Tx, productIDs []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, tx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ApplyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]int, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, tx, deltas, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock ServiceRepository ---
type MockServiceRepository struct {
	mock.Mock
}

var _ portsrepo.ServiceRepositoryFacade = (*MockServiceRepository)(nil)

func (m *MockServiceRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.Service, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) ListServices(ctx context.Context, limit int, offset int) ([]domain.Service, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockServiceRepository) SaveService(ctx context.Context, service domain.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) UpdateService(ctx context.Context, service domain.Service) error {
	args := m.Called(ctx, service)
	return args.Error(0)
}

func (m *MockServiceRepository) DeleteService(ctx context.Context, serviceID string) error {
	args := m.Called(ctx, serviceID)
	return args.Error(0)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// --- Mock AdminAuthorizer ---
type MockAdminAuthorizer struct {
	mock.Mock
}

var _ portssvc.AdminAuthorizerSvc = (*MockAdminAuthorizer)(nil)

func (m *MockAdminAuthorizer) AuthorizeAdmin(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Recording Notifier ---
type recordingNotifier struct {
	levels   []portssvc.NotificationLevel
	messages []string
}

var _ portssvc.Notifier = (*recordingNotifier)(nil)

func (n *recordingNotifier) Notify(_ context.Context, level portssvc.NotificationLevel, message string) {
	n.levels = append(n.levels, level)
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) lastLevel() portssvc.NotificationLevel {
	if len(n.levels) == 0 {
		return ""
	}
	return n.levels[len(n.levels)-1]
}

// --- Test Suite Setup ---
type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo     *MockSaleRepository
	mockProductRepo  *MockProductRepository
	mockServiceRepo  *MockServiceRepository
	mockCustomerRepo *MockCustomerRepository
	mockAuthorizer   *MockAdminAuthorizer
	notifier         *recordingNotifier
	service          portssvc.SaleSvcFacade
	customer         domain.Customer
	product          domain.Product
	catalogService   domain.Service
	userID           string
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockServiceRepo = new(MockServiceRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockAuthorizer = new(MockAdminAuthorizer)
	suite.notifier = new(recordingNotifier)
	suite.service = services.NewSaleService(
		suite.mockSaleRepo,
		suite.mockProductRepo,
		suite.mockServiceRepo,
		suite.mockCustomerRepo,
		suite.mockAuthorizer,
		suite.notifier,
	)

	suite.userID = uuid.NewString()
	suite.customer = domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       "Acme Corp",
	}
	suite.product = domain.Product{
		ProductID: uuid.NewString(),
		Name:      "Widget",
		SKU:       "WID-001",
		Price:     decimal.NewFromInt(25),
		Stock:     10,
		MinStock:  2,
	}
	suite.catalogService = domain.Service{
		ServiceID:        uuid.NewString(),
		Name:             "Installation",
		Price:            decimal.NewFromInt(80),
		EstimatedMinutes: 60,
	}
}

func (suite *SaleServiceTestSuite) pendingSale(items ...domain.SaleItem) *domain.Sale {
	sale := &domain.Sale{
		SaleID:     uuid.NewString(),
		CustomerID: suite.customer.CustomerID,
		SellerID:   suite.userID,
		Status:     domain.SalePending,
		Items:      items,
	}
	sale.RecomputeTotal()
	return sale
}

func (suite *SaleServiceTestSuite) expectSaleFetch(sale *domain.Sale) {
	fetched := *sale
	items := sale.Items
	fetched.Items = nil
	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, sale.SaleID).Return(&fetched, nil).Once()
	if items == nil {
		items = []domain.SaleItem{}
	}
	suite.mockSaleRepo.On("FindItemsBySaleID", mock.Anything, sale.SaleID).Return(items, nil).Once()
}

// --- CreateSale ---

func (suite *SaleServiceTestSuite) TestCreateSale_Success() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{CustomerID: suite.customer.CustomerID}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockSaleRepo.On("SaveSale", ctx, mock.AnythingOfType("domain.Sale")).Return(nil).Once()

	sale, err := suite.service.CreateSale(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(sale)
	suite.NotEmpty(sale.SaleID)
	suite.Equal(domain.SalePending, sale.Status)
	suite.Equal(suite.userID, sale.SellerID)
	suite.True(sale.Total.IsZero())
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_CustomerNotFound() {
	ctx := context.Background()
	req := dto.CreateSaleRequest{CustomerID: "missing"}

	suite.mockCustomerRepo.On("FindCustomerByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateSale(ctx, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "SaveSale", mock.Anything, mock.Anything)
}

// --- AddItem ---

func (suite *SaleServiceTestSuite) TestAddItem_ProductSnapshotsPriceAndRecomputesTotal() {
	ctx := context.Background()
	sale := suite.pendingSale()
	suite.expectSaleFetch(sale)

	suite.mockProductRepo.On("FindProductByID", mock.Anything, suite.product.ProductID).Return(&suite.product, nil).Once()
	suite.mockSaleRepo.On("AddItem", mock.Anything, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("domain.SaleItem")).Return(nil).Once()

	req := dto.AddItemRequest{ProductID: &suite.product.ProductID, Quantity: 3}
	updated, err := suite.service.AddItem(ctx, sale.SaleID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.Items, 1)
	item := updated.Items[0]
	suite.True(item.Price.Equal(suite.product.Price), "unit price must be snapshotted from the catalog")
	suite.Equal(3, item.Quantity)
	suite.Require().NotNil(item.ProductID)
	suite.Nil(item.ServiceID)
	suite.True(updated.Total.Equal(decimal.NewFromInt(75)), "total must equal quantity times snapshot price")
	suite.Equal(portssvc.NotifySuccess, suite.notifier.lastLevel())
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestAddItem_ServiceSkipsStockCheck() {
	ctx := context.Background()
	sale := suite.pendingSale()
	suite.expectSaleFetch(sale)

	suite.mockServiceRepo.On("FindServiceByID", mock.Anything, suite.catalogService.ServiceID).Return(&suite.catalogService, nil).Once()
	suite.mockSaleRepo.On("AddItem", mock.Anything, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("domain.SaleItem")).Return(nil).Once()

	req := dto.AddItemRequest{ServiceID: &suite.catalogService.ServiceID, Quantity: 2}
	updated, err := suite.service.AddItem(ctx, sale.SaleID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.Items, 1)
	suite.Nil(updated.Items[0].ProductID)
	suite.True(updated.Total.Equal(decimal.NewFromInt(160)))
	suite.mockProductRepo.AssertNotCalled(suite.T(), "FindProductByID", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestAddItem_SaleClosed() {
	ctx := context.Background()
	sale := suite.pendingSale()
	sale.Status = domain.SaleCompleted
	suite.expectSaleFetch(sale)

	req := dto.AddItemRequest{ProductID: &suite.product.ProductID, Quantity: 1}
	_, err := suite.service.AddItem(ctx, sale.SaleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrSaleClosed)
	suite.Equal(portssvc.NotifyError, suite.notifier.lastLevel())
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "AddItem", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestAddItem_InsufficientStock() {
	ctx := context.Background()
	sale := suite.pendingSale()
	suite.expectSaleFetch(sale)

	lowStock := suite.product
	lowStock.Stock = 2
	suite.mockProductRepo.On("FindProductByID", mock.Anything, lowStock.ProductID).Return(&lowStock, nil).Once()

	req := dto.AddItemRequest{ProductID: &lowStock.ProductID, Quantity: 5}
	_, err := suite.service.AddItem(ctx, sale.SaleID, req, suite.userID)

	suite.Require().Error(err)
	var stockErr *domain.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal("Widget", stockErr.ProductName)
	suite.Equal(2, stockErr.Available)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "AddItem", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestAddItem_BothRefsRejected() {
	ctx := context.Background()
	sale := suite.pendingSale()
	suite.expectSaleFetch(sale)

	req := dto.AddItemRequest{ProductID: &suite.product.ProductID, ServiceID: &suite.catalogService.ServiceID, Quantity: 1}
	_, err := suite.service.AddItem(ctx, sale.SaleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidCatalogRef)
}

func (suite *SaleServiceTestSuite) TestAddItem_NeitherRefRejected() {
	ctx := context.Background()
	sale := suite.pendingSale()
	suite.expectSaleFetch(sale)

	req := dto.AddItemRequest{Quantity: 1}
	_, err := suite.service.AddItem(ctx, sale.SaleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidCatalogRef)
}

func (suite *SaleServiceTestSuite) TestAddItem_ProductVanished() {
	ctx := context.Background()
	sale := suite.pendingSale()
	suite.expectSaleFetch(sale)

	productID := uuid.NewString()
	suite.mockProductRepo.On("FindProductByID", mock.Anything, productID).Return(nil, apperrors.ErrNotFound).Once()

	req := dto.AddItemRequest{ProductID: &productID, Quantity: 1}
	_, err := suite.service.AddItem(ctx, sale.SaleID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidCatalogRef)
}

// --- RemoveItem ---

func (suite *SaleServiceTestSuite) TestRemoveItem_RecomputesTotal() {
	ctx := context.Background()
	itemKeep, err := domain.NewSaleItem(uuid.NewString(), "", &suite.product.ProductID, nil, 2, decimal.NewFromInt(25))
	suite.Require().NoError(err)
	itemDrop, err := domain.NewSaleItem(uuid.NewString(), "", nil, &suite.catalogService.ServiceID, 1, decimal.NewFromInt(80))
	suite.Require().NoError(err)

	sale := suite.pendingSale(itemKeep, itemDrop)
	suite.expectSaleFetch(sale)
	suite.mockSaleRepo.On("RemoveItem", mock.Anything, mock.AnythingOfType("domain.Sale"), itemDrop.SaleItemID).Return(nil).Once()

	updated, err := suite.service.RemoveItem(ctx, sale.SaleID, itemDrop.SaleItemID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(updated.Items, 1)
	suite.Equal(itemKeep.SaleItemID, updated.Items[0].SaleItemID)
	suite.True(updated.Total.Equal(decimal.NewFromInt(50)))
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestRemoveItem_UnknownItem() {
	ctx := context.Background()
	sale := suite.pendingSale()
	suite.expectSaleFetch(sale)

	_, err := suite.service.RemoveItem(ctx, sale.SaleID, "no-such-item", suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "RemoveItem", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestRemoveItem_SaleClosed() {
	ctx := context.Background()
	item, err := domain.NewSaleItem(uuid.NewString(), "", &suite.product.ProductID, nil, 1, decimal.NewFromInt(25))
	suite.Require().NoError(err)
	sale := suite.pendingSale(item)
	sale.Status = domain.SaleCanceled
	suite.expectSaleFetch(sale)

	_, err = suite.service.RemoveItem(ctx, sale.SaleID, item.SaleItemID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrSaleClosed)
}

// --- Finalize ---

func (suite *SaleServiceTestSuite) TestFinalize_Success() {
	ctx := context.Background()
	item, err := domain.NewSaleItem(uuid.NewString(), "", &suite.product.ProductID, nil, 4, decimal.NewFromInt(25))
	suite.Require().NoError(err)
	sale := suite.pendingSale(item)
	suite.expectSaleFetch(sale)

	suite.mockCustomerRepo.On("FindCustomerByID", mock.Anything, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockSaleRepo.On("FinalizeSale", mock.Anything,
		mock.MatchedBy(func(s domain.Sale) bool {
			return s.SaleID == sale.SaleID && s.Status == domain.SaleCompleted
		}),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.Income &&
				txn.Status == domain.TransactionPaid &&
				txn.Amount.Equal(decimal.NewFromInt(100)) &&
				txn.SaleID != nil && *txn.SaleID == sale.SaleID &&
				txn.PaidDate != nil
		}),
	).Return(nil).Once()

	finalized, err := suite.service.Finalize(ctx, sale.SaleID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SaleCompleted, finalized.Status)
	suite.True(finalized.Total.Equal(decimal.NewFromInt(100)))
	suite.Equal(portssvc.NotifySuccess, suite.notifier.lastLevel())
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestFinalize_AlreadyFinalizedIsIdempotentWarning() {
	ctx := context.Background()
	item, err := domain.NewSaleItem(uuid.NewString(), "", &suite.product.ProductID, nil, 1, decimal.NewFromInt(25))
	suite.Require().NoError(err)
	sale := suite.pendingSale(item)
	sale.Status = domain.SaleCompleted
	suite.expectSaleFetch(sale)

	finalized, err := suite.service.Finalize(ctx, sale.SaleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrAlreadyFinalized)
	suite.Require().NotNil(finalized, "the sale is still returned so callers can render it")
	suite.Equal(sale.SaleID, finalized.SaleID)
	suite.Equal(portssvc.NotifyWarning, suite.notifier.lastLevel())
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "FinalizeSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestFinalize_ConcurrentRaceLossIsIdempotentWarning() {
	ctx := context.Background()
	item, err := domain.NewSaleItem(uuid.NewString(), "", &suite.product.ProductID, nil, 1, decimal.NewFromInt(25))
	suite.Require().NoError(err)
	sale := suite.pendingSale(item)

	// First read sees PENDING; the status-guarded update in the repository
	// then loses to a concurrent finalize and the sale is re-read COMPLETED.
	suite.expectSaleFetch(sale)
	completed := *sale
	completed.Status = domain.SaleCompleted
	suite.expectSaleFetch(&completed)

	suite.mockCustomerRepo.On("FindCustomerByID", mock.Anything, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockSaleRepo.On("FinalizeSale", mock.Anything, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("domain.Transaction")).Return(domain.ErrAlreadyFinalized).Once()

	finalized, err := suite.service.Finalize(ctx, sale.SaleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrAlreadyFinalized)
	suite.Require().NotNil(finalized, "the sale is still returned so callers can render it")
	suite.Equal(domain.SaleCompleted, finalized.Status)
	suite.Equal(portssvc.NotifyWarning, suite.notifier.lastLevel())
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestFinalize_EmptySale() {
	ctx := context.Background()
	sale := suite.pendingSale()
	suite.expectSaleFetch(sale)

	_, err := suite.service.Finalize(ctx, sale.SaleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrEmptySale)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "FinalizeSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestFinalize_CanceledSale() {
	ctx := context.Background()
	sale := suite.pendingSale()
	sale.Status = domain.SaleCanceled
	suite.expectSaleFetch(sale)

	_, err := suite.service.Finalize(ctx, sale.SaleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrSaleClosed)
}

func (suite *SaleServiceTestSuite) TestFinalize_InsufficientStockFromUnitOfWork() {
	ctx := context.Background()
	item, err := domain.NewSaleItem(uuid.NewString(), "", &suite.product.ProductID, nil, 4, decimal.NewFromInt(25))
	suite.Require().NoError(err)
	sale := suite.pendingSale(item)
	suite.expectSaleFetch(sale)

	suite.mockCustomerRepo.On("FindCustomerByID", mock.Anything, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	stockErr := &domain.InsufficientStockError{ProductName: "Widget", Available: 1}
	suite.mockSaleRepo.On("FinalizeSale", mock.Anything, mock.AnythingOfType("domain.Sale"), mock.AnythingOfType("domain.Transaction")).Return(stockErr).Once()

	_, err = suite.service.Finalize(ctx, sale.SaleID, suite.userID)

	suite.Require().Error(err)
	var returned *domain.InsufficientStockError
	suite.Require().ErrorAs(err, &returned)
	suite.Equal(1, returned.Available)
	suite.Equal(portssvc.NotifyError, suite.notifier.lastLevel())
}

// --- CancelSale ---

func (suite *SaleServiceTestSuite) TestCancelSale_Success() {
	ctx := context.Background()
	sale := suite.pendingSale()
	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, sale.SaleID).Return(sale, nil).Once()
	suite.mockSaleRepo.On("UpdateSaleStatus", mock.Anything, sale.SaleID, domain.SaleCanceled, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	canceled, err := suite.service.CancelSale(ctx, sale.SaleID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SaleCanceled, canceled.Status)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCancelSale_CompletedSaleRejected() {
	ctx := context.Background()
	sale := suite.pendingSale()
	sale.Status = domain.SaleCompleted
	suite.mockSaleRepo.On("FindSaleByID", mock.Anything, sale.SaleID).Return(sale, nil).Once()

	_, err := suite.service.CancelSale(ctx, sale.SaleID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrSaleClosed)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "UpdateSaleStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- DeleteSale ---

func (suite *SaleServiceTestSuite) TestDeleteSale_RequiresAdmin() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeAdmin", mock.Anything, suite.userID).Return(apperrors.ErrForbidden).Once()

	err := suite.service.DeleteSale(ctx, uuid.NewString(), suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "DeleteSale", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestDeleteSale_CompletedSaleGoesThroughUnitOfWork() {
	ctx := context.Background()
	item, err := domain.NewSaleItem(uuid.NewString(), "", &suite.product.ProductID, nil, 2, decimal.NewFromInt(25))
	suite.Require().NoError(err)
	sale := suite.pendingSale(item)
	sale.Status = domain.SaleCompleted

	suite.mockAuthorizer.On("AuthorizeAdmin", mock.Anything, suite.userID).Return(nil).Once()
	suite.expectSaleFetch(sale)
	suite.mockSaleRepo.On("DeleteSale", mock.Anything, mock.MatchedBy(func(s domain.Sale) bool {
		return s.SaleID == sale.SaleID && s.Status == domain.SaleCompleted && len(s.Items) == 1
	})).Return(nil).Once()

	err = suite.service.DeleteSale(ctx, sale.SaleID, suite.userID)

	suite.Require().NoError(err)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestSaleService(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
