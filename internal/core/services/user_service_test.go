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
	"github.com/officio/business_mgmt_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

// Ensure MockUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit int, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User, passwordHash string) error {
	args := m.Called(ctx, user, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
	admin        domain.User
	seller       domain.User
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)

	suite.admin = domain.User{
		UserID: uuid.NewString(),
		Name:   "Admin",
		Email:  "admin@example.com",
		Role:   domain.RoleAdmin,
	}
	suite.seller = domain.User{
		UserID: uuid.NewString(),
		Name:   "Seller",
		Email:  "seller@example.com",
		Role:   domain.RoleSeller,
	}
}

// --- CreateUser ---

func (suite *UserServiceTestSuite) TestCreateUser_AdminCreatesSellerByDefault() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Name:     "New Person",
		Email:    "new@example.com",
		Password: "longenoughpw",
	}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.UserID).Return(&suite.admin, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleSeller && u.Email == req.Email
	}), mock.AnythingOfType("string")).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleSeller, user.Role)
	suite.NotEmpty(user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_NonAdminRejected() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "X", Email: "x@example.com", Password: "longenoughpw"}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(&suite.seller, nil).Once()

	_, err := suite.service.CreateUser(ctx, req, suite.seller.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Name: "X", Email: suite.seller.Email, Password: "longenoughpw"}

	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.UserID).Return(&suite.admin, nil).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User"), mock.AnythingOfType("string")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateUser(ctx, req, suite.admin.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- UpdateUser ---

func (suite *UserServiceTestSuite) TestUpdateUser_SelfRenameAllowed() {
	ctx := context.Background()
	newName := "Renamed"
	req := dto.UpdateUserRequest{Name: &newName}

	target := suite.seller
	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(&target, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == newName
	})).Return(nil).Once()

	user, err := suite.service.UpdateUser(ctx, suite.seller.UserID, req, suite.seller.UserID)

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_RoleChangeNeedsAdmin() {
	ctx := context.Background()
	adminRole := domain.RoleAdmin
	req := dto.UpdateUserRequest{Role: &adminRole}

	// The requester's own role is read for the admin check.
	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(&suite.seller, nil).Once()

	_, err := suite.service.UpdateUser(ctx, suite.seller.UserID, req, suite.seller.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

// --- DeleteUser ---

func (suite *UserServiceTestSuite) TestDeleteUser_AdminOnly() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.seller.UserID).Return(&suite.seller, nil).Once()

	err := suite.service.DeleteUser(ctx, suite.admin.UserID, suite.seller.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "MarkUserDeleted", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.UserID).Return(&suite.admin, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", ctx, suite.seller.UserID, mock.AnythingOfType("time.Time"), suite.admin.UserID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, suite.seller.UserID, suite.admin.UserID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- AuthenticateUser ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.seller.Email).Return(&suite.seller, hash, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, suite.seller.Email, "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(suite.seller.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	suite.mockUserRepo.On("FindUserByEmail", ctx, suite.seller.Email).Return(&suite.seller, hash, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, suite.seller.Email, "battery-staple")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, "", apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_DeletedUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	deleted := suite.seller
	deletedAt := time.Now().UTC()
	deleted.DeletedAt = &deletedAt
	suite.mockUserRepo.On("FindUserByEmail", ctx, deleted.Email).Return(&deleted, hash, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, deleted.Email, "correct-horse")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

// --- AuthorizeAdmin ---

func (suite *UserServiceTestSuite) TestAuthorizeAdmin_UnknownUserForbidden() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	authorizer, ok := suite.service.(portssvc.AdminAuthorizerSvc)
	suite.Require().True(ok)
	err := authorizer.AuthorizeAdmin(ctx, "ghost")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- Run Test Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
