package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/officio/business_mgmt_app/internal/apperrors"
	"github.com/officio/business_mgmt_app/internal/core/domain"
	portsrepo "github.com/officio/business_mgmt_app/internal/core/ports/repositories"
	portssvc "github.com/officio/business_mgmt_app/internal/core/ports/services"
	"github.com/officio/business_mgmt_app/internal/dto"
	"github.com/officio/business_mgmt_app/internal/middleware"
)

// ErrTransactionSettled is returned when marking a transaction paid that is
// already PAID.
var ErrTransactionSettled = errors.New("transaction is already settled")

// ledgerService provides read access to the financial ledger plus manual
// entry recording. Sale-generated entries never pass through here; they are
// written inside the finalization unit of work.
type ledgerService struct {
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(transactionRepo portsrepo.TransactionRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		transactionRepo: transactionRepo,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// GetTransactionByID retrieves a ledger transaction by ID.
func (s *ledgerService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find transaction by ID", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListSaleTransactions retrieves the ledger transactions linked to a sale.
// A sale with no linked transactions yields an empty list.
func (s *ledgerService) ListSaleTransactions(ctx context.Context, saleID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, err := s.transactionRepo.FindTransactionsBySaleID(ctx, saleID)
	if err != nil {
		logger.Error("Failed to find transactions for sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to retrieve transactions for sale %s: %w", saleID, err)
	}
	return txns, nil
}

// ListTransactions retrieves a paginated list of ledger transactions.
func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20 // Default limit
	}

	txns, nextToken, err := s.transactionRepo.ListTransactions(ctx, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions from repository", "error", err)
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}

	logger.Debug("Transactions listed successfully", "count", len(txns))
	return resp, nil
}

// CreateTransaction records a manual income or expense ledger entry.
func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transaction amount must be positive", apperrors.ErrValidation)
	}

	status := req.Status
	if status == "" {
		status = domain.TransactionPending
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Description:   req.Description,
		Amount:        req.Amount,
		Type:          req.Type,
		Status:        status,
		DueDate:       req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if status == domain.TransactionPaid {
		paidDate := now
		txn.PaidDate = &paidDate
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	logger.Info("Transaction recorded",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// MarkTransactionPaid settles a PENDING transaction with today's date.
func (s *ledgerService) MarkTransactionPaid(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	if txn.Status == domain.TransactionPaid {
		logger.Warn("Transaction already settled", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("%w: %s", ErrTransactionSettled, transactionID)
	}

	now := time.Now().UTC()
	if err := s.transactionRepo.MarkTransactionPaid(ctx, transactionID, now, requestingUserID, now); err != nil {
		logger.Error("Failed to mark transaction paid", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to mark transaction paid: %w", err)
	}

	txn.Status = domain.TransactionPaid
	txn.PaidDate = &now
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = requestingUserID

	logger.Info("Transaction settled", slog.String("transaction_id", transactionID))
	return txn, nil
}
