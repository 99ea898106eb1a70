package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"nightlife/config"
	"nightlife/infras/otel"
	"nightlife/internal/domains/ledger/model"
	"nightlife/internal/domains/ledger/model/dto"
	"nightlife/internal/domains/ledger/repository"
	"nightlife/shared"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/failure"
	"nightlife/shared/identity"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var ErrInvalidDebitAmount = failure.BadRequestFromString("debit amount must be positive")

type Ledger interface {
	GetBalance(ctx context.Context) (dto.BalanceResponse, error)
	Balance(ctx context.Context, userID string) (int64, error)
	Transactions(ctx context.Context, params gDto.QueryParams) (dto.GetTransactionsResponse, error)
	Debit(ctx context.Context, tx *sqlx.Tx, req dto.DebitRequest) (model.Transaction, error)
}

type serviceImpl struct {
	balanceRepo     repository.Balance
	transactionRepo repository.Transaction
	cfg             *config.Config
	otel            otel.Otel
}

func New(balanceRepo repository.Balance, transactionRepo repository.Transaction, cfg *config.Config, otel otel.Otel) Ledger {
	return &serviceImpl{
		balanceRepo:     balanceRepo,
		transactionRepo: transactionRepo,
		cfg:             cfg,
		otel:            otel,
	}
}

func (s *serviceImpl) GetBalance(ctx context.Context) (res dto.BalanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBalance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	coins, err := s.Balance(ctx, caller.UserID)
	if err != nil {
		return res, err
	}

	res.UserID = caller.UserID
	res.Coins = coins

	return res, nil
}

// Balance reads the current coins of userID. Users without a balance row have zero.
func (s *serviceImpl) Balance(ctx context.Context, userID string) (coins int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Balance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	balance, err := s.balanceRepo.Get(ctx, shared.FilterByID(userID, model.BalanceFieldUserID, model.BalanceTableName))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to get balance")

		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	return balance.Coins, nil
}

func (s *serviceImpl) Transactions(ctx context.Context, params gDto.QueryParams) (res dto.GetTransactionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transactions")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	caller, err := identity.FromContext(ctx)
	if err != nil {
		return res, err
	}

	params.RestrictSort(constant.DefaultValueSortBy, constant.DefaultValueSortDir, constant.FieldCreatedAt)
	filter := shared.FilterByID(caller.UserID, model.TransactionFieldUserID, model.TransactionTableName)

	total, err := s.transactionRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count ledger transactions")

		return res, fmt.Errorf("failed to count ledger transactions: %w", err)
	}

	models, err := s.transactionRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get ledger transactions")

		return res, fmt.Errorf("failed to get ledger transactions: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// Debit conditionally subtracts req.Amount inside tx and appends the matching ledger entry.
// A balance that does not cover the amount yields ErrInsufficientBalance and writes nothing.
func (s *serviceImpl) Debit(ctx context.Context, tx *sqlx.Tx, req dto.DebitRequest) (res model.Transaction, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Debit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Amount <= 0 {
		return res, ErrInvalidDebitAmount
	}

	actor := identity.Actor(ctx)

	debited, err := s.balanceRepo.DebitTx(ctx, tx, req.UserID, req.Amount, actor)
	if err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to debit balance")

		return res, fmt.Errorf("failed to debit balance: %w", err)
	}

	if !debited {
		log.Warn().Str("user_id", req.UserID).Int64("amount", req.Amount).Msg("balance does not cover debit")

		return res, model.ErrInsufficientBalance
	}

	res = req.ToTransactionModel(actor)

	if err = s.transactionRepo.InsertTx(ctx, tx, res); err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to record ledger transaction")

		return res, fmt.Errorf("failed to record ledger transaction: %w", err)
	}

	return res, nil
}
