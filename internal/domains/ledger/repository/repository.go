package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"nightlife/infras/otel"
	"nightlife/infras/postgres"
	"nightlife/internal/domains/ledger/model"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	gRepo "nightlife/shared/repository"
	"nightlife/shared/timezone"

	"github.com/jmoiron/sqlx"
)

const debitQuery = `UPDATE drink_dollars
	SET coins = coins - :amount, modified_at = :modified_at, modified_by = :modified_by
	WHERE user_id = :user_id AND coins >= :amount`

type Balance interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Balance, error)
	DebitTx(ctx context.Context, tx *sqlx.Tx, userID string, amount int64, actor string) (bool, error)
}

type Transaction interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Transaction) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transaction, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type balanceRepository struct {
	gRepo.Repository[model.Balance]
	otel otel.Otel
}

func NewBalance(db *postgres.Connection, otel otel.Otel) Balance {
	return &balanceRepository{
		Repository: gRepo.NewRepository[model.Balance](model.BalanceEntityName, model.BalanceTableName, model.BalanceFieldUserID, db, otel),
		otel:       otel,
	}
}

// DebitTx subtracts amount only when the balance covers it. It reports false when no row was
// updated, which covers both a short balance and a missing balance row. A concurrent debit
// that trips the non-negative check counts as a short balance too.
func (r *balanceRepository) DebitTx(ctx context.Context, tx *sqlx.Tx, userID string, amount int64, actor string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".drink_dollar.DebitTx")
	defer scope.End()

	affected, err := r.ExecTx(ctx, tx, debitQuery, map[string]any{
		"user_id":                userID,
		"amount":                 amount,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	})
	if gRepo.IsCheckViolation(err, model.ConstraintCoinsNonNegative) {
		return false, nil
	}

	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to debit balance: %w", err)
	}

	return affected == 1, nil
}

type transactionRepository struct {
	gRepo.Repository[model.Transaction]
}

func NewTransaction(db *postgres.Connection, otel otel.Otel) Transaction {
	return &transactionRepository{
		Repository: gRepo.NewRepository[model.Transaction](model.TransactionEntityName, model.TransactionTableName, model.TransactionFieldID, db, otel),
	}
}
