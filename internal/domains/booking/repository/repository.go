package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"nightlife/infras/otel"
	"nightlife/infras/postgres"
	"nightlife/internal/domains/booking/model"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	gRepo "nightlife/shared/repository"
	"nightlife/shared/timezone"

	"github.com/jmoiron/sqlx"
)

const (
	updateStatusQuery = `UPDATE bookings
	SET status = :status, version = version + 1, modified_at = :modified_at, modified_by = :modified_by
	WHERE id = :id AND version = :version AND status = 'pending'`

	markArrivedQuery = `UPDATE bookings
	SET is_arrived = TRUE, arrived_at = :modified_at, modified_at = :modified_at, modified_by = :modified_by
	WHERE id = :id AND is_arrived = FALSE`

	markRedeemedQuery = `UPDATE bookings
	SET has_redemption = TRUE, modified_at = :modified_at, modified_by = :modified_by
	WHERE id = :id AND has_redemption = FALSE AND status <> 'rejected'`
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateStatus(ctx context.Context, id, status string, version int, actor string) (bool, error)
	MarkArrived(ctx context.Context, id, actor string) (bool, error)
	MarkRedeemedTx(ctx context.Context, tx *sqlx.Tx, id, actor string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpdateStatus moves a pending booking to status when version still matches.
// False means the booking changed since it was read or is no longer pending.
func (r *repositoryImpl) UpdateStatus(ctx context.Context, id, status string, version int, actor string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateStatus")
	defer scope.End()

	affected, err := r.Exec(ctx, updateStatusQuery, map[string]any{
		model.FieldID:            id,
		model.FieldStatus:        status,
		model.FieldVersion:       version,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	})
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to update booking status: %w", err)
	}

	return affected == 1, nil
}

// MarkArrived sets the arrival flag once. A second call reports false and keeps arrived_at.
func (r *repositoryImpl) MarkArrived(ctx context.Context, id, actor string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.MarkArrived")
	defer scope.End()

	affected, err := r.Exec(ctx, markArrivedQuery, map[string]any{
		model.FieldID:            id,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	})
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to mark booking arrived: %w", err)
	}

	return affected == 1, nil
}

// MarkRedeemedTx claims the booking's single redemption slot inside tx. Rejected bookings
// never get one.
func (r *repositoryImpl) MarkRedeemedTx(ctx context.Context, tx *sqlx.Tx, id, actor string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.MarkRedeemedTx")
	defer scope.End()

	affected, err := r.ExecTx(ctx, tx, markRedeemedQuery, map[string]any{
		model.FieldID:            id,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	})
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to mark booking redeemed: %w", err)
	}

	return affected == 1, nil
}
