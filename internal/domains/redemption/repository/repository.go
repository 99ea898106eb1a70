package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"nightlife/infras/otel"
	"nightlife/infras/postgres"
	"nightlife/internal/domains/redemption/model"
	gDto "nightlife/shared/dto"
	gRepo "nightlife/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Redemption interface {
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.Redemption) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Redemption, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Redemption]
}

func New(db *postgres.Connection, otel otel.Otel) Redemption {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Redemption](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
