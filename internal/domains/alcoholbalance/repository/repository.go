package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"nightlife/infras/otel"
	"nightlife/infras/postgres"
	"nightlife/internal/domains/alcoholbalance/model"
	gDto "nightlife/shared/dto"
	gRepo "nightlife/shared/repository"
)

type AlcoholBalance interface {
	Insert(ctx context.Context, model model.AlcoholBalance) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AlcoholBalance, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.AlcoholBalance, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.AlcoholBalance]
}

func New(db *postgres.Connection, otel otel.Otel) AlcoholBalance {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AlcoholBalance](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
