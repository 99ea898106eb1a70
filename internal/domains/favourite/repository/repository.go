package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"nightlife/infras/otel"
	"nightlife/infras/postgres"
	"nightlife/internal/domains/favourite/model"
	gDto "nightlife/shared/dto"
	gRepo "nightlife/shared/repository"
)

type Favourite interface {
	Insert(ctx context.Context, model model.Favourite) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Favourite, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Favourite, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Favourite]
}

func New(db *postgres.Connection, otel otel.Otel) Favourite {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Favourite](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
