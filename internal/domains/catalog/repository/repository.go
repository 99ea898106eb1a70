package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"nightlife/infras/otel"
	"nightlife/infras/postgres"
	"nightlife/internal/domains/catalog/model"
	gDto "nightlife/shared/dto"
	gRepo "nightlife/shared/repository"
)

type VenueItem interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.VenueItem, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.VenueItem]
}

func New(db *postgres.Connection, otel otel.Otel) VenueItem {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.VenueItem](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
