package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"nightlife/infras/otel"
	"nightlife/infras/postgres"
	"nightlife/internal/domains/review/model"
	gDto "nightlife/shared/dto"
	gRepo "nightlife/shared/repository"
)

const summaryQuery = `SELECT COUNT(id) AS total,
	COALESCE(ROUND(AVG(total_rating), 2), 0) AS overall,
	COALESCE(ROUND(AVG(atmosphere_rating), 2), 0) AS atmosphere,
	COALESCE(ROUND(AVG(personnel_rating), 2), 0) AS personnel,
	COALESCE(ROUND(AVG(price_rating), 2), 0) AS price
	FROM venue_reviews WHERE venue_id = :venue_id`

type Review interface {
	Insert(ctx context.Context, model model.Review) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Review, error)
	Summary(ctx context.Context, venueID string) (model.Summary, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Summary(ctx context.Context, venueID string) (model.Summary, error) {
	var summary model.Summary

	if err := r.Aggregate(ctx, summaryQuery, &summary, map[string]any{model.FieldVenueID: venueID}); err != nil {
		return summary, fmt.Errorf("failed to summarise reviews: %w", err)
	}

	return summary, nil
}
