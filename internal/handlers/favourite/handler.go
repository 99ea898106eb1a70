package favourite

import (
	"net/http"
	"nightlife/infras/otel"
	"nightlife/internal/domains/favourite/service"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Favourite
	otel    otel.Otel
}

func New(service service.Favourite, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/favourites", func(r chi.Router) {
		r.Get("/", handler.GetFavourites)
		r.Get("/{id}", handler.GetFavouriteStatus)
		r.Put("/{id}", handler.AddFavourite)
		r.Delete("/{id}", handler.RemoveFavourite)
	})
}

// GetFavourites
// @Summary Get my favourite venues
// @Tags Favourite
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetFavouritesResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/favourites [get]
// @Security BearerAuth
func (handler *Handler) GetFavourites(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavourites")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	res, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get favourites")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetFavouriteStatus reports whether the caller saved the venue.
// @Summary Check a favourite venue
// @Tags Favourite
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} dto.FavouriteStatusResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/favourites/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetFavouriteStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFavouriteStatus")
	defer scope.End()

	res, err := handler.service.Status(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check favourite")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddFavourite saves the venue. Repeating the call returns the existing favourite with 200.
// @Summary Save a favourite venue
// @Tags Favourite
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} dto.FavouriteResponse
// @Success 201 {object} dto.FavouriteResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/favourites/{id} [put]
// @Security BearerAuth
func (handler *Handler) AddFavourite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddFavourite")
	defer scope.End()

	res, created, err := handler.service.Add(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add favourite")

		response.WithError(w, err)

		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	response.WithJSON(w, status, res)
}

// RemoveFavourite
// @Summary Remove a favourite venue
// @Tags Favourite
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/favourites/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveFavourite(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveFavourite")
	defer scope.End()

	if err := handler.service.Remove(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove favourite")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Favourite removed successfully")
}
