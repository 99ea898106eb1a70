package venue

import (
	"net/http"
	"nightlife/infras/otel"
	catalogService "nightlife/internal/domains/catalog/service"
	"nightlife/internal/domains/venue/model/dto"
	"nightlife/internal/domains/venue/service"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Venue
	catalog catalogService.Catalog
	otel    otel.Otel
}

func New(service service.Venue, catalog catalogService.Catalog, otel otel.Otel) Handler {
	return Handler{
		service: service,
		catalog: catalog,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/venues", func(r chi.Router) {
		r.Get("/", handler.GetVenues)
		r.Get("/{id}", handler.GetVenueByID)
		r.Get("/{id}/redeem-items", handler.GetPriceList)
	})
}

// GetVenues lists active venues
// @Summary Get all venues
// @Tags Venue
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "Filter by category"
// @Param name query string false "Filter by venue name"
// @Success 200 {object} dto.GetVenuesResponse
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues [get]
func (handler *Handler) GetVenues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	filter := dto.VenueFilter{
		Category: r.URL.Query().Get("category"),
		Name:     r.URL.Query().Get("name"),
	}

	venues, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venues")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, venues)
}

// GetVenueByID returns a venue with its rooms
// @Summary Get a venue by ID
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} dto.VenueResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [get]
func (handler *Handler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueByID")
	defer scope.End()

	venue, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, venue)
}

// GetPriceList returns the Drink Dollars price list of a venue
// @Summary Get redeemable items of a venue
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} catalogDto.PriceListResponse
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/redeem-items [get]
func (handler *Handler) GetPriceList(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPriceList")
	defer scope.End()

	items, err := handler.catalog.PriceList(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get price list")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, items)
}
