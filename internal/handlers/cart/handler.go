package cart

import (
	"net/http"
	"nightlife/infras/otel"
	"nightlife/internal/domains/redemption/model/dto"
	"nightlife/internal/domains/redemption/service"
	"nightlife/shared/constant"
	"nightlife/shared/validator"
	"nightlife/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Cart
	otel    otel.Otel
}

func New(service service.Cart, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Router mounts the redemption cart, keyed by venue.
func (handler *Handler) Router(r chi.Router) {
	r.Route("/carts/{id}", func(r chi.Router) {
		r.Post("/", handler.Open)
		r.Get("/", handler.Get)
		r.Delete("/", handler.Clear)
		r.Post("/items", handler.AddItem)
		r.Delete("/items/{itemID}", handler.RemoveItem)
	})
}

// Open starts a cart for the venue and snapshots the caller's balance
// @Summary Open a redemption cart
// @Tags Cart
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} response.Error
// @Router /v1/carts/{id} [post]
// @Security BearerAuth
func (handler *Handler) Open(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".OpenCart")
	defer scope.End()

	res, err := handler.service.Open(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to open cart")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Get returns the cart with its running total
// @Summary Get a redemption cart
// @Tags Cart
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} dto.CartResponse
// @Failure 404 {object} response.Error
// @Router /v1/carts/{id} [get]
// @Security BearerAuth
func (handler *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCart")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cart")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// AddItem puts one unit of an item in the cart
// @Summary Add an item to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body dto.AddCartItemRequest true "Add Item Request"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/carts/{id}/items [post]
// @Security BearerAuth
func (handler *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddCartItem")
	defer scope.End()

	req := dto.AddCartItemRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AddItem(ctx, chi.URLParam(r, constant.RequestParamID), req.ItemID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add item to cart")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// RemoveItem takes one unit of an item out of the cart
// @Summary Remove an item from the cart
// @Tags Cart
// @Produce json
// @Param id path string true "Venue ID"
// @Param itemID path string true "Item ID"
// @Success 200 {object} dto.CartResponse
// @Failure 404 {object} response.Error
// @Router /v1/carts/{id}/items/{itemID} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveCartItem")
	defer scope.End()

	res, err := handler.service.RemoveItem(ctx, chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamItemID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove item from cart")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Clear drops the cart
// @Summary Clear the cart
// @Tags Cart
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Message "Cart cleared"
// @Router /v1/carts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClearCart")
	defer scope.End()

	if err := handler.service.Clear(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to clear cart")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Cart cleared")
}
