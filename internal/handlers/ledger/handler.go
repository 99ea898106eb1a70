package ledger

import (
	"net/http"
	"nightlife/infras/otel"
	"nightlife/internal/domains/ledger/service"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Ledger
	otel    otel.Otel
}

func New(service service.Ledger, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/drink-dollars", func(r chi.Router) {
		r.Get("/", handler.GetBalance)
		r.Get("/transactions", handler.GetTransactions)
	})
}

// GetBalance returns the caller's Drink Dollars
// @Summary Get my Drink Dollars balance
// @Tags DrinkDollars
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} response.Error
// @Router /v1/drink-dollars [get]
// @Security BearerAuth
func (handler *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBalance")
	defer scope.End()

	res, err := handler.service.GetBalance(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get balance")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetTransactions pages through the caller's ledger history
// @Summary Get my Drink Dollars transactions
// @Tags DrinkDollars
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetTransactionsResponse
// @Failure 401 {object} response.Error
// @Router /v1/drink-dollars/transactions [get]
// @Security BearerAuth
func (handler *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTransactions")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	res, err := handler.service.Transactions(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transactions")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
