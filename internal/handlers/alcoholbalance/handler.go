package alcoholbalance

import (
	"net/http"
	"nightlife/infras/otel"
	"nightlife/internal/domains/alcoholbalance/model/dto"
	"nightlife/internal/domains/alcoholbalance/service"
	"nightlife/shared/constant"
	gDto "nightlife/shared/dto"
	"nightlife/shared/validator"
	"nightlife/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.AlcoholBalance
	otel    otel.Otel
}

func New(service service.AlcoholBalance, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/alcohol-balances", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAlcoholBalance)
		routerGroup.Get("/", handler.GetAlcoholBalances)
		routerGroup.Post("/upload", handler.UploadImage)
		routerGroup.Get("/{id}", handler.GetAlcoholBalanceByID)
		routerGroup.Patch("/{id}", handler.UpdateAlcoholBalance)
		routerGroup.Delete("/{id}", handler.DeleteAlcoholBalance)
	})
}

// CreateAlcoholBalance records a bottle kept at a venue.
// @Summary Create an alcohol balance
// @Description Record a bottle the caller keeps at a venue.
// @Tags AlcoholBalance
// @Accept json
// @Produce json
// @Param request body dto.CreateAlcoholBalanceRequest true "Create Alcohol Balance Request"
// @Success 201 {object} dto.AlcoholBalanceResponse
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alcohol-balances [post]
// @Security BearerAuth
func (handler *Handler) CreateAlcoholBalance(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAlcoholBalance")
	defer scope.End()

	req := dto.CreateAlcoholBalanceRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create alcohol balance")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Alcohol balance created " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetAlcoholBalances lists the caller's bottles, soonest expiry first.
// @Summary Get my alcohol balances
// @Tags AlcoholBalance
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} dto.GetAlcoholBalancesResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alcohol-balances [get]
// @Security BearerAuth
func (handler *Handler) GetAlcoholBalances(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlcoholBalances")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r)

	balances, err := handler.service.GetMine(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get alcohol balances")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, balances)
}

// GetAlcoholBalanceByID
// @Summary Get an alcohol balance by ID
// @Tags AlcoholBalance
// @Produce json
// @Param id path string true "Alcohol Balance ID"
// @Success 200 {object} dto.AlcoholBalanceResponse
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alcohol-balances/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAlcoholBalanceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlcoholBalanceByID")
	defer scope.End()

	balance, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get alcohol balance by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, balance)
}

// UpdateAlcoholBalance
// @Summary Update an alcohol balance
// @Tags AlcoholBalance
// @Accept json
// @Produce json
// @Param id path string true "Alcohol Balance ID"
// @Param request body dto.UpdateAlcoholBalanceRequest true "Update Alcohol Balance Request"
// @Success 200 {object} response.Message "Alcohol balance updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alcohol-balances/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAlcoholBalance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAlcoholBalance")
	defer scope.End()

	req := dto.UpdateAlcoholBalanceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update alcohol balance")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Alcohol balance updated successfully")
}

// DeleteAlcoholBalance
// @Summary Delete an alcohol balance
// @Tags AlcoholBalance
// @Produce json
// @Param id path string true "Alcohol Balance ID"
// @Success 200 {object} response.Message "Alcohol balance deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alcohol-balances/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAlcoholBalance(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAlcoholBalance")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete alcohol balance")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Alcohol balance deleted successfully")
}

// UploadImage stores a bottle photo and returns its URL.
// @Summary Upload a bottle photo
// @Tags AlcoholBalance
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file to upload"
// @Success 200 {object} dto.UploadImageResponse "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/alcohol-balances/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	req := dto.UploadImageRequest{
		Image:     fileHeader,
		ImageFile: file,
	}

	res, err := handler.service.UploadImage(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload file")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
