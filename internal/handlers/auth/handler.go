package auth

import (
	"net/http"
	"nightlife/infras/otel"
	"nightlife/internal/domains/auth/model/dto"
	"nightlife/internal/domains/auth/service"
	"nightlife/shared/constant"
	"nightlife/shared/failure"
	"nightlife/shared/validator"
	"nightlife/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/refresh-token", handler.RefreshToken)
		r.Put("/password", handler.ChangePassword)
	})
}

// reject writes err to the client. Bad credentials and malformed bodies are
// routine on these endpoints and are logged at warn level.
func reject(w http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	if failure.GetCode(err) < http.StatusInternalServerError {
		log.Warn().Err(err).Msg(msg)
	} else {
		log.Error().Err(err).Msg(msg)
	}

	response.WithError(w, err)
}

// Register
// @Summary Register a new user
// @Description Creates the profile, issues a referral code and links the referrer when referral_code is given.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error "Email already registered"
// @Failure 500 {object} response.Error
// @Router /v1/auth/register [post]
func (handler *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Register")
	defer scope.End()

	var req dto.RegisterRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "invalid register request")

		return
	}

	profile, err := handler.service.Register(ctx, req)
	if err != nil {
		reject(w, scope, err, "register failed")

		return
	}

	scope.SetAttribute("profile.id", profile.ID)
	response.WithJSON(w, http.StatusCreated, profile)
}

// Login
// @Summary Exchange credentials for a token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error "Wrong email or password"
// @Failure 500 {object} response.Error
// @Router /v1/auth/login [post]
func (handler *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Login")
	defer scope.End()

	var req dto.LoginRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "invalid login request")

		return
	}

	tokens, err := handler.service.Login(ctx, req)
	if err != nil {
		reject(w, scope, err, "login failed")

		return
	}

	response.WithJSON(w, http.StatusOK, tokens)
}

// RefreshToken
// @Summary Rotate the token pair
// @Description The refresh token is single use; the old pair stops working.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/refresh-token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	var req dto.RefreshTokenRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "invalid refresh request")

		return
	}

	tokens, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		reject(w, scope, err, "token refresh failed")

		return
	}

	response.WithJSON(w, http.StatusOK, tokens)
}

// ChangePassword
// @Summary Change the caller's password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/auth/password [put]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	var req dto.ChangePasswordRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		reject(w, scope, err, "invalid change password request")

		return
	}

	if err := handler.service.ChangePassword(ctx, req); err != nil {
		reject(w, scope, err, "change password failed")

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}
