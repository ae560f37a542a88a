// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

type Handler struct {
	service   *Service
	jwt       *JWTManager
	validator *validator.Validate
}

func NewHandler(service *Service, jwt *JWTManager) *Handler {
	return &Handler{
		service:   service,
		jwt:       jwt,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/login", h.Login)
	r.Get("/.well-known/jwks.json", h.jwt.GetJWKSHandler())
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		if core.HasMissingField(err) {
			core.MissingField(w, core.FormatValidationError(err))
			return
		}
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(w, core.NewAppError(
				ErrInvalidCredentials,
				"invalid email or password",
				http.StatusUnauthorized,
				"INVALID_CREDENTIALS",
			))
			return
		}
		core.InternalServerError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "user logged in",
		"user_id", resp.User.ID,
		"role", resp.User.Role,
	)

	core.OK(w, resp)
}
