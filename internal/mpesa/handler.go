// AngelaMos | 2026
// handler.go

package mpesa

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/apartment-api/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the gateway routes. The callback is public; the
// gateway cannot present a bearer token.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, staffOnly, pushLimiter func(http.Handler) http.Handler,
) {
	r.Route("/mpesa", func(r chi.Router) {
		r.Post("/callback", h.Callback)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(staffOnly)

			r.With(pushLimiter).Post("/stkpush", h.STKPush)
			r.Get("/transactions/{checkoutRequestID}", h.GetTransaction)
		})
	})
}

func (h *Handler) STKPush(w http.ResponseWriter, r *http.Request) {
	var req STKPushRequest
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

	ack, err := h.service.InitiatePush(r.Context(), PushInput{
		PhoneNumber: req.PhoneNumber,
		Amount:      *req.Amount,
		TenantID:    *req.TenantID,
	})
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.JSON(w, http.StatusOK, core.Response{
		Success: true,
		Message: ack.Message,
		Data:    ack,
	})
}

func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	var payload CallbackPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		core.BadRequest(w, "invalid callback body")
		return
	}

	ack, err := h.service.HandleCallback(r.Context(), payload)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.JSON(w, http.StatusOK, core.Response{
		Success: true,
		Message: ack.Message,
		Data:    ack,
	})
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "checkoutRequestID")
	if id == "" {
		core.NotFound(w, "transaction")
		return
	}

	txn, err := h.service.GetTransaction(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToTransactionResponse(txn))
}
