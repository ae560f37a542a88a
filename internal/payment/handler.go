// AngelaMos | 2026
// handler.go

package payment

import (
	"encoding/json"
	"net/http"
	"time"

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

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, staffOnly func(http.Handler) http.Handler,
) {
	r.Route("/payments", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(staffOnly)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPaymentResponseList(payments))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.NotFound(w, "payment")
		return
	}

	payment, err := h.service.Get(r.Context(), id)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPaymentResponse(payment))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
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

	in := CreateInput{
		Amount:   *req.Amount,
		TenantID: *req.TenantID,
		RoomID:   req.RoomID,
	}

	if req.Date != nil && *req.Date != "" {
		date, err := time.Parse(time.DateOnly, *req.Date)
		if err != nil {
			core.BadRequest(w, "date must be a YYYY-MM-DD date")
			return
		}
		in.Date = &date
	}

	payment, err := h.service.Create(r.Context(), in)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToPaymentResponse(payment))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := core.IDParam(r, "id")
	if err != nil {
		core.NotFound(w, "payment")
		return
	}

	var req UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.MissingField(w, core.FormatValidationError(err))
		return
	}

	payment, err := h.service.UpdateAmount(r.Context(), id, *req.Amount)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPaymentResponse(payment))
}
