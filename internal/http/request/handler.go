package request

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/auth"
	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/http/respond"
	"github.com/iconnecthq/iconnect/internal/request"
)

type Handler struct {
	svc *request.Service
}

func NewHandler(svc *request.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.submit)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
	r.Post("/{id}/responses", h.recordResponse)
}

type submitRequestBody struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Service string    `json:"service"`
	Date    time.Time `json:"date"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var body submitRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "malformed request body"))
		return
	}

	if body.Name == "" || body.Service == "" {
		respond.Error(w, fault.New(fault.InvalidArgument, "missing required field 'name' or 'service'"))
		return
	}

	req, err := h.svc.Submit(r.Context(), request.CreateParams{
		CustomerName:  body.Name,
		CustomerEmail: body.Email,
		CustomerPhone: body.Phone,
		ServiceName:   body.Service,
		ScheduledAt:   body.Date,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(req))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	filter := request.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(request.Status(s))
	}

	reqs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(reqs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "invalid id"))
		return
	}

	req, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(req))
}

type updateStatusBody struct {
	Status string `json:"status"`
}

// updateStatus handles admin status changes that are not ledger decisions,
// such as closing a request. Approve/reject go through the ledger endpoints
// so they land in the audit log.
func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "invalid id"))
		return
	}

	var body updateStatusBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "malformed request body"))
		return
	}

	req, err := h.svc.Transition(r.Context(), id, request.Status(body.Status))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(req))
}

func (h *Handler) recordResponse(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireUser(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "invalid id"))
		return
	}

	req, err := h.svc.RecordProviderResponse(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(req))
}
