package lead

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/auth"
	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/http/respond"
	"github.com/iconnecthq/iconnect/internal/lead"
)

type Handler struct {
	svc *lead.Service
}

func NewHandler(svc *lead.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
}

type leadResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ServiceName  string    `json:"serviceName"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	Cost         int64     `json:"cost"`
	Buyers       []string  `json:"buyers,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// toResponse redacts contact details unless the viewer bought the lead or
// is an admin. Contact info is what a purchase pays for.
func toResponse(l *lead.Lead, viewer auth.Identity) leadResponse {
	resp := leadResponse{
		ID:          l.ID.String(),
		Title:       l.Title,
		Description: l.Description,
		ServiceName: l.ServiceName,
		Cost:        l.Cost,
		CreatedAt:   l.CreatedAt,
	}

	if viewer.Admin || isBuyer(l, viewer.UID) {
		resp.ContactEmail = l.ContactEmail
		resp.ContactPhone = l.ContactPhone
	}

	if viewer.Admin {
		for _, b := range l.Buyers {
			resp.Buyers = append(resp.Buyers, b.String())
		}
	}

	return resp
}

func isBuyer(l *lead.Lead, uid string) bool {
	for _, b := range l.Buyers {
		if b.String() == uid {
			return true
		}
	}

	return false
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	viewer, err := auth.RequireUser(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	leads, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	out := make([]leadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, toResponse(l, viewer))
	}

	respond.JSON(w, http.StatusOK, out)
}

type createLeadBody struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Service      string `json:"service"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Cost         int64  `json:"cost"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	var body createLeadBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "malformed request body"))
		return
	}

	if body.Title == "" {
		respond.Error(w, fault.New(fault.InvalidArgument, "missing required field 'title'"))
		return
	}

	l, err := h.svc.Create(r.Context(), lead.CreateParams{
		Title:        body.Title,
		Description:  body.Description,
		ServiceName:  body.Service,
		ContactEmail: body.ContactEmail,
		ContactPhone: body.ContactPhone,
		Cost:         body.Cost,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	viewer, _ := auth.FromContext(r.Context())
	respond.JSON(w, http.StatusCreated, toResponse(l, viewer))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	viewer, err := auth.RequireUser(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "invalid id"))
		return
	}

	l, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(l, viewer))
}
