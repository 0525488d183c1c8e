package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/auth"
	"github.com/iconnecthq/iconnect/internal/catalog"
	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/http/respond"
)

type Handler struct {
	svc *catalog.Service
}

func NewHandler(svc *catalog.Service) *Handler {
	return &Handler{svc: svc}
}

// ProviderRoutes mounts the provider table endpoints.
func (h *Handler) ProviderRoutes(r chi.Router) {
	r.Get("/", h.listProviders)
	r.Post("/", h.createProvider)
	r.Patch("/{id}/active", h.setProviderActive)
}

// ServiceRoutes mounts the service table endpoints.
func (h *Handler) ServiceRoutes(r chi.Router) {
	r.Get("/", h.listServices)
	r.Post("/", h.createService)
	r.Patch("/{id}/active", h.setServiceActive)
}

type providerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Specialty string    `json:"specialty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func (h *Handler) listProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.svc.Providers(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	out := make([]providerResponse, 0, len(providers))
	for _, p := range providers {
		out = append(out, providerResponse{
			ID:        p.ID.String(),
			Name:      p.Name,
			Email:     p.Email,
			Phone:     p.Phone,
			Specialty: p.Specialty,
			Active:    p.Active,
			CreatedAt: p.CreatedAt,
		})
	}

	respond.JSON(w, http.StatusOK, out)
}

type createProviderBody struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

func (h *Handler) createProvider(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	var body createProviderBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "malformed request body"))
		return
	}

	if body.Name == "" {
		respond.Error(w, fault.New(fault.InvalidArgument, "missing required field 'name'"))
		return
	}

	p := &catalog.Provider{
		Name:      body.Name,
		Email:     body.Email,
		Phone:     body.Phone,
		Specialty: body.Specialty,
	}
	if err := h.svc.AddProvider(r.Context(), p); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

type setActiveBody struct {
	Active bool `json:"active"`
}

func (h *Handler) setProviderActive(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.svc.SetProviderActive)
}

func (h *Handler) setServiceActive(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, h.svc.SetOfferingActive)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID, active bool) error) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "invalid id"))
		return
	}

	var body setActiveBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "malformed request body"))
		return
	}

	if err := op(r.Context(), id, body.Active); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type serviceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"priceCents"`
	Category    string    `json:"category"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	offerings, err := h.svc.Offerings(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	out := make([]serviceResponse, 0, len(offerings))
	for _, o := range offerings {
		out = append(out, serviceResponse{
			ID:          o.ID.String(),
			Name:        o.Name,
			Description: o.Description,
			PriceCents:  o.PriceCents,
			Category:    o.Category,
			Active:      o.Active,
			CreatedAt:   o.CreatedAt,
		})
	}

	respond.JSON(w, http.StatusOK, out)
}

type createServiceBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Category    string `json:"category"`
}

func (h *Handler) createService(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	var body createServiceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "malformed request body"))
		return
	}

	if body.Name == "" {
		respond.Error(w, fault.New(fault.InvalidArgument, "missing required field 'name'"))
		return
	}

	o := &catalog.Offering{
		Name:        body.Name,
		Description: body.Description,
		PriceCents:  body.PriceCents,
		Category:    body.Category,
	}
	if err := h.svc.AddOffering(r.Context(), o); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
