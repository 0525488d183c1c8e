package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/account"
	"github.com/iconnecthq/iconnect/internal/auth"
	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/http/respond"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/me", h.me)
}

type accountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Credits   int64     `json:"credits"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(acct *account.Account) accountResponse {
	return accountResponse{
		ID:        acct.ID.String(),
		Email:     acct.Email,
		Name:      acct.Name,
		Role:      acct.Role,
		Credits:   acct.Credits,
		Admin:     acct.Admin,
		CreatedAt: acct.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.RequireAdmin(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}

	accts, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	out := make([]accountResponse, 0, len(accts))
	for _, acct := range accts {
		out = append(out, toResponse(acct))
	}

	respond.JSON(w, http.StatusOK, out)
}

// me returns the caller's own account, credits included.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	id, err := auth.RequireUser(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	uid, err := uuid.Parse(id.UID)
	if err != nil {
		respond.Error(w, fault.New(fault.Unauthenticated, "invalid token subject"))
		return
	}

	acct, err := h.svc.Get(r.Context(), uid)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(acct))
}
