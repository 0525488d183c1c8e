package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/iconnecthq/iconnect/internal/fault"
	"github.com/iconnecthq/iconnect/internal/http/respond"
	"github.com/iconnecthq/iconnect/internal/ledger"
)

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/approve-request", h.approveRequest)
	r.Post("/reject-request", h.rejectRequest)
	r.Post("/adjust-credits", h.adjustCredits)
	r.Post("/purchase-lead", h.purchaseLead)
	r.Get("/entries", h.listEntries)
}

type resultResponse struct {
	Result string `json:"result"`
}

type decideRequestBody struct {
	RequestID string `json:"requestId"`
}

func (h *Handler) approveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.ApproveRequest)
}

func (h *Handler) rejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.svc.RejectRequest)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (string, error)) {
	var body decideRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "malformed request body"))
		return
	}

	id, err := parseID(body.RequestID, "requestId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	result, err := op(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, resultResponse{Result: result})
}

type adjustCreditsBody struct {
	UserID string `json:"userId"`
	Amount *int64 `json:"amount"`
}

func (h *Handler) adjustCredits(w http.ResponseWriter, r *http.Request) {
	var body adjustCreditsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "'amount' must be a number"))
		return
	}

	id, err := parseID(body.UserID, "userId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	if body.Amount == nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "missing required field 'amount'"))
		return
	}

	result, err := h.svc.AdjustCredits(r.Context(), id, *body.Amount)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, resultResponse{Result: result})
}

type purchaseLeadBody struct {
	LeadID string `json:"leadId"`
}

func (h *Handler) purchaseLead(w http.ResponseWriter, r *http.Request) {
	var body purchaseLeadBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.Error(w, fault.New(fault.InvalidArgument, "malformed request body"))
		return
	}

	id, err := parseID(body.LeadID, "leadId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	result, err := h.svc.PurchaseLead(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, resultResponse{Result: result})
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	filter := ledger.EntryFilter{Limit: 100}

	if a := r.URL.Query().Get("action"); a != "" {
		filter.Action = new(ledger.Action(a))
	}

	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			respond.Error(w, fault.New(fault.InvalidArgument, "'limit' must be a positive integer"))
			return
		}

		filter.Limit = n
	}

	entries, err := h.svc.ListEntries(r.Context(), filter)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toEntryList(entries))
}

func parseID(raw, field string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, fault.New(fault.InvalidArgument, "missing required field '%s'", field)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fault.New(fault.InvalidArgument, "field '%s' is not a valid id", field)
	}

	return id, nil
}
