package request

import (
	"time"

	"github.com/iconnecthq/iconnect/internal/request"
)

type requestResponse struct {
	ID                string     `json:"id"`
	CustomerName      string     `json:"customerName"`
	CustomerEmail     string     `json:"customerEmail"`
	CustomerPhone     string     `json:"customerPhone"`
	ServiceName       string     `json:"serviceName"`
	ProviderName      string     `json:"providerName"`
	ScheduledAt       time.Time  `json:"scheduledAt"`
	Status            string     `json:"status"`
	ProviderResponses int        `json:"providerResponses"`
	Review            string     `json:"review,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
}

func toResponse(req *request.Request) requestResponse {
	return requestResponse{
		ID:                req.ID.String(),
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		CustomerPhone:     req.CustomerPhone,
		ServiceName:       req.ServiceName,
		ProviderName:      req.ProviderName,
		ScheduledAt:       req.ScheduledAt,
		Status:            string(req.Status),
		ProviderResponses: req.ProviderResponses,
		Review:            req.Review,
		CreatedAt:         req.CreatedAt,
		UpdatedAt:         req.UpdatedAt,
	}
}

func toResponseList(reqs []*request.Request) []requestResponse {
	out := make([]requestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, toResponse(req))
	}

	return out
}
