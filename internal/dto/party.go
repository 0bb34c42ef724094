package dto

import (
	"time"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

// RegisterPartyRequest defines the payload for registering a party into the
// recruitment hierarchy. ParentPartyID is required for agents, clients and
// workers; top-level roles must omit it.
type RegisterPartyRequest struct {
	Name          string      `json:"name" binding:"required"`
	Email         string      `json:"email" binding:"required,email"`
	Password      string      `json:"password" binding:"required,min=8"`
	Role          domain.Role `json:"role" binding:"required"`
	ParentPartyID *string     `json:"parentPartyID,omitempty"`
}

// UpdatePartyRequest defines the payload for updating a party's details. Role
// and parent link are fixed at registration; only the display name is mutable.
type UpdatePartyRequest struct {
	Name *string `json:"name"`
}

// PartyResponse defines the structure for API responses containing party details.
type PartyResponse struct {
	PartyID       string      `json:"partyID"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Role          domain.Role `json:"role"`
	ParentPartyID *string     `json:"parentPartyID,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// ToPartyResponse converts a domain.Party to a PartyResponse DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:       p.PartyID,
		Name:          p.Name,
		Email:         p.Email,
		Role:          p.Role,
		ParentPartyID: p.ParentPartyID,
		CreatedAt:     p.CreatedAt,
	}
}

// ToPartyResponses converts a slice of domain parties to response DTOs.
func ToPartyResponses(parties []domain.Party) []PartyResponse {
	responses := make([]PartyResponse, len(parties))
	for i := range parties {
		responses[i] = ToPartyResponse(&parties[i])
	}
	return responses
}
