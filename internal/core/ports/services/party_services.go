package services

import (
	"context"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/inkledger/inkledger_backend/internal/dto"
)

// PartySvcFacade manages the party registry and the recruitment links between
// parties. Parent-link validity (role compatibility, acyclicity, termination at
// a top-level role) is enforced here at registration time.
type PartySvcFacade interface {
	RegisterParty(ctx context.Context, req dto.RegisterPartyRequest, creatorID string) (*domain.Party, error)
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	// UpdatePartyDetails applies a partial update to a party's mutable fields.
	UpdatePartyDetails(ctx context.Context, partyID string, req dto.UpdatePartyRequest, actorID string) (*domain.Party, error)
	ListPartiesByRole(ctx context.Context, role domain.Role, limit, offset int) ([]domain.Party, error)
	DeactivateParty(ctx context.Context, partyID string, actorID string) error
	// Authenticate verifies credentials and returns the party on success.
	Authenticate(ctx context.Context, email, password string) (*domain.Party, error)
}
