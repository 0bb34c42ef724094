package repositories

import (
	"context"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

// PartyReader provides read access to parties.
type PartyReader interface {
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	FindPartyByEmail(ctx context.Context, email string) (*domain.Party, error)
	ListPartiesByRole(ctx context.Context, role domain.Role, limit int, offset int) ([]domain.Party, error)
	ListChildren(ctx context.Context, parentPartyID string) ([]domain.Party, error)
}

// PartyWriter provides write access to parties.
type PartyWriter interface {
	SaveParty(ctx context.Context, party domain.Party) error
	UpdateParty(ctx context.Context, party domain.Party) error
	MarkPartyDeleted(ctx context.Context, partyID string, deletedBy string) error
}

// PartyRepositoryFacade combines all party persistence operations.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}
