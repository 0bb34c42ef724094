package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/inkledger/inkledger_backend/internal/core/domain"
	portsrepo "github.com/inkledger/inkledger_backend/internal/core/ports/repositories"
	portssvc "github.com/inkledger/inkledger_backend/internal/core/ports/services"
	"github.com/inkledger/inkledger_backend/internal/dto"
	"github.com/inkledger/inkledger_backend/internal/middleware"
	"github.com/inkledger/inkledger_backend/internal/utils"
)

// maxHierarchyDepth bounds the defensive parent walk at registration. Real
// chains are at most two hops; anything deeper indicates corrupted links.
const maxHierarchyDepth = 8

// partyService manages the party registry and recruitment links.
type partyService struct {
	partyRepo portsrepo.PartyRepositoryFacade
	now       func() time.Time
}

// NewPartyService creates a new party service.
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade) portssvc.PartySvcFacade {
	return &partyService{
		partyRepo: partyRepo,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// validateParentLink enforces the recruitment rules when a party is registered:
// the parent's role must be allowed to recruit the child's role, and the
// parent's own chain must terminate at a top-level role within the depth bound.
// This is where acyclicity is guaranteed; resolvers downstream only walk one hop.
func (s *partyService) validateParentLink(ctx context.Context, childRole domain.Role, parentID string) error {
	parent, err := s.partyRepo.FindPartyByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: parent party %s not found", apperrors.ErrValidation, parentID)
		}
		return fmt.Errorf("failed to find parent party: %w", err)
	}

	if !parent.Role.CanParent(childRole) {
		return fmt.Errorf("%w: role %s cannot recruit role %s", apperrors.ErrValidation, parent.Role, childRole)
	}

	current := parent
	for depth := 0; current.Role.RequiresParent(); depth++ {
		if depth >= maxHierarchyDepth {
			return fmt.Errorf("%w: parent chain exceeds depth bound", apperrors.ErrHierarchyUnassigned)
		}
		if current.ParentPartyID == nil || *current.ParentPartyID == "" {
			return fmt.Errorf("%w: chain above %s does not reach a top-level role", apperrors.ErrHierarchyUnassigned, current.PartyID)
		}
		next, err := s.partyRepo.FindPartyByID(ctx, *current.ParentPartyID)
		if err != nil {
			return fmt.Errorf("failed to walk parent chain: %w", err)
		}
		current = next
	}
	return nil
}

// RegisterParty registers a party into the hierarchy.
func (s *partyService) RegisterParty(ctx context.Context, req dto.RegisterPartyRequest, creatorID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	if req.Role.RequiresParent() {
		if req.ParentPartyID == nil || *req.ParentPartyID == "" {
			return nil, fmt.Errorf("%w: role %s requires a recruitment parent", apperrors.ErrValidation, req.Role)
		}
		if err := s.validateParentLink(ctx, req.Role, *req.ParentPartyID); err != nil {
			return nil, err
		}
	} else if req.ParentPartyID != nil {
		return nil, fmt.Errorf("%w: role %s cannot have a parent", apperrors.ErrValidation, req.Role)
	}

	if existing, err := s.partyRepo.FindPartyByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	party := domain.Party{
		PartyID:       uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  passwordHash,
		Role:          req.Role,
		ParentPartyID: req.ParentPartyID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		logger.Error("Failed to save party", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save party: %w", err)
	}

	logger.Info("Party registered",
		slog.String("party_id", party.PartyID), slog.String("role", string(party.Role)))
	return &party, nil
}

// GetPartyByID retrieves a party.
func (s *partyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	return party, nil
}

// UpdatePartyDetails applies a partial update to a party's mutable fields. Role
// and recruitment link are immutable once registered.
func (s *partyService) UpdatePartyDetails(ctx context.Context, partyID string, req dto.UpdatePartyRequest, actorID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		party.Name = *req.Name
	}
	party.LastUpdatedAt = s.now()
	party.LastUpdatedBy = actorID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		logger.Error("Failed to update party", slog.String("party_id", partyID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update party: %w", err)
	}

	logger.Info("Party updated", slog.String("party_id", partyID))
	return party, nil
}

// ListPartiesByRole lists parties of one role.
func (s *partyService) ListPartiesByRole(ctx context.Context, role domain.Role, limit, offset int) ([]domain.Party, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	if limit <= 0 {
		limit = 20
	}
	parties, err := s.partyRepo.ListPartiesByRole(ctx, role, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	return parties, nil
}

// DeactivateParty soft deletes a party. Parties with active recruits cannot be
// removed, or their children's chains would dangle.
func (s *partyService) DeactivateParty(ctx context.Context, partyID string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	children, err := s.partyRepo.ListChildren(ctx, partyID)
	if err != nil {
		return fmt.Errorf("failed to list recruits: %w", err)
	}
	if len(children) > 0 {
		return fmt.Errorf("%w: party %s still has %d active recruits", apperrors.ErrConflict, partyID, len(children))
	}

	if err := s.partyRepo.MarkPartyDeleted(ctx, partyID, actorID); err != nil {
		return fmt.Errorf("failed to deactivate party: %w", err)
	}
	logger.Info("Party deactivated", slog.String("party_id", partyID))
	return nil
}

// Authenticate verifies a party's credentials.
func (s *partyService) Authenticate(ctx context.Context, email, password string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to find party by email: %w", err)
	}
	if party.DeletedAt != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	if !utils.CheckPasswordHash(password, party.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}
	return party, nil
}
