package domain

import (
	"fmt"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
)

// HierarchyChain is the resolved set of financial parties behind one assignment:
// always exactly one super agent (possibly via an agent) and exactly one super
// worker (possibly fronting a sub-worker).
type HierarchyChain struct {
	SuperAgentID  string  `json:"superAgentID"`
	AgentID       *string `json:"agentID,omitempty"`
	SuperWorkerID string  `json:"superWorkerID"`
	WorkerID      *string `json:"workerID,omitempty"`
}

// RoutedThroughAgent reports whether the client side of the chain passes through
// an agent, in which case the agent's fee participates in settlement.
func (c HierarchyChain) RoutedThroughAgent() bool {
	return c.AgentID != nil && *c.AgentID != ""
}

// Validate performs the defensive terminal checks: both roots must be present.
// Full acyclicity is enforced at registration time when parent links are created.
func (c HierarchyChain) Validate() error {
	if c.SuperAgentID == "" {
		return fmt.Errorf("%w: chain has no super agent", apperrors.ErrHierarchyUnassigned)
	}
	if c.SuperWorkerID == "" {
		return fmt.Errorf("%w: chain has no super worker", apperrors.ErrHierarchyUnassigned)
	}
	return nil
}
