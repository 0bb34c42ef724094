package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

func TestAssignmentStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to domain.AssignmentStatus }{
		{domain.StatusRequested, domain.StatusInProgress},
		{domain.StatusRequested, domain.StatusCancelled},
		{domain.StatusInProgress, domain.StatusCompleted},
		{domain.StatusInProgress, domain.StatusCancelled},
		{domain.StatusCompleted, domain.StatusPaid},
		{domain.StatusCompleted, domain.StatusCancelled},
		{domain.StatusPaid, domain.StatusRefunded},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	forbidden := []struct{ from, to domain.AssignmentStatus }{
		{domain.StatusRequested, domain.StatusPaid},
		{domain.StatusRequested, domain.StatusRefunded},
		{domain.StatusInProgress, domain.StatusPaid},
		{domain.StatusCompleted, domain.StatusRefunded},
		{domain.StatusPaid, domain.StatusCancelled},
		{domain.StatusCancelled, domain.StatusInProgress},
		{domain.StatusRefunded, domain.StatusPaid},
	}
	for _, tc := range forbidden {
		assert.False(t, tc.from.CanTransitionTo(tc.to), "%s -> %s should be forbidden", tc.from, tc.to)
	}
}

func TestAssignmentStatusFlags(t *testing.T) {
	assert.True(t, domain.StatusPaid.Payable())
	assert.False(t, domain.StatusCompleted.Payable())

	assert.True(t, domain.StatusPaid.Terminal())
	assert.True(t, domain.StatusCancelled.Terminal())
	assert.True(t, domain.StatusRefunded.Terminal())
	assert.False(t, domain.StatusRequested.Terminal())
	assert.False(t, domain.StatusInProgress.Terminal())
}

func TestHierarchyChainValidate(t *testing.T) {
	agentID := "agent-1"
	full := domain.HierarchyChain{SuperAgentID: "sa-1", AgentID: &agentID, SuperWorkerID: "sw-1"}
	assert.NoError(t, full.Validate())
	assert.True(t, full.RoutedThroughAgent())

	direct := domain.HierarchyChain{SuperAgentID: "sa-1", SuperWorkerID: "sw-1"}
	assert.NoError(t, direct.Validate())
	assert.False(t, direct.RoutedThroughAgent())

	assert.Error(t, domain.HierarchyChain{SuperWorkerID: "sw-1"}.Validate())
	assert.Error(t, domain.HierarchyChain{SuperAgentID: "sa-1"}.Validate())
}

func TestRoleHierarchyRules(t *testing.T) {
	assert.True(t, domain.RoleSuperAgent.CanParent(domain.RoleAgent))
	assert.True(t, domain.RoleSuperAgent.CanParent(domain.RoleClient))
	assert.True(t, domain.RoleAgent.CanParent(domain.RoleClient))
	assert.True(t, domain.RoleSuperWorker.CanParent(domain.RoleWorker))

	assert.False(t, domain.RoleAgent.CanParent(domain.RoleAgent))
	assert.False(t, domain.RoleClient.CanParent(domain.RoleClient))
	assert.False(t, domain.RoleSuperAgent.CanParent(domain.RoleWorker))
	assert.False(t, domain.RoleWorker.CanParent(domain.RoleClient))

	assert.False(t, domain.RoleSuperAgent.RequiresParent())
	assert.False(t, domain.RoleSuperWorker.RequiresParent())
	assert.True(t, domain.RoleAgent.RequiresParent())
	assert.True(t, domain.RoleClient.RequiresParent())
	assert.True(t, domain.RoleWorker.RequiresParent())

	assert.False(t, domain.RoleWorker.SeesFinancials())
	assert.True(t, domain.RoleSuperWorker.SeesFinancials())
}
