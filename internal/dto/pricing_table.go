package dto

import (
	"time"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertAgentRateTableRequest creates or replaces an agent's custom pricing table.
type UpsertAgentRateTableRequest struct {
	MinWords            int             `json:"minWords" binding:"gte=0"`
	MaxWords            int             `json:"maxWords" binding:"gte=0"`
	BaseRatePer500Words decimal.Decimal `json:"baseRatePer500Words" binding:"required"`
	AgentFeePercent     decimal.Decimal `json:"agentFeePercent"`
}

// AgentRateTableResponse mirrors an agent's custom pricing table.
type AgentRateTableResponse struct {
	AgentID             string          `json:"agentID"`
	MinWords            int             `json:"minWords"`
	MaxWords            int             `json:"maxWords"`
	BaseRatePer500Words decimal.Decimal `json:"baseRatePer500Words"`
	AgentFeePercent     decimal.Decimal `json:"agentFeePercent"`
	LastUpdatedAt       time.Time       `json:"lastUpdatedAt"`
}

// ToAgentRateTableResponse converts a domain agent rate table.
func ToAgentRateTableResponse(t *domain.AgentRateTable) AgentRateTableResponse {
	return AgentRateTableResponse{
		AgentID:             t.AgentID,
		MinWords:            t.MinWords,
		MaxWords:            t.MaxWords,
		BaseRatePer500Words: t.BaseRatePer500Words,
		AgentFeePercent:     t.AgentFeePercent,
		LastUpdatedAt:       t.LastUpdatedAt,
	}
}
