package dto

import (
	"time"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementRecordResponse is one ledger entry in an API response.
type SettlementRecordResponse struct {
	SettlementID string                `json:"settlementID"`
	AssignmentID string                `json:"assignmentID"`
	PayeeRole    domain.Role           `json:"payeeRole"`
	PayeeID      string                `json:"payeeID"`
	EarningsGBP  decimal.Decimal       `json:"earningsGBP"`
	EarningsINR  *decimal.Decimal      `json:"earningsINR,omitempty"`
	FeesPaidGBP  decimal.Decimal       `json:"feesPaidGBP"`
	NetProfitGBP decimal.Decimal       `json:"netProfitGBP"`
	Rate         *decimal.Decimal      `json:"rate,omitempty"`
	RateSource   *domain.RateSource    `json:"rateSource,omitempty"`
	Kind         domain.SettlementKind `json:"kind"`
	ComputedAt   time.Time             `json:"computedAt"`
}

// ToSettlementRecordResponse converts a domain settlement record.
func ToSettlementRecordResponse(r *domain.SettlementRecord) SettlementRecordResponse {
	resp := SettlementRecordResponse{
		SettlementID: r.SettlementID,
		AssignmentID: r.AssignmentID,
		PayeeRole:    r.PayeeRole,
		PayeeID:      r.PayeeID,
		EarningsGBP:  r.EarningsGBP,
		EarningsINR:  r.EarningsINR,
		FeesPaidGBP:  r.FeesPaidGBP,
		NetProfitGBP: r.NetProfitGBP,
		Kind:         r.Kind,
		ComputedAt:   r.ComputedAt,
	}
	if r.RateSnapshot != nil {
		rate := r.RateSnapshot.Rate
		source := r.RateSnapshot.Source
		resp.Rate = &rate
		resp.RateSource = &source
	}
	return resp
}

// ToSettlementRecordResponses converts a slice of settlement records.
func ToSettlementRecordResponses(records []domain.SettlementRecord) []SettlementRecordResponse {
	responses := make([]SettlementRecordResponse, len(records))
	for i := range records {
		responses[i] = ToSettlementRecordResponse(&records[i])
	}
	return responses
}
