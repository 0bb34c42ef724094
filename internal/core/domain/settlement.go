package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SuperWorkerRatePer500Words is the system-wide payment rate for super workers:
// £6.25 per started 500-word unit, independent of which pricing table priced the
// client side. It is not negotiable per agent or super agent.
var SuperWorkerRatePer500Words = decimal.RequireFromString("6.25")

// SuperWorkerEarnings computes the super worker payment for a word count.
func SuperWorkerEarnings(wordCount int) decimal.Decimal {
	units := int64(wordCount / 500)
	if wordCount%500 != 0 {
		units++
	}
	return SuperWorkerRatePer500Words.Mul(decimal.NewFromInt(units))
}

// RateSource records where an exchange rate came from.
type RateSource string

const (
	RateSourceExplicit   RateSource = "explicit"
	RateSourceConfigured RateSource = "configured"
	RateSourceCached     RateSource = "cached"
)

// ExchangeRateSnapshot is the GBP→INR rate a conversion actually used. A
// settlement stores its snapshot permanently; later rate changes never alter
// already-settled records. Stale marks a cached rate served past its freshness
// window, acceptable for display but never for settlement.
type ExchangeRateSnapshot struct {
	Rate   decimal.Decimal `json:"rate"`
	AsOf   time.Time       `json:"asOf"`
	Source RateSource      `json:"source"`
	Stale  bool            `json:"stale,omitempty"`
}

// SettlementKind distinguishes the original ledger entries from the compensating
// (negated) entries emitted on refund.
type SettlementKind string

const (
	SettlementOriginal     SettlementKind = "ORIGINAL"
	SettlementCompensating SettlementKind = "COMPENSATING"
)

// SettlementRecord is one party's ledger entry for one assignment. Records are
// append-only: a refund or an approved adjustment supersedes prior records with
// compensating entries, it never mutates or deletes them.
//
// Field use per payee role:
//   - super agent: EarningsGBP is the full assignment price, FeesPaidGBP the sum
//     paid out to the super worker and the agent, NetProfitGBP the remainder.
//   - agent: EarningsGBP and NetProfitGBP are the agent fee, FeesPaidGBP zero.
//   - super worker: EarningsGBP the fixed-rate payment (EarningsINR alongside),
//     NetProfitGBP equal to it, FeesPaidGBP zero.
//
// Workers never appear as payees; worker-facing views are assembled without
// monetary fields at the DTO layer.
type SettlementRecord struct {
	SettlementID string                `json:"settlementID"` // Primary Key (UUID)
	AssignmentID string                `json:"assignmentID"`
	PayeeRole    Role                  `json:"payeeRole"`
	PayeeID      string                `json:"payeeID"`
	EarningsGBP  decimal.Decimal       `json:"earningsGBP"`
	EarningsINR  *decimal.Decimal      `json:"earningsINR,omitempty"`
	FeesPaidGBP  decimal.Decimal       `json:"feesPaidGBP"`
	NetProfitGBP decimal.Decimal       `json:"netProfitGBP"`
	RateSnapshot *ExchangeRateSnapshot `json:"rateSnapshot,omitempty"`
	Kind         SettlementKind        `json:"kind"`
	ComputedAt   time.Time             `json:"computedAt"`
	AuditFields
}

// Negated returns a compensating copy of the record with all monetary amounts
// negated. The rate snapshot is carried over unchanged so the INR figure reverses
// at the historical rate, not the current one.
func (r SettlementRecord) Negated(settlementID string, at time.Time, actor string) SettlementRecord {
	out := r
	out.SettlementID = settlementID
	out.Kind = SettlementCompensating
	out.EarningsGBP = r.EarningsGBP.Neg()
	out.FeesPaidGBP = r.FeesPaidGBP.Neg()
	out.NetProfitGBP = r.NetProfitGBP.Neg()
	if r.EarningsINR != nil {
		inr := r.EarningsINR.Neg()
		out.EarningsINR = &inr
	}
	out.ComputedAt = at
	out.AuditFields = AuditFields{CreatedAt: at, CreatedBy: actor, LastUpdatedAt: at, LastUpdatedBy: actor}
	return out
}
