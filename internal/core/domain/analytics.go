package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementTotals is the summed ledger view for one payee over a time window.
// Compensating records participate as ordinary negative entries, so a refund
// reduces the window it was recorded in, not the original settlement's window.
type SettlementTotals struct {
	TotalRevenueGBP  decimal.Decimal `json:"totalRevenueGBP"`
	TotalFeesPaidGBP decimal.Decimal `json:"totalFeesPaidGBP"`
	TotalProfitGBP   decimal.Decimal `json:"totalProfitGBP"`
}

// MonthlyTotals is one month's slice of a payee's ledger.
type MonthlyTotals struct {
	Month time.Time `json:"month"` // first day of the month, UTC
	SettlementTotals
}

// AnalyticsReport is the windowed rollup returned to a financial party.
type AnalyticsReport struct {
	PayeeID   string           `json:"payeeID"`
	PayeeRole Role             `json:"payeeRole"`
	From      time.Time        `json:"from"`
	To        time.Time        `json:"to"`
	Summary   SettlementTotals `json:"summary"`
	Monthly   []MonthlyTotals  `json:"monthly"`
}
