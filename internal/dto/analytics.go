package dto

import (
	"time"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AnalyticsWindow selects the aggregation time range.
type AnalyticsWindow string

const (
	WindowWeek   AnalyticsWindow = "week"
	WindowMonth  AnalyticsWindow = "month"
	WindowCustom AnalyticsWindow = "custom"
)

// AnalyticsQuery holds the parsed analytics query parameters. From and To are
// only consulted for the custom window.
type AnalyticsQuery struct {
	Window AnalyticsWindow
	From   time.Time
	To     time.Time
}

// MonthlyTotalsResponse is one month's totals in an analytics response.
type MonthlyTotalsResponse struct {
	Month            string          `json:"month"` // YYYY-MM
	TotalRevenueGBP  decimal.Decimal `json:"totalRevenueGBP"`
	TotalFeesPaidGBP decimal.Decimal `json:"totalFeesPaidGBP"`
	TotalProfitGBP   decimal.Decimal `json:"totalProfitGBP"`
}

// AnalyticsReportResponse is the windowed rollup for one financial party.
type AnalyticsReportResponse struct {
	PayeeID          string                  `json:"payeeID"`
	PayeeRole        domain.Role             `json:"payeeRole"`
	From             time.Time               `json:"from"`
	To               time.Time               `json:"to"`
	TotalRevenueGBP  decimal.Decimal         `json:"totalRevenueGBP"`
	TotalFeesPaidGBP decimal.Decimal         `json:"totalFeesPaidGBP"`
	TotalProfitGBP   decimal.Decimal         `json:"totalProfitGBP"`
	Monthly          []MonthlyTotalsResponse `json:"monthly"`
}

// ToAnalyticsReportResponse converts a domain report.
func ToAnalyticsReportResponse(r *domain.AnalyticsReport) AnalyticsReportResponse {
	monthly := make([]MonthlyTotalsResponse, len(r.Monthly))
	for i, m := range r.Monthly {
		monthly[i] = MonthlyTotalsResponse{
			Month:            m.Month.Format("2006-01"),
			TotalRevenueGBP:  m.TotalRevenueGBP,
			TotalFeesPaidGBP: m.TotalFeesPaidGBP,
			TotalProfitGBP:   m.TotalProfitGBP,
		}
	}
	return AnalyticsReportResponse{
		PayeeID:          r.PayeeID,
		PayeeRole:        r.PayeeRole,
		From:             r.From,
		To:               r.To,
		TotalRevenueGBP:  r.Summary.TotalRevenueGBP,
		TotalFeesPaidGBP: r.Summary.TotalFeesPaidGBP,
		TotalProfitGBP:   r.Summary.TotalProfitGBP,
		Monthly:          monthly,
	}
}
