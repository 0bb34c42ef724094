package domain

import (
	"fmt"
	"time"

	"github.com/inkledger/inkledger_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// UrgencyLevel labels the deadline pressure of a quote. The label is derived from
// the same day-gap thresholds that select the surcharge, so a level can never
// disagree with the charge actually applied.
type UrgencyLevel string

const (
	UrgencyRush     UrgencyLevel = "rush"
	UrgencyUrgent   UrgencyLevel = "urgent"
	UrgencyModerate UrgencyLevel = "moderate"
	UrgencyNormal   UrgencyLevel = "normal"
)

// UrgencyRule maps a maximum day gap to a surcharge. Exactly one of SurchargeGBP
// or SurchargePercent is non-zero; a percentage surcharge applies to the
// pre-urgency subtotal (base price plus agent fee), never compounded with other
// surcharges.
type UrgencyRule struct {
	MaxDaysFromRequest int             `json:"maxDaysFromRequest"` // 0 means no upper bound
	SurchargeGBP       decimal.Decimal `json:"surchargeGBP"`
	SurchargePercent   decimal.Decimal `json:"surchargePercent"`
	Level              UrgencyLevel    `json:"level"`
}

// UrgencyPolicy is an ordered rule list, ascending by MaxDaysFromRequest with the
// catch-all rule (MaxDaysFromRequest == 0) last.
type UrgencyPolicy []UrgencyRule

// Select returns the rule with the smallest MaxDaysFromRequest that is >= dayGap.
func (p UrgencyPolicy) Select(dayGap int) (UrgencyRule, error) {
	for _, rule := range p {
		if rule.MaxDaysFromRequest == 0 || dayGap <= rule.MaxDaysFromRequest {
			return rule, nil
		}
	}
	return UrgencyRule{}, fmt.Errorf("%w: no urgency rule for a %d day gap", apperrors.ErrValidation, dayGap)
}

// Charge computes the rule's surcharge over the pre-urgency subtotal.
func (r UrgencyRule) Charge(subtotal decimal.Decimal) decimal.Decimal {
	if !r.SurchargePercent.IsZero() {
		return subtotal.Mul(r.SurchargePercent).Div(decimal.NewFromInt(100))
	}
	return r.SurchargeGBP
}

// DayGap returns the number of whole days between the request and the deadline,
// rounding any partial day up.
func DayGap(requestDate, deadline time.Time) int {
	diff := deadline.Sub(requestDate)
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// DefaultUrgencyPolicy returns the documented system-wide urgency rule set:
// flat surcharges of £30 within a day, £20 within three days, £10 within a week,
// nothing beyond that.
func DefaultUrgencyPolicy() UrgencyPolicy {
	gbp := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return UrgencyPolicy{
		{MaxDaysFromRequest: 1, SurchargeGBP: gbp("30"), Level: UrgencyRush},
		{MaxDaysFromRequest: 3, SurchargeGBP: gbp("20"), Level: UrgencyUrgent},
		{MaxDaysFromRequest: 7, SurchargeGBP: gbp("10"), Level: UrgencyModerate},
		{MaxDaysFromRequest: 0, SurchargeGBP: decimal.Zero, Level: UrgencyNormal},
	}
}
