package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkledger/inkledger_backend/internal/core/domain"
)

func TestDayGap(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, domain.DayGap(base, base))
	assert.Equal(t, 0, domain.DayGap(base, base.Add(-time.Hour)))
	// Partial days round up.
	assert.Equal(t, 1, domain.DayGap(base, base.Add(time.Hour)))
	assert.Equal(t, 1, domain.DayGap(base, base.Add(24*time.Hour)))
	assert.Equal(t, 2, domain.DayGap(base, base.Add(25*time.Hour)))
	assert.Equal(t, 7, domain.DayGap(base, base.Add(7*24*time.Hour)))
}

func TestDefaultUrgencyPolicySelect(t *testing.T) {
	policy := domain.DefaultUrgencyPolicy()

	cases := []struct {
		gap       int
		wantLevel domain.UrgencyLevel
		wantGBP   string
	}{
		{1, domain.UrgencyRush, "30"},
		{2, domain.UrgencyUrgent, "20"},
		{3, domain.UrgencyUrgent, "20"},
		{4, domain.UrgencyModerate, "10"},
		{7, domain.UrgencyModerate, "10"},
		{8, domain.UrgencyNormal, "0"},
		{365, domain.UrgencyNormal, "0"},
	}
	for _, tc := range cases {
		rule, err := policy.Select(tc.gap)
		require.NoError(t, err, "gap=%d", tc.gap)
		assert.Equal(t, tc.wantLevel, rule.Level, "gap=%d", tc.gap)
		assert.True(t, gbp(tc.wantGBP).Equal(rule.Charge(gbp("100"))), "gap=%d", tc.gap)
	}
}

func TestUrgencyRulePercentCharge(t *testing.T) {
	rule := domain.UrgencyRule{
		MaxDaysFromRequest: 1,
		SurchargePercent:   gbp("25"),
		Level:              domain.UrgencyRush,
	}
	// Percentage applies to the pre-urgency subtotal, base plus agent fee.
	charge := rule.Charge(gbp("14.375"))
	assert.True(t, gbp("3.59375").Equal(charge), "got %s", charge)
}

func TestUrgencyPolicyNoCatchAll(t *testing.T) {
	policy := domain.UrgencyPolicy{
		{MaxDaysFromRequest: 3, SurchargeGBP: gbp("20"), Level: domain.UrgencyUrgent},
	}
	_, err := policy.Select(10)
	assert.Error(t, err)
}

func gbpDec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestUrgencyFlatChargeIgnoresSubtotal(t *testing.T) {
	rule := domain.UrgencyRule{MaxDaysFromRequest: 1, SurchargeGBP: gbpDec(30), Level: domain.UrgencyRush}
	assert.True(t, rule.Charge(gbpDec(45)).Equal(rule.Charge(gbpDec(9500))))
}
