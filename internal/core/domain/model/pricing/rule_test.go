package pricing_test

import (
	"testing"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/pricing"
	"roodi/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func money(t *testing.T, value string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(value)
	require.NoError(t, err)
	return m
}

func validRuleParams(t *testing.T) pricing.RuleVersionParams {
	t.Helper()
	return pricing.RuleVersionParams{
		ID:            kernel.NewUUID(),
		VersionCode:   "2025-06-a",
		EffectiveFrom: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		MinimumCharge: money(t, "8.00"),
		MaxDistanceKm: 15,
		ZoneRules: []pricing.ZoneRule{
			{Zone: 1, MinKm: 0, MaxKm: 3, BaseValue: money(t, "7.00")},
			{Zone: 2, MinKm: 3, MaxKm: 8, BaseValue: money(t, "10.00")},
			{Zone: 3, MinKm: 8, MaxKm: 15, BaseValue: money(t, "14.00")},
		},
		UrgencyAddons: map[kernel.Urgency]kernel.Money{
			kernel.UrgencyStandard:  money(t, "0.00"),
			kernel.UrgencyUrgent:    money(t, "3.00"),
			kernel.UrgencyScheduled: money(t, "1.00"),
		},
		ConditionalAddons: map[pricing.Condition]kernel.Money{
			pricing.ConditionSunday:  money(t, "2.00"),
			pricing.ConditionHoliday: money(t, "2.50"),
			pricing.ConditionRain:    money(t, "2.00"),
			pricing.ConditionPeak:    money(t, "1.50"),
		},
		PeakWindows: []pricing.PeakWindow{
			{StartHour: 11, EndHour: 14},
			{StartHour: 18, EndHour: 21},
		},
	}
}

func TestNewRuleVersion(t *testing.T) {
	t.Run("should create active version", func(t *testing.T) {
		rule, err := pricing.NewRuleVersion(validRuleParams(t))

		require.NoError(t, err)
		require.NoError(t, rule.Validate())
		assert.True(t, rule.IsActive())
		assert.Nil(t, rule.EffectiveTo())
		assert.Len(t, rule.ZoneRules(), 3)
	})

	t.Run("should reject overlapping zone ranges", func(t *testing.T) {
		params := validRuleParams(t)
		params.ZoneRules[1].MinKm = 2.5

		_, err := pricing.NewRuleVersion(params)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject duplicated zone numbers", func(t *testing.T) {
		params := validRuleParams(t)
		params.ZoneRules[2].Zone = 2

		_, err := pricing.NewRuleVersion(params)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should require an addon row for every urgency tier", func(t *testing.T) {
		params := validRuleParams(t)
		delete(params.UrgencyAddons, kernel.UrgencyScheduled)

		_, err := pricing.NewRuleVersion(params)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject empty zone rules and version code", func(t *testing.T) {
		params := validRuleParams(t)
		params.ZoneRules = nil

		_, err := pricing.NewRuleVersion(params)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		params = validRuleParams(t)
		params.VersionCode = ""

		_, err = pricing.NewRuleVersion(params)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject malformed peak windows", func(t *testing.T) {
		params := validRuleParams(t)
		params.PeakWindows = []pricing.PeakWindow{{StartHour: 14, EndHour: 11}}

		_, err := pricing.NewRuleVersion(params)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown conditional addon keys", func(t *testing.T) {
		params := validRuleParams(t)
		params.ConditionalAddons[pricing.Condition("fog")] = money(t, "1.00")

		_, err := pricing.NewRuleVersion(params)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRuleVersion_ZoneForDistance(t *testing.T) {
	rule, err := pricing.NewRuleVersion(validRuleParams(t))
	require.NoError(t, err)

	t.Run("should map every covered distance to exactly one zone", func(t *testing.T) {
		tests := []struct {
			distanceM int
			zone      int
		}{
			{1, 1},
			{2999, 1},
			{3000, 1}, // boundary belongs to the lower zone first
			{3001, 2},
			{7999, 2},
			{8500, 3},
			{15000, 3},
		}
		for _, tt := range tests {
			zone, err := rule.ZoneForDistance(tt.distanceM)

			require.NoError(t, err, "distanceM=%d", tt.distanceM)
			assert.Equal(t, tt.zone, zone.Zone, "distanceM=%d", tt.distanceM)
		}
	})

	t.Run("should reject distance beyond coverage", func(t *testing.T) {
		_, err := rule.ZoneForDistance(15001)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestRuleVersion_Addons(t *testing.T) {
	rule, err := pricing.NewRuleVersion(validRuleParams(t))
	require.NoError(t, err)

	t.Run("should return the configured urgency addon", func(t *testing.T) {
		assert.True(t, rule.UrgencyAddon(kernel.UrgencyUrgent).Equals(money(t, "3.00")))
		assert.True(t, rule.UrgencyAddon(kernel.UrgencyStandard).IsZero())
	})

	t.Run("should return zero for an unconfigured condition", func(t *testing.T) {
		params := validRuleParams(t)
		delete(params.ConditionalAddons, pricing.ConditionRain)
		sparse, err := pricing.NewRuleVersion(params)
		require.NoError(t, err)

		assert.True(t, sparse.ConditionalAddon(pricing.ConditionRain).IsZero())
	})
}

func TestRuleVersion_IsPeakHour(t *testing.T) {
	rule, err := pricing.NewRuleVersion(validRuleParams(t))
	require.NoError(t, err)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		hour int
		peak bool
	}{
		{10, false},
		{11, true},
		{13, true},
		{14, false}, // end hour is exclusive
		{18, true},
		{20, true},
		{21, false},
	}
	for _, tt := range tests {
		at := day.Add(time.Duration(tt.hour) * time.Hour)
		assert.Equal(t, tt.peak, rule.IsPeakHour(at), "hour=%d", tt.hour)
	}
}

func TestRuleVersion_Deactivate(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should close the effective window", func(t *testing.T) {
		rule, err := pricing.NewRuleVersion(validRuleParams(t))
		require.NoError(t, err)

		require.NoError(t, rule.Deactivate(now))

		assert.False(t, rule.IsActive())
		require.NotNil(t, rule.EffectiveTo())
		assert.Equal(t, now, *rule.EffectiveTo())
	})

	t.Run("should reject double deactivation", func(t *testing.T) {
		rule, err := pricing.NewRuleVersion(validRuleParams(t))
		require.NoError(t, err)
		require.NoError(t, rule.Deactivate(now))

		require.ErrorIs(t, rule.Deactivate(now), errs.ErrConflict)
	})
}

func TestRestoreRuleVersion(t *testing.T) {
	t.Run("should restore historical inactive version", func(t *testing.T) {
		effectiveTo := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

		rule, err := pricing.RestoreRuleVersion(validRuleParams(t), false, &effectiveTo)

		require.NoError(t, err)
		assert.False(t, rule.IsActive())
		require.NotNil(t, rule.EffectiveTo())
	})
}
