package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roodi/internal/core/application/usecases/commands"
	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/pricing"
	"roodi/internal/pkg/errs"
)

func ruleParams(t *testing.T, versionCode string, windows []pricing.PeakWindow) pricing.RuleVersionParams {
	t.Helper()
	return pricing.RuleVersionParams{
		ID:            kernel.NewUUID(),
		VersionCode:   versionCode,
		EffectiveFrom: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		MinimumCharge: mustMoney(t, "8.00"),
		MaxDistanceKm: 15,
		ZoneRules: []pricing.ZoneRule{
			{Zone: 1, MinKm: 0, MaxKm: 3, BaseValue: mustMoney(t, "10.00")},
			{Zone: 2, MinKm: 3, MaxKm: 15, BaseValue: mustMoney(t, "14.00")},
		},
		UrgencyAddons: map[kernel.Urgency]kernel.Money{
			kernel.UrgencyStandard:  kernel.ZeroMoney(),
			kernel.UrgencyUrgent:    mustMoney(t, "3.00"),
			kernel.UrgencyScheduled: kernel.ZeroMoney(),
		},
		ConditionalAddons: map[pricing.Condition]kernel.Money{
			pricing.ConditionRain: mustMoney(t, "2.00"),
		},
		PeakWindows: windows,
	}
}

func TestReplacePricingRulesCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("should deactivate the previous version and install the new one", func(t *testing.T) {
		uow := newFakeUoW()

		previous, err := pricing.NewRuleVersion(
			ruleParams(t, "2025-02", []pricing.PeakWindow{{StartHour: 11, EndHour: 14}}))
		require.NoError(t, err)

		uow.prices.On("GetActive", ctx, now).Return(previous, nil)
		uow.prices.On("Update", ctx, previous).Return(nil)
		uow.prices.On("Add", ctx, mock.AnythingOfType("*pricing.RuleVersion")).Return(nil)

		handler := commands.NewReplacePricingRulesCommandHandler(pricingUoWFactory{uow: uow})

		cmd, err := commands.NewReplacePricingRulesCommand(
			ruleParams(t, "2025-03", []pricing.PeakWindow{{StartHour: 18, EndHour: 21}}), now)
		require.NoError(t, err)

		next, err := handler.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.True(t, uow.committed)
		assert.True(t, next.IsActive())
		assert.Equal(t, "2025-03", next.VersionCode())
		assert.Equal(t, []pricing.PeakWindow{{StartHour: 18, EndHour: 21}}, next.PeakWindows())
		assert.False(t, previous.IsActive())
		require.NotNil(t, previous.EffectiveTo())
		assert.Equal(t, now, *previous.EffectiveTo())
		uow.prices.AssertExpectations(t)
	})

	t.Run("should copy peak windows forward when the payload omits them", func(t *testing.T) {
		uow := newFakeUoW()

		previous, err := pricing.NewRuleVersion(
			ruleParams(t, "2025-02", []pricing.PeakWindow{{StartHour: 11, EndHour: 14}}))
		require.NoError(t, err)

		uow.prices.On("GetActive", ctx, now).Return(previous, nil)
		uow.prices.On("Update", ctx, previous).Return(nil)
		uow.prices.On("Add", ctx, mock.AnythingOfType("*pricing.RuleVersion")).Return(nil)

		handler := commands.NewReplacePricingRulesCommandHandler(pricingUoWFactory{uow: uow})

		cmd, err := commands.NewReplacePricingRulesCommand(ruleParams(t, "2025-03", nil), now)
		require.NoError(t, err)

		next, err := handler.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.Equal(t, []pricing.PeakWindow{{StartHour: 11, EndHour: 14}}, next.PeakWindows())
	})

	t.Run("should install the first version when none is active", func(t *testing.T) {
		uow := newFakeUoW()

		uow.prices.On("GetActive", ctx, now).
			Return(nil, errs.NewObjectNotFoundError("pricing rule version", now))
		uow.prices.On("Add", ctx, mock.AnythingOfType("*pricing.RuleVersion")).Return(nil)

		handler := commands.NewReplacePricingRulesCommandHandler(pricingUoWFactory{uow: uow})

		cmd, err := commands.NewReplacePricingRulesCommand(ruleParams(t, "2025-03", nil), now)
		require.NoError(t, err)

		next, err := handler.Handle(ctx, cmd)
		require.NoError(t, err)

		assert.True(t, uow.committed)
		assert.True(t, next.IsActive())
		assert.Empty(t, next.PeakWindows())
		uow.prices.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("should reject an invalid payload without touching the previous version", func(t *testing.T) {
		uow := newFakeUoW()

		previous, err := pricing.NewRuleVersion(ruleParams(t, "2025-02", nil))
		require.NoError(t, err)

		uow.prices.On("GetActive", ctx, now).Return(previous, nil)
		uow.prices.On("Update", ctx, previous).Return(nil)

		params := ruleParams(t, "2025-03", nil)
		params.ZoneRules = []pricing.ZoneRule{
			{Zone: 1, MinKm: 0, MaxKm: 5, BaseValue: mustMoney(t, "10.00")},
			{Zone: 2, MinKm: 4, MaxKm: 15, BaseValue: mustMoney(t, "14.00")},
		}

		handler := commands.NewReplacePricingRulesCommandHandler(pricingUoWFactory{uow: uow})

		cmd, err := commands.NewReplacePricingRulesCommand(params, now)
		require.NoError(t, err)

		_, err = handler.Handle(ctx, cmd)
		require.Error(t, err)

		assert.False(t, uow.committed)
		assert.True(t, uow.rolledBack)
		uow.prices.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should reject a command that bypassed the constructor", func(t *testing.T) {
		handler := commands.NewReplacePricingRulesCommandHandler(pricingUoWFactory{uow: newFakeUoW()})

		_, err := handler.Handle(ctx, commands.ReplacePricingRulesCommand{})
		require.ErrorIs(t, err, commands.ErrReplacePricingRulesCommandIsNotConstructed)
	})
}
