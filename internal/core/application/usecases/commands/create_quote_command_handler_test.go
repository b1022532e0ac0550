package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roodi/internal/core/application/resolver"
	"roodi/internal/core/application/usecases/commands"
	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/pricing"
	"roodi/internal/core/domain/model/quote"
	"roodi/internal/core/domain/services"
	"roodi/internal/core/ports"
	"roodi/internal/pkg/errs"
)

type stubDistanceTimeProvider struct {
	id     string
	result ports.DistanceTimeResult
	err    error
}

func (p stubDistanceTimeProvider) ID() string    { return p.id }
func (p stubDistanceTimeProvider) Enabled() bool { return true }
func (p stubDistanceTimeProvider) Priority() int { return 1 }
func (p stubDistanceTimeProvider) Policy() ports.RetryPolicy {
	return ports.RetryPolicy{Timeout: time.Second}
}

func (p stubDistanceTimeProvider) Resolve(context.Context, ports.Bairro, ports.Bairro) (ports.DistanceTimeResult, error) {
	return p.result, p.err
}

type stubClimateProvider struct {
	id     string
	result ports.ClimateResult
	err    error
}

func (p stubClimateProvider) ID() string    { return p.id }
func (p stubClimateProvider) Enabled() bool { return true }
func (p stubClimateProvider) Priority() int { return 1 }
func (p stubClimateProvider) Policy() ports.RetryPolicy {
	return ports.RetryPolicy{Timeout: time.Second}
}

func (p stubClimateProvider) Observe(context.Context, float64, float64) (ports.ClimateResult, error) {
	return p.result, p.err
}

func TestCreateQuoteCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	// a Monday, outside any peak window
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	climateDefault := ports.ClimateResult{
		IsRaining:  false,
		Source:     "default",
		Confidence: quote.ConfidenceLow,
	}

	originBairro := ports.Bairro{
		ID:             kernel.NewUUID(),
		Name:           "Petrópolis",
		NormalizedName: "petropolis",
		Latitude:       -5.783,
		Longitude:      -35.199,
		Active:         true,
	}
	destinationBairro := ports.Bairro{
		ID:             kernel.NewUUID(),
		Name:           "Ponta Negra",
		NormalizedName: "ponta negra",
		Latitude:       -5.879,
		Longitude:      -35.176,
		Active:         true,
	}

	newHandler := func(uow *fakeUoW, distance []ports.DistanceTimeProvider, climate []ports.ClimateProvider) commands.CreateQuoteCommandHandler {
		return commands.NewCreateQuoteCommandHandler(
			quoteUoWFactory{uow: uow},
			resolver.NewResolver(),
			services.NewPriceCalculator(),
			distance,
			climate,
			climateDefault,
			time.UTC,
		)
	}

	newCommand := func(t *testing.T) commands.CreateQuoteCommand {
		t.Helper()
		cmd, err := commands.NewCreateQuoteCommand(
			kernel.NewUUID(), kernel.NewUUID(),
			"Petrópolis", "Ponta Negra",
			kernel.UrgencyUrgent,
			now,
			nil, nil, nil,
		)
		require.NoError(t, err)
		return cmd
	}

	t.Run("should resolve, price and persist a successful quote", func(t *testing.T) {
		uow := newFakeUoW()
		rule, err := pricing.NewRuleVersion(ruleParams(t, "2025-03", nil))
		require.NoError(t, err)

		uow.bairros.On("GetByNormalizedName", ctx, "petropolis").Return(originBairro, nil)
		uow.bairros.On("GetByNormalizedName", ctx, "ponta negra").Return(destinationBairro, nil)
		uow.prices.On("GetActive", ctx, now).Return(rule, nil)
		uow.prices.On("IsHoliday", ctx, mock.AnythingOfType("time.Time")).Return(false, nil)
		uow.quotes.On("Add", ctx, mock.AnythingOfType("*quote.Quote")).Return(nil)

		distance := []ports.DistanceTimeProvider{
			stubDistanceTimeProvider{id: "local_matrix", result: ports.DistanceTimeResult{DistanceM: 4200, DurationS: 780}},
		}
		climate := []ports.ClimateProvider{
			stubClimateProvider{id: "openweather", result: ports.ClimateResult{
				IsRaining: true, Source: "openweather", Confidence: quote.ConfidenceHigh,
			}},
		}

		handler := newHandler(uow, distance, climate)

		q, err := handler.Handle(ctx, newCommand(t))
		require.NoError(t, err)

		assert.True(t, uow.committed)
		assert.True(t, q.Success())
		assert.Equal(t, 4200, q.DistanceM())
		assert.Equal(t, 13, q.EtaMin())
		assert.Equal(t, 2, q.Zone())
		// zone 2 base 14.00 + urgent 3.00 + rain 2.00
		assert.Equal(t, "19", q.Breakdown().Total.Decimal().String())
		assert.True(t, q.IsRaining())
		assert.Equal(t, "local_matrix", q.DistanceTimeProviderID())
		assert.Equal(t, "openweather", q.ClimateProviderID())
		assert.False(t, q.FallbackUsed())
		require.Len(t, q.Attempts(), 2)
		uow.quotes.AssertExpectations(t)
	})

	t.Run("should persist a failed quote when the origin bairro is unknown", func(t *testing.T) {
		uow := newFakeUoW()

		uow.bairros.On("GetByNormalizedName", ctx, "petropolis").
			Return(ports.Bairro{}, errs.NewObjectNotFoundError("bairro", "petropolis"))
		uow.quotes.On("Add", ctx, mock.AnythingOfType("*quote.Quote")).Return(nil)

		handler := newHandler(uow, nil, nil)

		q, err := handler.Handle(ctx, newCommand(t))
		require.NoError(t, err)

		assert.True(t, uow.committed)
		assert.False(t, q.Success())
		assert.Equal(t, quote.ErrorOutOfCoverage, q.ErrorCode())
		assert.True(t, q.FallbackUsed())
	})

	t.Run("should persist a failed quote with the attempt trail when every provider fails", func(t *testing.T) {
		uow := newFakeUoW()

		uow.bairros.On("GetByNormalizedName", ctx, "petropolis").Return(originBairro, nil)
		uow.bairros.On("GetByNormalizedName", ctx, "ponta negra").Return(destinationBairro, nil)
		uow.quotes.On("Add", ctx, mock.AnythingOfType("*quote.Quote")).Return(nil)

		distance := []ports.DistanceTimeProvider{
			stubDistanceTimeProvider{id: "local_matrix", err: errors.New("pair not in matrix")},
		}

		handler := newHandler(uow, distance, nil)

		q, err := handler.Handle(ctx, newCommand(t))
		require.NoError(t, err)

		assert.True(t, uow.committed)
		assert.False(t, q.Success())
		assert.Equal(t, quote.ErrorDistanceTimeUnavailable, q.ErrorCode())
		require.Len(t, q.Attempts(), 1)
		assert.Equal(t, "local_matrix", q.Attempts()[0].ProviderID)
		assert.False(t, q.Attempts()[0].Success)
	})

	t.Run("should fall back to the climate default without failing the quote", func(t *testing.T) {
		uow := newFakeUoW()
		rule, err := pricing.NewRuleVersion(ruleParams(t, "2025-03", nil))
		require.NoError(t, err)

		uow.bairros.On("GetByNormalizedName", ctx, "petropolis").Return(originBairro, nil)
		uow.bairros.On("GetByNormalizedName", ctx, "ponta negra").Return(destinationBairro, nil)
		uow.prices.On("GetActive", ctx, now).Return(rule, nil)
		uow.prices.On("IsHoliday", ctx, mock.AnythingOfType("time.Time")).Return(false, nil)
		uow.quotes.On("Add", ctx, mock.AnythingOfType("*quote.Quote")).Return(nil)

		distance := []ports.DistanceTimeProvider{
			stubDistanceTimeProvider{id: "local_matrix", result: ports.DistanceTimeResult{DistanceM: 4200, DurationS: 780}},
		}
		climate := []ports.ClimateProvider{
			stubClimateProvider{id: "openweather", err: errors.New("upstream 500")},
		}

		handler := newHandler(uow, distance, climate)

		q, err := handler.Handle(ctx, newCommand(t))
		require.NoError(t, err)

		assert.True(t, q.Success())
		assert.False(t, q.IsRaining())
		assert.Equal(t, "default", q.ClimateSource())
		// no rain addon: zone 2 base 14.00 + urgent 3.00
		assert.Equal(t, "17", q.Breakdown().Total.Decimal().String())
	})

	t.Run("should persist a failed quote when the distance exceeds coverage", func(t *testing.T) {
		uow := newFakeUoW()
		rule, err := pricing.NewRuleVersion(ruleParams(t, "2025-03", nil))
		require.NoError(t, err)

		uow.bairros.On("GetByNormalizedName", ctx, "petropolis").Return(originBairro, nil)
		uow.bairros.On("GetByNormalizedName", ctx, "ponta negra").Return(destinationBairro, nil)
		uow.prices.On("GetActive", ctx, now).Return(rule, nil)
		uow.quotes.On("Add", ctx, mock.AnythingOfType("*quote.Quote")).Return(nil)

		distance := []ports.DistanceTimeProvider{
			stubDistanceTimeProvider{id: "local_matrix", result: ports.DistanceTimeResult{DistanceM: 22000, DurationS: 2400}},
		}
		climate := []ports.ClimateProvider{
			stubClimateProvider{id: "openweather", result: climateDefault},
		}

		handler := newHandler(uow, distance, climate)

		q, err := handler.Handle(ctx, newCommand(t))
		require.NoError(t, err)

		assert.True(t, uow.committed)
		assert.False(t, q.Success())
		assert.Equal(t, quote.ErrorOutOfCoverage, q.ErrorCode())
	})

	t.Run("should return ServiceUnavailable when no pricing rule is active", func(t *testing.T) {
		uow := newFakeUoW()

		uow.bairros.On("GetByNormalizedName", ctx, "petropolis").Return(originBairro, nil)
		uow.bairros.On("GetByNormalizedName", ctx, "ponta negra").Return(destinationBairro, nil)
		uow.prices.On("GetActive", ctx, now).
			Return(nil, errs.NewObjectNotFoundError("pricing rule version", now))

		distance := []ports.DistanceTimeProvider{
			stubDistanceTimeProvider{id: "local_matrix", result: ports.DistanceTimeResult{DistanceM: 4200, DurationS: 780}},
		}
		climate := []ports.ClimateProvider{
			stubClimateProvider{id: "openweather", result: climateDefault},
		}

		handler := newHandler(uow, distance, climate)

		_, err := handler.Handle(ctx, newCommand(t))

		var unavailable *errs.ServiceUnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.False(t, uow.committed)
		uow.quotes.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should reject a command that bypassed the constructor", func(t *testing.T) {
		handler := newHandler(newFakeUoW(), nil, nil)

		_, err := handler.Handle(ctx, commands.CreateQuoteCommand{})
		require.ErrorIs(t, err, commands.ErrCreateQuoteCommandIsNotConstructed)
	})
}
