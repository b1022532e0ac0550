package quote_test

import (
	"testing"
	"time"

	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/quote"
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

func validBreakdown(t *testing.T) quote.PriceBreakdown {
	t.Helper()
	return quote.PriceBreakdown{
		BaseZone:     money(t, "10.00"),
		UrgencyAddon: money(t, "3.00"),
		SundayAddon:  money(t, "2.00"),
		Total:        money(t, "15.00"),
	}
}

func validQuoteParams() quote.QuoteParams {
	return quote.QuoteParams{
		ID:                  kernel.NewUUID(),
		CommerceID:          kernel.NewUUID(),
		OriginBairroID:      kernel.NewUUID(),
		DestinationBairroID: kernel.NewUUID(),
		Urgency:             kernel.UrgencyUrgent,
		RequestedAt:         time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Attempts: []quote.ProviderAttempt{
			{DomainKey: quote.DomainDistanceTime, ProviderID: "local_bairro_matrix", AttemptNo: 1, Success: true, LatencyMs: 12},
			{DomainKey: quote.DomainClimate, ProviderID: "openweather", AttemptNo: 1, Success: true, LatencyMs: 180},
		},
	}
}

func validSuccessParams(t *testing.T) quote.SuccessParams {
	t.Helper()
	return quote.SuccessParams{
		DistanceM:              5200,
		DurationS:              660,
		Zone:                   2,
		Breakdown:              validBreakdown(t),
		IsRaining:              false,
		ClimateSource:          "provider",
		ClimateConfidence:      quote.ConfidenceHigh,
		DistanceTimeProviderID: "local_bairro_matrix",
		ClimateProviderID:      "openweather",
		FallbackUsed:           false,
		DistanceTimeLatencyMs:  12,
		ClimateLatencyMs:       180,
	}
}

func TestPriceBreakdown_Validate(t *testing.T) {
	t.Run("should accept total equal to sum", func(t *testing.T) {
		require.NoError(t, validBreakdown(t).Validate())
	})

	t.Run("should reject total different from sum", func(t *testing.T) {
		b := validBreakdown(t)
		b.Total = money(t, "15.01")

		require.ErrorIs(t, b.Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("zero breakdown is internally consistent", func(t *testing.T) {
		var b quote.PriceBreakdown

		require.NoError(t, b.Validate())
		assert.True(t, b.Total.IsZero())
	})
}

func TestNewQuote(t *testing.T) {
	t.Run("should create successful quote with derived eta", func(t *testing.T) {
		q, err := quote.NewQuote(validQuoteParams(), validSuccessParams(t))

		require.NoError(t, err)
		require.NoError(t, q.Validate())
		assert.True(t, q.Success())
		assert.Equal(t, 11, q.EtaMin()) // 660s = 11min exactly
		assert.Empty(t, string(q.ErrorCode()))
		assert.Len(t, q.Attempts(), 2)
	})

	t.Run("should round eta up and floor at one minute", func(t *testing.T) {
		tests := []struct {
			durationS int
			etaMin    int
		}{
			{1, 1},
			{59, 1},
			{60, 1},
			{61, 2},
			{3601, 61},
		}
		for _, tt := range tests {
			result := validSuccessParams(t)
			result.DurationS = tt.durationS

			q, err := quote.NewQuote(validQuoteParams(), result)

			require.NoError(t, err)
			assert.Equal(t, tt.etaMin, q.EtaMin(), "durationS=%d", tt.durationS)
		}
	})

	t.Run("should reject non-positive distance or duration", func(t *testing.T) {
		result := validSuccessParams(t)
		result.DistanceM = 0

		_, err := quote.NewQuote(validQuoteParams(), result)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		result = validSuccessParams(t)
		result.DurationS = -5

		_, err = quote.NewQuote(validQuoteParams(), result)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject inconsistent breakdown", func(t *testing.T) {
		result := validSuccessParams(t)
		result.Breakdown.Total = money(t, "1.00")

		_, err := quote.NewQuote(validQuoteParams(), result)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject malformed attempt trail", func(t *testing.T) {
		params := validQuoteParams()
		params.Attempts = append(params.Attempts, quote.ProviderAttempt{
			DomainKey:  quote.DomainDistanceTime,
			ProviderID: "tomtom_matrix",
			AttemptNo:  0,
		})

		_, err := quote.NewQuote(params, validSuccessParams(t))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewFailedQuote(t *testing.T) {
	t.Run("should persist failure with attempt trail", func(t *testing.T) {
		params := validQuoteParams()
		params.Attempts = []quote.ProviderAttempt{
			{DomainKey: quote.DomainDistanceTime, ProviderID: "local_bairro_matrix", AttemptNo: 1, ErrorCode: "NO_ROUTE"},
			{DomainKey: quote.DomainDistanceTime, ProviderID: "tomtom_matrix", AttemptNo: 1, ErrorCode: "TIMEOUT"},
			{DomainKey: quote.DomainDistanceTime, ProviderID: "tomtom_matrix", AttemptNo: 2, ErrorCode: "TIMEOUT"},
		}

		q, err := quote.NewFailedQuote(params, quote.ErrorDistanceTimeUnavailable, "all providers exhausted")

		require.NoError(t, err)
		assert.False(t, q.Success())
		assert.Equal(t, quote.ErrorDistanceTimeUnavailable, q.ErrorCode())
		assert.True(t, q.FallbackUsed())
		assert.Len(t, q.Attempts(), 3)
	})

	t.Run("should reject non-terminal error codes", func(t *testing.T) {
		_, err := quote.NewFailedQuote(validQuoteParams(), quote.ErrorCode("TIMEOUT"), "x")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestQuote_UsableForOrder(t *testing.T) {
	requestedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	newSuccessQuote := func(t *testing.T) *quote.Quote {
		params := validQuoteParams()
		params.RequestedAt = requestedAt
		q, err := quote.NewQuote(params, validSuccessParams(t))
		require.NoError(t, err)
		return q
	}

	t.Run("should accept fresh successful quote", func(t *testing.T) {
		q := newSuccessQuote(t)

		require.NoError(t, q.UsableForOrder(requestedAt.Add(5*time.Minute)))
	})

	t.Run("should accept exactly at the expiry boundary", func(t *testing.T) {
		q := newSuccessQuote(t)

		require.NoError(t, q.UsableForOrder(requestedAt.Add(quote.TTL)))
	})

	t.Run("should reject expired quote", func(t *testing.T) {
		q := newSuccessQuote(t)

		err := q.UsableForOrder(requestedAt.Add(quote.TTL + time.Second))

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should reject failed quote", func(t *testing.T) {
		q, err := quote.NewFailedQuote(validQuoteParams(), quote.ErrorOutOfCoverage, "bairro not found")
		require.NoError(t, err)

		require.ErrorIs(t, q.UsableForOrder(requestedAt), errs.ErrConflict)
	})
}

func TestQuote_Attempts(t *testing.T) {
	t.Run("should return a defensive copy", func(t *testing.T) {
		q, err := quote.NewQuote(validQuoteParams(), validSuccessParams(t))
		require.NoError(t, err)

		attempts := q.Attempts()
		attempts[0].ProviderID = "mutated"

		assert.Equal(t, "local_bairro_matrix", q.Attempts()[0].ProviderID)
	})
}

func TestDomainKey_Validate(t *testing.T) {
	require.NoError(t, quote.DomainDistanceTime.Validate())
	require.NoError(t, quote.DomainClimate.Validate())
	require.ErrorIs(t, quote.DomainKey("routing").Validate(), errs.ErrValueIsInvalid)
}
