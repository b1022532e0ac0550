package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roodi/internal/adapters/out/providers"
	"roodi/internal/core/domain/model/kernel"
	"roodi/internal/core/domain/model/quote"
	"roodi/internal/core/ports"
	"roodi/internal/pkg/errs"
)

var testSettings = providers.Settings{
	Enabled:      true,
	Priority:     1,
	Timeout:      time.Second,
	MaxRetries:   1,
	RetryBackoff: 10 * time.Millisecond,
}

func testBairro(name string) ports.Bairro {
	return ports.Bairro{
		ID:             kernel.NewUUID(),
		Name:           name,
		NormalizedName: name,
		Latitude:       -5.79,
		Longitude:      -35.21,
		Active:         true,
	}
}

type stubMatrixRepository struct {
	distanceM int
	durationS int
	err       error
}

func (s stubMatrixRepository) GetByNormalizedName(context.Context, string) (ports.Bairro, error) {
	panic("not used")
}

func (s stubMatrixRepository) GetMatrixEntry(context.Context, kernel.UUID, kernel.UUID) (int, int, error) {
	return s.distanceM, s.durationS, s.err
}

func TestLocalBairroMatrixProvider(t *testing.T) {
	origin := testBairro("petropolis")
	destination := testBairro("ponta negra")

	t.Run("should return the matrix route", func(t *testing.T) {
		provider := providers.NewLocalBairroMatrixProvider(
			stubMatrixRepository{distanceM: 4200, durationS: 780}, testSettings)

		result, err := provider.Resolve(context.Background(), origin, destination)

		require.NoError(t, err)
		assert.Equal(t, 4200, result.DistanceM)
		assert.Equal(t, 780, result.DurationS)
	})

	t.Run("should propagate a missing matrix entry", func(t *testing.T) {
		provider := providers.NewLocalBairroMatrixProvider(
			stubMatrixRepository{err: errs.NewObjectNotFoundError("matrix entry", "pair")}, testSettings)

		_, err := provider.Resolve(context.Background(), origin, destination)

		var notFound *errs.ObjectNotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("should reject a row with non-positive values", func(t *testing.T) {
		provider := providers.NewLocalBairroMatrixProvider(
			stubMatrixRepository{distanceM: 0, durationS: 780}, testSettings)

		_, err := provider.Resolve(context.Background(), origin, destination)

		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestTomTomMatrixProvider(t *testing.T) {
	origin := testBairro("petropolis")
	destination := testBairro("ponta negra")

	t.Run("should parse the single matrix cell", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":[{"originIndex":0,"destinationIndex":0,
				"routeSummary":{"lengthInMeters":5300,"travelTimeInSeconds":900}}]}`))
		}))
		defer server.Close()

		provider := providers.NewTomTomMatrixProvider(server.URL, "test-key", server.Client(), testSettings)

		result, err := provider.Resolve(context.Background(), origin, destination)

		require.NoError(t, err)
		assert.Equal(t, 5300, result.DistanceM)
		assert.Equal(t, 900, result.DurationS)
	})

	t.Run("should fail on a non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		provider := providers.NewTomTomMatrixProvider(server.URL, "test-key", server.Client(), testSettings)

		_, err := provider.Resolve(context.Background(), origin, destination)

		var unavailable *errs.ServiceUnavailableError
		require.ErrorAs(t, err, &unavailable)
	})

	t.Run("should fail on an empty matrix", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		provider := providers.NewTomTomMatrixProvider(server.URL, "test-key", server.Client(), testSettings)

		_, err := provider.Resolve(context.Background(), origin, destination)

		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestOpenWeatherProvider(t *testing.T) {
	t.Run("should report rain at or above the threshold", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
			_, _ = w.Write([]byte(`{"rain":{"1h":1.5}}`))
		}))
		defer server.Close()

		provider := providers.NewOpenWeatherProvider(server.URL, "test-key", 0.2, server.Client(), testSettings)

		result, err := provider.Observe(context.Background(), -5.79, -35.21)

		require.NoError(t, err)
		assert.True(t, result.IsRaining)
		assert.Equal(t, "openweather", result.Source)
		assert.Equal(t, quote.ConfidenceHigh, result.Confidence)
	})

	t.Run("should report dry when the rain block is absent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"weather":[{"main":"Clear"}]}`))
		}))
		defer server.Close()

		provider := providers.NewOpenWeatherProvider(server.URL, "test-key", 0.2, server.Client(), testSettings)

		result, err := provider.Observe(context.Background(), -5.79, -35.21)

		require.NoError(t, err)
		assert.False(t, result.IsRaining)
	})

	t.Run("should fail on a non-200 response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		provider := providers.NewOpenWeatherProvider(server.URL, "bad-key", 0.2, server.Client(), testSettings)

		_, err := provider.Observe(context.Background(), -5.79, -35.21)

		var unavailable *errs.ServiceUnavailableError
		require.ErrorAs(t, err, &unavailable)
	})
}

func TestMetNoProvider(t *testing.T) {
	t.Run("should read the next hour precipitation from the first time step", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			_, _ = w.Write([]byte(`{"properties":{"timeseries":[
				{"data":{"next_1_hours":{"details":{"precipitation_amount":0.8}}}}]}}`))
		}))
		defer server.Close()

		provider := providers.NewMetNoProvider(server.URL, 0.2, server.Client(), testSettings)

		result, err := provider.Observe(context.Background(), -5.79, -35.21)

		require.NoError(t, err)
		assert.True(t, result.IsRaining)
		assert.Equal(t, "met_no", result.Source)
		assert.Equal(t, quote.ConfidenceMedium, result.Confidence)
	})

	t.Run("should fail on an empty timeseries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"properties":{"timeseries":[]}}`))
		}))
		defer server.Close()

		provider := providers.NewMetNoProvider(server.URL, 0.2, server.Client(), testSettings)

		_, err := provider.Observe(context.Background(), -5.79, -35.21)

		var invalid *errs.ValueIsInvalidError
		require.ErrorAs(t, err, &invalid)
	})
}
