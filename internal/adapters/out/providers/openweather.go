package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"roodi/internal/core/domain/model/quote"
	"roodi/internal/core/ports"
	"roodi/internal/pkg/errs"
)

// OpenWeatherProvider observes rain through the OpenWeather current weather
// API. An observation counts as rain when the last hour's precipitation meets
// the configured threshold.
type OpenWeatherProvider struct {
	endpoint        string
	apiKey          string
	rainThresholdMm float64
	client          *http.Client
	settings        Settings
}

// NewOpenWeatherProvider creates an OpenWeather-backed climate provider.
func NewOpenWeatherProvider(
	endpoint, apiKey string,
	rainThresholdMm float64,
	client *http.Client,
	settings Settings,
) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		endpoint:        endpoint,
		apiKey:          apiKey,
		rainThresholdMm: rainThresholdMm,
		client:          client,
		settings:        settings,
	}
}

// ID returns the identifier recorded in quote attempt trails.
func (p *OpenWeatherProvider) ID() string { return "openweather" }

// Enabled reports whether the provider participates in resolution.
func (p *OpenWeatherProvider) Enabled() bool { return p.settings.Enabled }

// Priority orders the provider among the configured sources.
func (p *OpenWeatherProvider) Priority() int { return p.settings.Priority }

// Policy returns the provider's retry bounds.
func (p *OpenWeatherProvider) Policy() ports.RetryPolicy { return p.settings.Policy() }

type openWeatherRain struct {
	OneHour float64 `json:"1h"`
}

type openWeatherResponse struct {
	Rain openWeatherRain `json:"rain"`
}

// Observe fetches the current weather near the point. A missing rain block
// decodes to zero precipitation, which is a valid dry observation.
func (p *OpenWeatherProvider) Observe(ctx context.Context, latitude, longitude float64) (ports.ClimateResult, error) {
	url := fmt.Sprintf("%s?lat=%f&lon=%f&appid=%s", p.endpoint, latitude, longitude, p.apiKey)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.ClimateResult{}, err
	}

	response, err := p.client.Do(request)
	if err != nil {
		return ports.ClimateResult{}, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return ports.ClimateResult{}, errs.NewServiceUnavailableError(
			fmt.Sprintf("openweather returned status %d", response.StatusCode))
	}

	var weather openWeatherResponse
	if err := json.NewDecoder(response.Body).Decode(&weather); err != nil {
		return ports.ClimateResult{}, err
	}

	return ports.ClimateResult{
		IsRaining:  weather.Rain.OneHour >= p.rainThresholdMm,
		Source:     p.ID(),
		Confidence: quote.ConfidenceHigh,
	}, nil
}
