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

// metNoUserAgent identifies the client to the met.no API, which rejects
// requests without a descriptive User-Agent.
const metNoUserAgent = "roodi-dispatch/1.0"

// MetNoProvider observes rain through the met.no location forecast API. The
// observation is a forecast for the next hour, so it is graded medium
// confidence.
type MetNoProvider struct {
	endpoint        string
	rainThresholdMm float64
	client          *http.Client
	settings        Settings
}

// NewMetNoProvider creates a met.no-backed climate provider.
func NewMetNoProvider(endpoint string, rainThresholdMm float64, client *http.Client, settings Settings) *MetNoProvider {
	return &MetNoProvider{
		endpoint:        endpoint,
		rainThresholdMm: rainThresholdMm,
		client:          client,
		settings:        settings,
	}
}

// ID returns the identifier recorded in quote attempt trails.
func (p *MetNoProvider) ID() string { return "met_no" }

// Enabled reports whether the provider participates in resolution.
func (p *MetNoProvider) Enabled() bool { return p.settings.Enabled }

// Priority orders the provider among the configured sources.
func (p *MetNoProvider) Priority() int { return p.settings.Priority }

// Policy returns the provider's retry bounds.
func (p *MetNoProvider) Policy() ports.RetryPolicy { return p.settings.Policy() }

type metNoForecastDetails struct {
	PrecipitationAmount float64 `json:"precipitation_amount"`
}

type metNoNextHour struct {
	Details metNoForecastDetails `json:"details"`
}

type metNoTimeStepData struct {
	NextOneHour metNoNextHour `json:"next_1_hours"`
}

type metNoTimeStep struct {
	Data metNoTimeStepData `json:"data"`
}

type metNoProperties struct {
	Timeseries []metNoTimeStep `json:"timeseries"`
}

type metNoResponse struct {
	Properties metNoProperties `json:"properties"`
}

// Observe fetches the forecast for the point and reads the next hour's
// precipitation from the first time step.
func (p *MetNoProvider) Observe(ctx context.Context, latitude, longitude float64) (ports.ClimateResult, error) {
	url := fmt.Sprintf("%s?lat=%f&lon=%f", p.endpoint, latitude, longitude)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.ClimateResult{}, err
	}
	request.Header.Set("User-Agent", metNoUserAgent)

	response, err := p.client.Do(request)
	if err != nil {
		return ports.ClimateResult{}, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return ports.ClimateResult{}, errs.NewServiceUnavailableError(
			fmt.Sprintf("met.no returned status %d", response.StatusCode))
	}

	var forecast metNoResponse
	if err := json.NewDecoder(response.Body).Decode(&forecast); err != nil {
		return ports.ClimateResult{}, err
	}

	if len(forecast.Properties.Timeseries) == 0 {
		return ports.ClimateResult{}, errs.NewValueIsInvalidError("met.no timeseries")
	}

	precipitation := forecast.Properties.Timeseries[0].Data.NextOneHour.Details.PrecipitationAmount
	return ports.ClimateResult{
		IsRaining:  precipitation >= p.rainThresholdMm,
		Source:     p.ID(),
		Confidence: quote.ConfidenceMedium,
	}, nil
}
