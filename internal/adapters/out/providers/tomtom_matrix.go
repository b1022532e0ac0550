package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"roodi/internal/core/ports"
	"roodi/internal/pkg/errs"
)

// TomTomMatrixProvider resolves routes through the TomTom matrix routing API.
// It is the paid fallback behind the local matrix.
type TomTomMatrixProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
	settings Settings
}

// NewTomTomMatrixProvider creates a TomTom-backed distance/time provider.
// The endpoint is the matrix route URL without the key query parameter.
func NewTomTomMatrixProvider(endpoint, apiKey string, client *http.Client, settings Settings) *TomTomMatrixProvider {
	return &TomTomMatrixProvider{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   client,
		settings: settings,
	}
}

// ID returns the identifier recorded in quote attempt trails.
func (p *TomTomMatrixProvider) ID() string { return "tomtom_matrix" }

// Enabled reports whether the provider participates in resolution.
func (p *TomTomMatrixProvider) Enabled() bool { return p.settings.Enabled }

// Priority orders the provider among the configured sources.
func (p *TomTomMatrixProvider) Priority() int { return p.settings.Priority }

// Policy returns the provider's retry bounds.
func (p *TomTomMatrixProvider) Policy() ports.RetryPolicy { return p.settings.Policy() }

type tomtomPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type tomtomLocation struct {
	Point tomtomPoint `json:"point"`
}

type tomtomMatrixRequest struct {
	Origins      []tomtomLocation `json:"origins"`
	Destinations []tomtomLocation `json:"destinations"`
}

type tomtomRouteSummary struct {
	LengthInMeters      int `json:"lengthInMeters"`
	TravelTimeInSeconds int `json:"travelTimeInSeconds"`
}

type tomtomMatrixCell struct {
	OriginIndex      int                `json:"originIndex"`
	DestinationIndex int                `json:"destinationIndex"`
	RouteSummary     tomtomRouteSummary `json:"routeSummary"`
}

type tomtomMatrixResponse struct {
	Data []tomtomMatrixCell `json:"data"`
}

// Resolve requests a 1x1 matrix for the pair and returns its single cell.
func (p *TomTomMatrixProvider) Resolve(
	ctx context.Context,
	origin, destination ports.Bairro,
) (ports.DistanceTimeResult, error) {
	payload := tomtomMatrixRequest{
		Origins:      []tomtomLocation{{Point: tomtomPoint{Latitude: origin.Latitude, Longitude: origin.Longitude}}},
		Destinations: []tomtomLocation{{Point: tomtomPoint{Latitude: destination.Latitude, Longitude: destination.Longitude}}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.DistanceTimeResult{}, err
	}

	url := fmt.Sprintf("%s?key=%s", p.endpoint, p.apiKey)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ports.DistanceTimeResult{}, err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := p.client.Do(request)
	if err != nil {
		return ports.DistanceTimeResult{}, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return ports.DistanceTimeResult{}, errs.NewServiceUnavailableError(
			fmt.Sprintf("tomtom matrix returned status %d", response.StatusCode))
	}

	var matrix tomtomMatrixResponse
	if err := json.NewDecoder(response.Body).Decode(&matrix); err != nil {
		return ports.DistanceTimeResult{}, err
	}

	if len(matrix.Data) == 0 {
		return ports.DistanceTimeResult{}, errs.NewValueIsInvalidError("tomtom matrix data")
	}

	summary := matrix.Data[0].RouteSummary
	if summary.LengthInMeters <= 0 || summary.TravelTimeInSeconds <= 0 {
		return ports.DistanceTimeResult{}, errs.NewValueIsInvalidErrorWithCause(
			"tomtom route summary",
			fmt.Errorf("non-positive values %dm/%ds", summary.LengthInMeters, summary.TravelTimeInSeconds),
		)
	}

	return ports.DistanceTimeResult{
		DistanceM: summary.LengthInMeters,
		DurationS: summary.TravelTimeInSeconds,
	}, nil
}
