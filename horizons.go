package orbitcast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"
)

// DefaultHorizonsURL is the JPL Horizons API endpoint.
const DefaultHorizonsURL = "https://ssd.jpl.nasa.gov/api/horizons.api"

// sunCenter is the Horizons CENTER code for a Sun-centered frame.
const sunCenter = "500@10"

var (
	posPattern = regexp.MustCompile(`X\s*=\s*([\d.E+-]+)\s*Y\s*=\s*([\d.E+-]+)\s*Z\s*=\s*([\d.E+-]+)`)
	velPattern = regexp.MustCompile(`VX\s*=\s*([\d.E+-]+)\s*VY\s*=\s*([\d.E+-]+)\s*VZ\s*=\s*([\d.E+-]+)`)
)

// horizonsEnvelope is the JSON wrapper around the Horizons text ephemerides.
type horizonsEnvelope struct {
	Result string `json:"result"`
}

// HorizonsClient fetches Sun-centered state vectors from the JPL Horizons API.
type HorizonsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHorizonsClient creates a client for the given endpoint, or the public JPL one
// when baseURL is empty.
func NewHorizonsClient(baseURL string) *HorizonsClient {
	if baseURL == "" {
		baseURL = DefaultHorizonsURL
	}
	return &HorizonsClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// StateVector requests the VECTORS ephemeris of the body at the given epoch and
// extracts the position and velocity from the result text.
func (c *HorizonsClient) StateVector(ctx context.Context, body CelestialObject, epoch time.Time) (StateVector, error) {
	if body.HorizonsID == 0 {
		return StateVector{}, fmt.Errorf("%s has no Horizons identifier", body.Name)
	}
	q := url.Values{}
	q.Set("format", "json")
	q.Set("COMMAND", fmt.Sprintf("'%d'", body.HorizonsID))
	q.Set("EPHEM_TYPE", "'VECTORS'")
	q.Set("VEC_TABLE", "2")
	q.Set("CENTER", fmt.Sprintf("'%s'", sunCenter))
	q.Set("TLIST", fmt.Sprintf("'%s'", epoch.UTC().Format("2006-01-02 15:04")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return StateVector{}, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return StateVector{}, fmt.Errorf("fetching %s vectors: %w", body.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return StateVector{}, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, c.baseURL)
	}

	var envelope horizonsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return StateVector{}, fmt.Errorf("decoding %s response: %w", body.Name, err)
	}
	return parseStateVector(envelope.Result, epoch)
}

// parseStateVector extracts the X/Y/Z and VX/VY/VZ components from a Horizons
// VECTORS result block.
func parseStateVector(result string, epoch time.Time) (StateVector, error) {
	posMatch := posPattern.FindStringSubmatch(result)
	velMatch := velPattern.FindStringSubmatch(result)
	if posMatch == nil || velMatch == nil {
		return StateVector{}, &ParseError{Source: "JPL Horizons", Detail: "no vector block in result"}
	}
	R := make([]float64, 3)
	V := make([]float64, 3)
	for j := 0; j < 3; j++ {
		var err error
		if R[j], err = strconv.ParseFloat(posMatch[j+1], 64); err != nil {
			return StateVector{}, &ParseError{Source: "JPL Horizons", Detail: err.Error()}
		}
		if V[j], err = strconv.ParseFloat(velMatch[j+1], 64); err != nil {
			return StateVector{}, &ParseError{Source: "JPL Horizons", Detail: err.Error()}
		}
	}
	return StateVector{R: R, V: V, Epoch: epoch}, nil
}
