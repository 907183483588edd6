package footballdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the football-data.org v4 API root.
	DefaultBaseURL = "https://api.football-data.org"

	// DefaultCompetition is the European Championship.
	DefaultCompetition = "EC"

	// DefaultTimeout bounds every outbound request.
	DefaultTimeout = 30 * time.Second
)

// Client is a football-data.org API client scoped to one competition.
type Client struct {
	baseURL     string
	apiToken    string
	competition string
	httpClient  *http.Client
}

// Config holds the configuration for the API client.
type Config struct {
	BaseURL     string
	APIToken    string
	Competition string
	Timeout     time.Duration
}

// NewClient creates a client for the default competition.
func NewClient(apiToken string) *Client {
	return NewClientWithConfig(Config{APIToken: apiToken})
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Competition == "" {
		config.Competition = DefaultCompetition
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL:     config.BaseURL,
		apiToken:    config.APIToken,
		competition: config.Competition,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// APIError is a non-2xx response from the provider.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("football-data API error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) doRequest(endpoint string, params url.Values) ([]byte, error) {
	u, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if params != nil {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	return body, nil
}

// GetStandings fetches the competition's group tables.
func (c *Client) GetStandings() (*StandingsResponse, error) {
	body, err := c.doRequest(fmt.Sprintf("/v4/competitions/%s/standings", c.competition), nil)
	if err != nil {
		return nil, err
	}

	var standings StandingsResponse
	if err := json.Unmarshal(body, &standings); err != nil {
		return nil, fmt.Errorf("failed to parse standings: %w", err)
	}
	return &standings, nil
}

// MatchesOn fetches the competition fixtures for one calendar day.
func (c *Client) MatchesOn(day time.Time) ([]Match, error) {
	params := url.Values{}
	params.Set("dateFrom", day.Format("2006-01-02"))
	params.Set("dateTo", day.Format("2006-01-02"))

	body, err := c.doRequest(fmt.Sprintf("/v4/competitions/%s/matches", c.competition), params)
	if err != nil {
		return nil, err
	}

	var matches MatchesResponse
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse matches: %w", err)
	}
	return matches.Matches, nil
}
