package external

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"earshot/internal/middleware"
	"earshot/internal/models"
)

const (
	defaultSpotifyAccountsURL = "https://accounts.spotify.com"
	defaultSpotifyAPIURL      = "https://api.spotify.com/v1"
)

// SpotifyClient fetches episode metadata from the Spotify Web API using the
// client-credentials flow. Access tokens are cached until shortly before
// they expire.
type SpotifyClient struct {
	clientID     string
	clientSecret string
	accountsURL  string
	apiURL       string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewSpotifyClient creates a client for the Spotify Web API.
func NewSpotifyClient(clientID, clientSecret string) *SpotifyClient {
	return &SpotifyClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		accountsURL:  defaultSpotifyAccountsURL,
		apiURL:       defaultSpotifyAPIURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewSpotifyClientWithBaseURLs creates a client pointed at custom endpoints.
// Used by tests to target local stub servers.
func NewSpotifyClientWithBaseURLs(clientID, clientSecret, accountsURL, apiURL string) *SpotifyClient {
	c := NewSpotifyClient(clientID, clientSecret)
	c.accountsURL = accountsURL
	c.apiURL = apiURL
	return c
}

// token returns a valid access token, fetching a new one when the cached
// token is missing or about to expire.
func (c *SpotifyClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.accountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", models.NewInternalError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+basic)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.ExternalAPIRequests.WithLabelValues("spotify", "error").Inc()
		return "", models.NewUpstreamError("Failed to fetch Spotify data", http.StatusBadGateway)
	}
	defer resp.Body.Close()
	middleware.ExternalAPIRequests.WithLabelValues("spotify", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		return "", models.NewUpstreamError("Spotify API authentication failed", http.StatusUnauthorized)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.AccessToken == "" {
		return "", models.NewUpstreamError("Invalid token response from Spotify", http.StatusBadGateway)
	}

	c.accessToken = payload.AccessToken
	// Refresh a minute early so in-flight requests never carry a stale token.
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn)*time.Second - time.Minute)

	return c.accessToken, nil
}

// GetEpisode returns the raw episode resource for the given ID. Upstream
// error statuses are preserved in the returned AppError so handlers can
// relay them.
func (c *SpotifyClient) GetEpisode(ctx context.Context, episodeID string) (json.RawMessage, error) {
	if episodeID == "" {
		return nil, models.NewValidationError("Episode ID is required")
	}

	accessToken, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.apiURL+"/episodes/"+url.PathEscape(episodeID), nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.ExternalAPIRequests.WithLabelValues("spotify", "error").Inc()
		return nil, models.NewUpstreamError("Failed to fetch Spotify data", http.StatusBadGateway)
	}
	defer resp.Body.Close()
	middleware.ExternalAPIRequests.WithLabelValues("spotify", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			// A cached token may have been revoked; drop it so the next
			// call re-authenticates.
			c.mu.Lock()
			c.accessToken = ""
			c.mu.Unlock()
			return nil, models.NewUpstreamError("Spotify API authentication failed", http.StatusUnauthorized)
		case http.StatusBadRequest:
			return nil, models.NewUpstreamError("Invalid Spotify episode ID format", http.StatusBadRequest)
		case http.StatusNotFound:
			return nil, models.NewUpstreamError("Spotify episode not found", http.StatusNotFound)
		case http.StatusTooManyRequests:
			return nil, models.NewUpstreamError("Spotify API rate limit exceeded", http.StatusTooManyRequests)
		default:
			return nil, models.NewUpstreamError(
				fmt.Sprintf("Spotify API returned status %d", resp.StatusCode),
				http.StatusBadGateway)
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return json.RawMessage(body), nil
}
