// Package external wraps the third-party metadata providers the API proxies.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"earshot/internal/middleware"
	"earshot/internal/models"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeClient fetches video metadata from the YouTube Data API.
type YouTubeClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewYouTubeClient creates a client for the YouTube Data API.
func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		apiKey:  apiKey,
		baseURL: defaultYouTubeBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewYouTubeClientWithBaseURL creates a client pointed at a custom endpoint.
// Used by tests to target a local stub server.
func NewYouTubeClientWithBaseURL(apiKey, baseURL string) *YouTubeClient {
	c := NewYouTubeClient(apiKey)
	c.baseURL = baseURL
	return c
}

// GetVideo returns the raw video resource for the given ID. Upstream error
// statuses are preserved in the returned AppError so handlers can relay them.
func (c *YouTubeClient) GetVideo(ctx context.Context, videoID string) (json.RawMessage, error) {
	if videoID == "" {
		return nil, models.NewValidationError("Video ID is required")
	}

	q := url.Values{}
	q.Set("id", videoID)
	q.Set("part", "snippet,contentDetails,statistics")
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/videos?"+q.Encode(), nil)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		middleware.ExternalAPIRequests.WithLabelValues("youtube", "error").Inc()
		return nil, models.NewUpstreamError("Failed to fetch YouTube data", http.StatusBadGateway)
	}
	defer resp.Body.Close()
	middleware.ExternalAPIRequests.WithLabelValues("youtube", strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		switch resp.StatusCode {
		case http.StatusForbidden:
			return nil, models.NewUpstreamError("YouTube API quota exceeded or invalid API key", http.StatusForbidden)
		case http.StatusNotFound:
			return nil, models.NewUpstreamError("YouTube video not found", http.StatusNotFound)
		default:
			return nil, models.NewUpstreamError(
				fmt.Sprintf("YouTube API returned status %d", resp.StatusCode),
				http.StatusBadGateway)
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var payload struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, models.NewUpstreamError("Invalid response from YouTube", http.StatusBadGateway)
	}
	if len(payload.Items) == 0 {
		return nil, models.NewUpstreamError("YouTube video not found", http.StatusNotFound)
	}

	return payload.Items[0], nil
}
