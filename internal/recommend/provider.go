// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taibuivan/emoticam/internal/platform/constants"
)

// SearchItem is the provider-agnostic shape of one raw search result.
// Only the fields the pipeline consumes are carried.
type SearchItem struct {
	VideoID          string
	Title            string
	Description      string
	ChannelTitle     string
	PublishedAt      string
	ThumbnailHigh    string
	ThumbnailDefault string
}

// SearchProvider defines the contract for the external video-search call.
//
// # Why an interface?
//
// The pipeline's degradation behavior (outage → synthetic → curated) is the
// hard part of this system, and it must be testable without the network.
type SearchProvider interface {
	// Search issues one search call for the query and returns raw items.
	Search(ctx context.Context, query string) ([]SearchItem, error)

	// Configured reports whether the provider has a usable credential.
	// An unconfigured provider is the pipeline's only hard failure.
	Configured() bool
}

// youTubeSearchEndpoint is the YouTube Data API v3 search URL.
const youTubeSearchEndpoint = "https://www.googleapis.com/youtube/v3/search"

// YouTubeClient implements [SearchProvider] against the YouTube Data API v3.
type YouTubeClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewYouTubeClient creates a provider client with a bounded request timeout.
//
// The explicit timeout matters: the pipeline awaits this call synchronously,
// so without a deadline a hanging provider would block the request forever.
func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		apiKey:   apiKey,
		endpoint: youTubeSearchEndpoint,
		httpClient: &http.Client{
			Timeout: constants.ProviderTimeout,
		},
	}
}

// Configured reports whether an API key is present.
func (client *YouTubeClient) Configured() bool {
	return client.apiKey != ""
}

// searchResponse mirrors the subset of the YouTube search schema we consume.
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
				Default struct {
					URL string `json:"url"`
				} `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search issues one constrained search call.
//
// # Query Constraints
//
// Results are restricted to embeddable short videos under strict safe-search,
// ordered by relevance, capped at [constants.ProviderMaxResults], pinned to
// one region. These parameters are part of the product's safety posture, not
// tuning knobs.
func (client *YouTubeClient) Search(ctx context.Context, query string) ([]SearchItem, error) {
	parameters := url.Values{}
	parameters.Set("part", "snippet")
	parameters.Set("q", query)
	parameters.Set("type", "video")
	parameters.Set("maxResults", strconv.Itoa(constants.ProviderMaxResults))
	parameters.Set("videoEmbeddable", "true")
	parameters.Set("safeSearch", "strict")
	parameters.Set("videoDuration", "short")
	parameters.Set("order", "relevance")
	parameters.Set("regionCode", constants.ProviderRegionCode)
	parameters.Set("key", client.apiKey)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, client.endpoint+"?"+parameters.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("youtube: failed to build request: %w", err)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("youtube: search request failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, fmt.Errorf("youtube: search returned status %d", response.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("youtube: failed to decode response: %w", err)
	}

	items := make([]SearchItem, 0, len(decoded.Items))
	for _, item := range decoded.Items {
		// Playlists and channels carry no videoId; skip anything that is
		// not directly watchable.
		if item.ID.VideoID == "" {
			continue
		}

		items = append(items, SearchItem{
			VideoID:          item.ID.VideoID,
			Title:            item.Snippet.Title,
			Description:      item.Snippet.Description,
			ChannelTitle:     item.Snippet.ChannelTitle,
			PublishedAt:      item.Snippet.PublishedAt,
			ThumbnailHigh:    item.Snippet.Thumbnails.High.URL,
			ThumbnailDefault: item.Snippet.Thumbnails.Default.URL,
		})
	}

	return items, nil
}
