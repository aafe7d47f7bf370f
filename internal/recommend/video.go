// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package recommend implements the child-safe video recommendation pipeline:
// query selection, provider search, safety screening, normalization,
// deduplication, ranking, and curated fallback content.
//
// # Architecture
//
// The pipeline is deliberately forgiving: provider outages, empty result
// sets, and even panics inside the chain all degrade to curated content.
// A parent refreshing the dashboard must never see a hard failure.
package recommend

// Video is one recommendation surfaced to the dashboard.
//
// # Invariant
//
// Every Video returned by [Service.Respond] has AgeAppropriate and
// Educational set to true — items failing the safety screen are dropped
// before normalization, never retained with a different rating.
type Video struct {
	Title          string `json:"title"`
	Channel        string `json:"channel"`
	Description    string `json:"description"`
	Duration       string `json:"duration"`
	URL            string `json:"url"`
	Thumbnail      string `json:"thumbnail"`
	PublishedAt    string `json:"publishedAt,omitempty"`
	VideoID        string `json:"videoId"`
	AgeAppropriate bool   `json:"ageAppropriate"`
	Educational    bool   `json:"educational"`
	SafetyRating   string `json:"safetyRating"`
	Category       string `json:"category"`
	SearchQuery    string `json:"searchQuery"`
}

// SafetyRatingChildSafe is the only rating that affects sort order.
const SafetyRatingChildSafe = "Child-Safe"

// RankedQuery is one scored entry of an upstream query ranking.
type RankedQuery struct {
	Query string  `json:"query"`
	Score float64 `json:"score"`
}

// QueryRanking is the optional pre-computed ranking produced by the
// upstream child-analysis step. The pipeline never re-scores it — ranking
// quality is entirely the producer's responsibility.
type QueryRanking struct {
	BestMatch     string        `json:"bestMatch,omitempty"`
	RankedQueries []RankedQuery `json:"rankedQueries,omitempty"`
}

// ChildAnalysis carries optional upstream analysis attached to a request.
type ChildAnalysis struct {
	QueryRanking       *QueryRanking `json:"queryRanking,omitempty"`
	YouTubeKidsQueries []string      `json:"youtubeKidsQueries,omitempty"`
}

// Response is the exact JSON contract of the recommendation endpoint.
//
// The dashboard frontend consumes this shape directly, so it intentionally
// bypasses the platform's generic data envelope.
type Response struct {
	Success       bool          `json:"success"`
	Videos        []Video       `json:"videos"`
	TotalFound    int           `json:"totalFound"`
	SelectedQuery string        `json:"selectedQuery"`
	QueryRanking  *QueryRanking `json:"queryRanking"`
	SearchQueries []string      `json:"searchQueries"`
	Note          string        `json:"note"`
}
