// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/taibuivan/emoticam/internal/platform/constants"
)

// defaultQuery is the last-resort search query when the request carries
// neither candidates nor analysis.
const defaultQuery = "educational videos for kids"

// whitespaceRun collapses any run of whitespace, including newlines carried
// inside provider titles and descriptions, into a single space.
var whitespaceRun = regexp.MustCompile(`\s+`)

// Service orchestrates the recommendation pipeline around a search provider.
type Service struct {
	provider SearchProvider
	logger   *slog.Logger
}

// NewService creates a recommendation service.
func NewService(provider SearchProvider, logger *slog.Logger) *Service {
	return &Service{
		provider: provider,
		logger:   logger,
	}
}

// Configured reports whether the underlying provider holds a credential.
func (service *Service) Configured() bool {
	return service.provider.Configured()
}

/*
SelectQuery picks the single query the pipeline will search for.

# Precedence

 1. analysis.queryRanking.bestMatch, when present.
 2. The first entry of analysis.queryRanking.rankedQueries.
 3. The first of analysis.youtubeKidsQueries.
 4. The first of the request's own candidates.
 5. The literal default query.

No scoring happens here. Ranking quality belongs entirely to the upstream
producer of the analysis; this is a strict priority chain.
*/
func SelectQuery(candidates []string, analysis *ChildAnalysis) string {
	if analysis != nil {
		if ranking := analysis.QueryRanking; ranking != nil {
			if ranking.BestMatch != "" {
				return ranking.BestMatch
			}
			if len(ranking.RankedQueries) > 0 {
				return ranking.RankedQueries[0].Query
			}
		}
		if len(analysis.YouTubeKidsQueries) > 0 {
			return analysis.YouTubeKidsQueries[0]
		}
	}

	if len(candidates) > 0 {
		return candidates[0]
	}

	return defaultQuery
}

// Categorize maps a search query onto a dashboard category by keyword.
// Checks are ordered, so a query matching several groups takes the first.
func Categorize(query string) string {
	folded := strings.ToLower(query)

	switch {
	case containsAny(folded, "song", "music", "dance"):
		return "Music & Movement"
	case containsAny(folded, "craft", "art", "creative"):
		return "Arts & Crafts"
	case containsAny(folded, "learn", "educational", "abc", "number"):
		return "Educational"
	case containsAny(folded, "story", "tale", "book"):
		return "Stories & Books"
	case containsAny(folded, "science", "experiment"):
		return "Science & Discovery"
	default:
		return "General Learning"
	}
}

func containsAny(text string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}

	return false
}

// clean strips markdown bold markers and collapses whitespace in provider
// text before it reaches the client.
func clean(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = whitespaceRun.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// normalize converts one raw provider item into the response shape.
// Callers must have screened the item for safety already.
func normalize(item SearchItem, query string) Video {
	description := clean(item.Description)
	if description == "" {
		description = fmt.Sprintf("Educational content about %s", query)
	}

	thumbnail := item.ThumbnailHigh
	if thumbnail == "" {
		thumbnail = item.ThumbnailDefault
	}
	if thumbnail == "" {
		thumbnail = PlaceholderThumbnail(item.Title)
	}

	return Video{
		Title:          clean(item.Title),
		Channel:        clean(item.ChannelTitle),
		Description:    description,
		Duration:       "Short video",
		URL:            fmt.Sprintf("https://www.youtube.com/watch?v=%s", item.VideoID),
		Thumbnail:      thumbnail,
		PublishedAt:    item.PublishedAt,
		VideoID:        item.VideoID,
		AgeAppropriate: true,
		Educational:    IsEducational(item.Title, item.Description, item.ChannelTitle),
		SafetyRating:   SafetyRatingChildSafe,
		Category:       Categorize(query),
		SearchQuery:    query,
	}
}

// fetch searches the provider for one query and screens the results.
//
// # Degradation
//
// A transport error, a non-2xx status, and a result set with no safe
// survivors all collapse to a single synthetic stand-in for the query.
// fetch never returns an empty slice and never returns an error.
func (service *Service) fetch(ctx context.Context, query string) []Video {
	items, err := service.provider.Search(ctx, query)
	if err != nil {
		service.logger.Warn("provider_search_failed",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)

		return []Video{SyntheticFor(query)}
	}

	videos := make([]Video, 0, len(items))
	for _, item := range items {
		if !IsSafe(item.Title, item.Description, item.ChannelTitle) {
			continue
		}

		videos = append(videos, normalize(item, query))
	}

	if len(videos) == 0 {
		service.logger.Warn("provider_returned_no_safe_results",
			slog.String("query", query),
		)

		return []Video{SyntheticFor(query)}
	}

	return videos
}

// Dedupe drops later entries whose title exactly matches an earlier entry's
// title. First occurrence wins; the match is case-sensitive.
func Dedupe(videos []Video) []Video {
	seen := make(map[string]struct{}, len(videos))
	unique := make([]Video, 0, len(videos))

	for _, video := range videos {
		if _, duplicate := seen[video.Title]; duplicate {
			continue
		}

		seen[video.Title] = struct{}{}
		unique = append(unique, video)
	}

	return unique
}

// Rank stably sorts Child-Safe entries ahead of everything else. There is
// no secondary key; ties keep their prior relative order.
func Rank(videos []Video) []Video {
	sort.SliceStable(videos, func(left, right int) bool {
		return videos[left].SafetyRating == SafetyRatingChildSafe &&
			videos[right].SafetyRating != SafetyRatingChildSafe
	})

	return videos
}

/*
Respond runs the full pipeline for one search request.

# Flow

 1. Pick the single best query via [SelectQuery].
 2. Search the provider and screen results, degrading to a synthetic
    stand-in on any provider failure.
 3. Deduplicate by title, keep only safe educational entries, rank
    Child-Safe first, then truncate to the response cap.

# Degradation

A panic anywhere in the chain resolves to the curated catalog rather than
propagating. The recommendation surface has exactly two hard failures, and
both live in the HTTP handler, not here.

Parameters:
  - ctx: request context, bounds the provider call.
  - candidates: the request's own search queries.
  - analysis: optional upstream child analysis, may be nil.

Returns:
  - A complete, always-successful response.
*/
func (service *Service) Respond(ctx context.Context, candidates []string, analysis *ChildAnalysis) (response Response) {
	defer func() {
		if recovered := recover(); recovered != nil {
			service.logger.Error("recommendation_pipeline_panic",
				slog.Any("panic", recovered),
			)

			response = CuratedResponse()
		}
	}()

	query := SelectQuery(candidates, analysis)

	service.logger.Info("recommendation_query_selected",
		slog.String("query", query),
	)

	videos := Rank(filterEducational(Dedupe(service.fetch(ctx, query))))

	totalFound := len(videos)
	if totalFound > constants.MaxRecommendations {
		videos = videos[:constants.MaxRecommendations]
	}

	var ranking *QueryRanking
	if analysis != nil {
		ranking = analysis.QueryRanking
	}

	return Response{
		Success:       true,
		Videos:        videos,
		TotalFound:    totalFound,
		SelectedQuery: query,
		QueryRanking:  ranking,
		SearchQueries: []string{query},
		Note:          selectionNote(query, ranking),
	}
}

// filterEducational keeps only entries flagged both age-appropriate and
// educational. Synthetic and curated entries always pass.
func filterEducational(videos []Video) []Video {
	kept := videos[:0]
	for _, video := range videos {
		if video.AgeAppropriate && video.Educational {
			kept = append(kept, video)
		}
	}

	return kept
}

// selectionNote describes how the served query was chosen.
func selectionNote(query string, ranking *QueryRanking) string {
	if ranking == nil {
		return fmt.Sprintf("Results focused on: %q", query)
	}

	score := "N/A"
	if len(ranking.RankedQueries) > 0 {
		score = fmt.Sprintf("%v", ranking.RankedQueries[0].Score)
	}

	return fmt.Sprintf("AI selected: %q (Score: %s)", query, score)
}
