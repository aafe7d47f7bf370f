// Copyright (c) 2026 Emoticam. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recommend_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/emoticam/internal/recommend"
)

func newTestHandler(provider *stubProvider) http.Handler {
	return recommend.NewHandler(newTestPipeline(provider)).Routes()
}

func doSearch(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	return recorder
}

/*
TestHandler_Search_MissingQueries verifies the missing-array request is the
handler's hard 400, distinct from an empty-but-present array.
*/
func TestHandler_Search_MissingQueries(t *testing.T) {
	handler := newTestHandler(&stubProvider{configured: true})

	tests := []struct {
		name string
		body string
		want int
	}{
		{"no_body_fields", `{}`, http.StatusBadRequest},
		{"null_queries", `{"searchQueries": null}`, http.StatusBadRequest},
		{"malformed_json", `{"searchQueries": [`, http.StatusBadRequest},
		{"empty_array_is_accepted", `{"searchQueries": []}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doSearch(t, handler, tt.body)
			assert.Equal(t, tt.want, recorder.Code)
		})
	}
}

/*
TestHandler_Search_WrongMethod documents that only POST is routed; the router
answers anything else with 405.
*/
func TestHandler_Search_WrongMethod(t *testing.T) {
	handler := newTestHandler(&stubProvider{configured: true})

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusMethodNotAllowed, recorder.Code)
}

/*
TestHandler_Search_Unconfigured verifies a missing provider credential is an
explicit 500, not a silent degradation to curated content.
*/
func TestHandler_Search_Unconfigured(t *testing.T) {
	handler := newTestHandler(&stubProvider{configured: false})

	recorder := doSearch(t, handler, `{"searchQueries": ["counting"]}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	assert.NotEmpty(t, payload["error"])
}

/*
TestHandler_Search_Success covers the full happy path and pins the raw
response shape the dashboard consumes.
*/
func TestHandler_Search_Success(t *testing.T) {
	provider := &stubProvider{
		configured: true,
		items: []recommend.SearchItem{
			{
				VideoID:       "vid-1",
				Title:         "Learn counting with trains",
				ChannelTitle:  "Number Friends",
				ThumbnailHigh: "https://example.com/high.jpg",
			},
		},
	}
	handler := newTestHandler(provider)

	recorder := doSearch(t, handler, `{"searchQueries": ["counting for kids"]}`)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response recommend.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.True(t, response.Success)
	assert.Equal(t, "counting for kids", response.SelectedQuery)
	assert.Equal(t, []string{"counting for kids"}, response.SearchQueries)
	require.Len(t, response.Videos, 1)
	assert.Equal(t, "vid-1", response.Videos[0].VideoID)
	assert.Equal(t, "https://example.com/high.jpg", response.Videos[0].Thumbnail)

	// Raw shape check: the recommendation endpoint does not use the generic
	// data envelope, so top-level keys must be the contract fields.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &raw))
	assert.Contains(t, raw, "success")
	assert.Contains(t, raw, "videos")
	assert.Contains(t, raw, "totalFound")
	assert.NotContains(t, raw, "data")
}

/*
TestHandler_Search_AnalysisDriven verifies the analysis payload steers query
selection end to end through the HTTP surface.
*/
func TestHandler_Search_AnalysisDriven(t *testing.T) {
	provider := &stubProvider{configured: true}
	handler := newTestHandler(provider)

	body := `{
		"searchQueries": ["plain candidate"],
		"childAnalysis": {
			"queryRanking": {
				"bestMatch": "dinosaur songs",
				"rankedQueries": [{"query": "dinosaur songs", "score": 0.92}]
			}
		}
	}`

	recorder := doSearch(t, handler, body)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response recommend.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))

	assert.Equal(t, "dinosaur songs", response.SelectedQuery)
	assert.Equal(t, "dinosaur songs", provider.lastQuery)
	require.NotNil(t, response.QueryRanking)
	assert.Equal(t, "dinosaur songs", response.QueryRanking.BestMatch)
}
