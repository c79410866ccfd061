package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-dashboard/internal/entity"
)

func TestClientSearchDecodesSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search/TCS", r.URL.Path)
		fmt.Fprint(w, `{
			"symbol": "TCS",
			"exchange": "NSE",
			"current_price": 4150.5,
			"previous_close": 4100,
			"change": 50.5,
			"change_percent": 1.23,
			"volume": 1200000,
			"week_52_low": 3300,
			"week_52_high": 4500,
			"historical_data": [
				{"date": "2026-08-27", "close": 4100},
				{"date": "2026-08-28", "close": 4150.5}
			]
		}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	snapshot, err := c.Search(context.Background(), "TCS")

	require.NoError(t, err)
	assert.Equal(t, "TCS", snapshot.Symbol)
	assert.InDelta(t, 4150.5, snapshot.CurrentPrice, 0.001)
	require.Len(t, snapshot.Historical, 2)
	assert.Equal(t, "2026-08-28", snapshot.Historical[1].Date)
}

func TestClientSearchCarriesServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "Stock not found"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	_, err := c.Search(context.Background(), "NOSUCH")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Stock not found", apiErr.Message)
	assert.Equal(t, "Stock not found", apiErr.Error())
}

func TestClientErrorWithoutBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	_, err := c.Search(context.Background(), "TCS")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, apiErr.Error(), "502")
}

func TestClientSuggestEscapesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/suggest", r.URL.Path)
		assert.Equal(t, "tata steel", r.URL.Query().Get("q"))
		fmt.Fprint(w, `[{"symbol": "TATASTEEL", "exchange": "NSE", "name": "Tata Steel"}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	items, err := c.Suggest(context.Background(), "tata steel")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "TATASTEEL", items[0].Symbol)
}

func TestClientRecommendationsPostsProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/recommendations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var profile entity.UserProfile
		require.NoError(t, json.NewDecoder(r.Body).Decode(&profile))
		assert.Equal(t, int64(150000), profile.Budget)

		fmt.Fprint(w, `[{"symbol": "TCS", "current_price": 4150.5, "shares_affordable": 36,
			"recommendation": {"score": 70, "rating": "Strong Buy", "reasons": [], "risk_level": "Low", "risk_match": true}}]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second)

	profile := entity.DefaultProfile()
	profile.Budget = 150000
	results, err := c.Recommendations(context.Background(), profile)

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "TCS", results[0].Symbol)
	assert.Equal(t, int64(36), results[0].SharesAffordable)
	assert.Equal(t, 70, results[0].Recommendation.Score)
}

func TestClientNetworkErrorIsNotAPIError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 100*time.Millisecond)

	_, err := c.Search(context.Background(), "TCS")

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
