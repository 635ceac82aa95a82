package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrosb/memory/internal/score"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := score.NewFileStore(filepath.Join(t.TempDir(), "scores.json"))
	return New(st)
}

func doRequest(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func submitBody(name string, time, accuracy float64) map[string]any {
	return map[string]any{
		"playerName": name,
		"timeSpent":  time,
		"accuracy":   accuracy,
		"boardSize":  "4x4",
		"cardType":   "animals",
	}
}

func TestSubmitScoreReturnsRank(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/scores", submitBody("Existing", 12, 0.9))
	require.Equal(t, http.StatusCreated, rec.Code)

	var res struct {
		Score score.Score `json:"score"`
		Rank  int         `json:"rank"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 1, res.Rank)
	require.Equal(t, 1, res.Score.ID)

	// A faster submission takes rank 1 ahead of the existing record.
	rec = doRequest(t, srv, http.MethodPost, "/api/scores", submitBody("Ada", 10, 1.0))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 1, res.Rank)
	require.Equal(t, 2, res.Score.ID)
}

func TestSubmitScoreRejectsMissingFields(t *testing.T) {
	srv := newTestServer(t)

	bodies := []map[string]any{
		{},
		{"playerName": "Ada", "accuracy": 0.9, "boardSize": "4x4", "cardType": "animals"},        // no timeSpent
		{"playerName": "Ada", "timeSpent": 10.0, "boardSize": "4x4", "cardType": "animals"},      // no accuracy
		{"playerName": "Ada", "timeSpent": 10.0, "accuracy": 0.9, "cardType": "animals"},         // no boardSize
		{"playerName": "Ada", "timeSpent": 10.0, "accuracy": 0.9, "boardSize": "4x4"},            // no cardType
		{"timeSpent": 10.0, "accuracy": 0.9, "boardSize": "4x4", "cardType": "animals"},          // no playerName
	}
	for _, body := range bodies {
		rec := doRequest(t, srv, http.MethodPost, "/api/scores", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body %v", body)
	}
}

func TestSubmitScoreRejectsInvalidValues(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/scores", submitBody("Ada", 10, 1.5))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/scores", submitBody("Ada", -1, 0.9))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/scores", bytes.NewBufferString("{not json"))
	rw := httptest.NewRecorder()
	srv.Router().ServeHTTP(rw, req)
	require.Equal(t, http.StatusBadRequest, rw.Code)
}

func TestListScores(t *testing.T) {
	srv := newTestServer(t)
	doRequest(t, srv, http.MethodPost, "/api/scores", submitBody("Slow", 30, 0.8))
	doRequest(t, srv, http.MethodPost, "/api/scores", submitBody("Fast", 10, 1.0))

	rec := doRequest(t, srv, http.MethodGet, "/api/scores?boardSize=4x4&cardType=animals", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Scores     []score.Score  `json:"scores"`
		Pagination score.PageInfo `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 2, res.Pagination.Total)
	require.Equal(t, 10, res.Pagination.Limit)
	require.Len(t, res.Scores, 2)
	require.Equal(t, "Fast", res.Scores[0].PlayerName)

	// Explicit pagination params are honored.
	rec = doRequest(t, srv, http.MethodGet, "/api/scores?limit=1&page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 2, res.Pagination.Pages)
	require.Len(t, res.Scores, 1)
	require.Equal(t, "Slow", res.Scores[0].PlayerName)
}

func TestGetScoreByID(t *testing.T) {
	srv := newTestServer(t)
	doRequest(t, srv, http.MethodPost, "/api/scores", submitBody("Ada", 10, 1.0))

	rec := doRequest(t, srv, http.MethodGet, "/api/scores/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sc score.Score
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sc))
	require.Equal(t, "Ada", sc.PlayerName)

	rec = doRequest(t, srv, http.MethodGet, "/api/scores/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/scores/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConfigEndpoint(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/api/config", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res configRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.BoardSizes, 6)
	require.Len(t, res.CardTypes, 2)
	require.Equal(t, "animals", res.CardTypes[0].Type)
	require.Len(t, res.CardTypes[0].Cards, 16)
}

func TestHealthAndNotFound(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "not_found")
}
