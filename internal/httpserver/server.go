// internal/httpserver/server.go
//
// HTTP wiring for the memory game backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", GET /api/config.
//   - Leaderboard endpoints: POST /api/scores, GET /api/scores,
//     GET /api/scores/{id}.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled.
//   - Store failures respond with a generic body; detail is logged only.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/hrosb/memory/internal/game"
	"github.com/hrosb/memory/internal/score"
)

// Server bundles the router, the leaderboard store, and the card catalog.
type Server struct {
	r       *chi.Mux
	scores  score.Store
	catalog game.Catalog
}

// New constructs a Server, installs middleware, and registers routes.
func New(scores score.Store) *Server {
	s := &Server{r: chi.NewRouter(), scores: scores, catalog: game.DefaultCatalog()}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"memory-server","endpoints":["/health","GET /api/config","POST /api/scores","GET /api/scores","GET /api/scores/{id}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/api/config", s.handleConfig)
	s.r.Route("/api/scores", func(r chi.Router) {
		r.Post("/", s.handleSubmitScore)
		r.Get("/", s.handleListScores)
		r.Get("/{id}", s.handleGetScore)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:3000.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ CONFIG -------------------------------------

type configRes struct {
	BoardSizes []game.BoardSizeOption `json:"boardSizes"`
	CardTypes  []game.CardType        `json:"cardTypes"`
}

// handleConfig reports the board sizes and card themes the server knows,
// so clients need not hardcode the catalog.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(configRes{
		BoardSizes: game.BoardSizeOptions(),
		CardTypes:  s.catalog.Types(),
	})
}

// ------------------------------ SCORES -------------------------------------

// submitScoreReq uses pointers for the numeric fields so a missing field
// is distinguishable from a submitted zero.
type submitScoreReq struct {
	PlayerName string   `json:"playerName"`
	TimeSpent  *float64 `json:"timeSpent"`
	Accuracy   *float64 `json:"accuracy"`
	BoardSize  string   `json:"boardSize"`
	CardType   string   `json:"cardType"`
}

type submitScoreRes struct {
	Score score.Score `json:"score"`
	Rank  int         `json:"rank"`
}

// handleSubmitScore persists a finished-session result and reports its
// 1-indexed rank within the board-size/card-type cohort.
func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var req submitScoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.PlayerName == "" || req.TimeSpent == nil || req.Accuracy == nil ||
		req.BoardSize == "" || req.CardType == "" {
		http.Error(w, `{"error":"missing required score data"}`, http.StatusBadRequest)
		return
	}

	in := score.CreateInput{
		PlayerName: req.PlayerName,
		TimeSpent:  *req.TimeSpent,
		Accuracy:   *req.Accuracy,
		BoardSize:  req.BoardSize,
		CardType:   req.CardType,
	}
	sc, err := s.scores.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, score.ErrInvalidScoreData) {
			http.Error(w, `{"error":"invalid score data"}`, http.StatusBadRequest)
			return
		}
		log.Error().Err(err).Msg("create score")
		http.Error(w, `{"error":"failed to save score"}`, http.StatusInternalServerError)
		return
	}

	better, err := s.scores.CountBetter(r.Context(), in)
	if err != nil {
		log.Error().Err(err).Msg("rank score")
		http.Error(w, `{"error":"failed to save score"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(submitScoreRes{Score: sc, Rank: better + 1})
}

type listScoresRes struct {
	Scores     []score.Score  `json:"scores"`
	Pagination score.PageInfo `json:"pagination"`
}

// handleListScores returns a ranked page of the leaderboard, optionally
// filtered to one board-size/card-type cohort.
func (s *Server) handleListScores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := score.Filter{
		BoardSize: q.Get("boardSize"),
		CardType:  q.Get("cardType"),
	}
	p := score.Pagination{
		Limit: intQuery(q.Get("limit"), 10),
		Page:  intQuery(q.Get("page"), 1),
	}

	scores, info, err := s.scores.List(r.Context(), filter, p)
	if err != nil {
		log.Error().Err(err).Msg("list scores")
		http.Error(w, `{"error":"failed to retrieve leaderboard scores"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(listScoresRes{Scores: scores, Pagination: info})
}

// handleGetScore returns one score by numeric id.
func (s *Server) handleGetScore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, `{"error":"invalid score id"}`, http.StatusBadRequest)
		return
	}
	sc, err := s.scores.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, score.ErrNotFound) {
			http.Error(w, `{"error":"score not found"}`, http.StatusNotFound)
			return
		}
		log.Error().Err(err).Int("id", id).Msg("get score")
		http.Error(w, `{"error":"failed to retrieve score"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(sc)
}

// ------------------------------- small util --------------------------------

// intQuery parses a positive integer query value, falling back to def.
func intQuery(v string, def int) int {
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
