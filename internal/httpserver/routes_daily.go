// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes two endpoints under /daily:
//   - POST /daily             → start (or resume) today's board
//   - GET  /daily/leaderboard → top 20 winners for today (or ?date=YYYY-MM-DD)
//
// Each player gets one finished round per day (enforced by the DB row).
// The board itself is an ordinary session whose only target is the day's word,
// so letter/backspace/submit go through /sessions/{id}/*.

package httpserver

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/board/internal/daily"
	"github.com/robalobadob/wordle/apps/board/internal/game"
)

// dailyServer tracks which session each player is using today.
type dailyServer struct {
	mu     sync.Mutex
	active map[string]dailyEntry // player|date
}

// dailyEntry is a player's board for the day. started is fixed on the first
// POST /daily and reused for every token issued afterwards.
type dailyEntry struct {
	sessionID string
	started   time.Time
}

func (s *Server) mountDaily() {
	s.daily = &dailyServer{active: make(map[string]dailyEntry)}
	s.r.Route("/daily", func(r chi.Router) {
		r.Post("/", s.handleDailyStart)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

// handleDailyStart creates or resumes the caller's board for today.
//   - A stored result for today → 409 already_played.
//   - A live session for today → same session, fresh token, same start time.
//   - Otherwise a new session bound to the day's puzzle.
func (s *Server) handleDailyStart(w http.ResponseWriter, r *http.Request) {
	pid := s.ensurePlayerID(w, r)
	p, err := daily.PuzzleFor(s.opts.Now(), s.opts.DailySalt, s.opts.Bank)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("daily puzzle")
		writeError(w, http.StatusInternalServerError, "no_words")
		return
	}

	if s.opts.Daily != nil {
		played, err := s.opts.Daily.AlreadyPlayed(r.Context(), pid, p.Date)
		if err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("daily lookup")
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		if played {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "already_played", "date": p.Date})
			return
		}
	}

	claims := sessionClaims{Daily: p.Date, WordIndex: p.WordIndex}
	key := pid + "|" + p.Date

	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()
	for k := range s.daily.active {
		if !strings.HasSuffix(k, "|"+p.Date) {
			delete(s.daily.active, k)
		}
	}

	entry, ok := s.daily.active[key]
	if ok {
		var snap game.Snapshot
		err := s.opts.Sessions.Update(r.Context(), entry.sessionID, func(g *game.Session) error {
			snap = g.Snapshot()
			return nil
		})
		if err == nil {
			claims.SessionID = entry.sessionID
			claims.Subject = pid
			claims.Started = entry.started.UnixMilli()
			tok, exp, err := s.signSessionToken(claims)
			if err != nil {
				writeError(w, http.StatusInternalServerError, "sign_failed")
				return
			}
			writeJSON(w, http.StatusOK, createRes{Token: tok, ExpiresAt: exp.Unix(), Session: snap})
			return
		}
		// evicted by the sweeper; a new board keeps the original start time
	} else {
		entry.started = s.opts.Now()
	}

	g := game.NewSession(daily.NewSource(s.opts.Bank, p), game.WithMaxAttempts(s.opts.MaxAttempts))
	entry.sessionID = g.ID()
	s.daily.active[key] = entry
	claims.SessionID = g.ID()
	claims.Started = entry.started.UnixMilli()
	s.startSession(w, r, g, claims, pid)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleDailyLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.opts.Daily == nil {
		writeError(w, http.StatusServiceUnavailable, "daily_disabled")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.opts.Now())
	}
	rows, err := s.opts.Daily.Leaderboard(r.Context(), date, 20)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
