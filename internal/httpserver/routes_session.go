// internal/httpserver/routes_session.go
//
// Board endpoints. Each call maps to one key event on a game.Session:
//   - POST   /sessions                 → new session, started (returns token)
//   - GET    /sessions/{id}            → snapshot
//   - POST   /sessions/{id}/letter     → InputLetter
//   - POST   /sessions/{id}/backspace  → InputBackspace
//   - POST   /sessions/{id}/submit     → SubmitRow
//   - POST   /sessions/{id}/new        → NewGame (score kept)
//   - POST   /sessions/{id}/try-again  → TryAgain (score zeroed)
//   - DELETE /sessions/{id}
//
// Calls that the session ignores still answer 200 with applied=false, so a
// client racing its own key handling never sees an error for it.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/board/internal/daily"
	"github.com/robalobadob/wordle/apps/board/internal/game"
	"github.com/robalobadob/wordle/apps/board/internal/store"
	"github.com/robalobadob/wordle/apps/board/internal/words"
)

// errDailyLocked rejects new/try-again/delete on a daily board.
var errDailyLocked = errors.New("daily board cannot be restarted")

func (s *Server) mountSessions() {
	s.r.Post("/sessions", s.handleCreateSession)
	s.r.Route("/sessions/{id}", func(r chi.Router) {
		r.Use(s.requireSessionToken)
		r.Get("/", s.handleGetSession)
		r.Delete("/", s.handleDeleteSession)
		r.Post("/letter", s.handleLetter)
		r.Post("/backspace", s.command(func(g *game.Session) (bool, game.Outcome, error) {
			return g.InputBackspace(), "", nil
		}))
		r.Post("/submit", s.command(func(g *game.Session) (bool, game.Outcome, error) {
			o := g.SubmitRow()
			return o != game.OutcomeIgnored && o != game.OutcomeInvalidWord, o, nil
		}))
		r.Post("/new", s.restart(func(g *game.Session) (bool, error) {
			return true, g.NewGame()
		}))
		r.Post("/try-again", s.restart(func(g *game.Session) (bool, error) {
			if !g.Finished() {
				return false, nil
			}
			return true, g.TryAgain()
		}))
	})
}

// createRes is returned when a session starts.
type createRes struct {
	Token     string        `json:"token"`
	ExpiresAt int64         `json:"expiresAt"`
	Session   game.Snapshot `json:"session"`
}

// commandRes is returned by every key event.
type commandRes struct {
	Applied bool          `json:"applied"`
	Outcome game.Outcome  `json:"outcome,omitempty"`
	Session game.Snapshot `json:"session"`
}

// handleCreateSession starts a free-play board for the caller.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	pid := s.ensurePlayerID(w, r)
	g := game.NewSession(s.opts.Bank, game.WithMaxAttempts(s.opts.MaxAttempts))
	s.startSession(w, r, g, sessionClaims{SessionID: g.ID()}, pid)
}

// startSession starts g, stores it and issues its token.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, g *game.Session, c sessionClaims, pid string) {
	if err := g.Start(); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("start session")
		writeError(w, http.StatusInternalServerError, "no_words")
		return
	}
	if err := s.opts.Sessions.Save(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	c.Subject = pid
	tok, exp, err := s.signSessionToken(c)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	hlog.FromRequest(r).Debug().Str("session", g.ID()).Str("player", pid).Str("daily", c.Daily).Msg("session started")
	writeJSON(w, http.StatusCreated, createRes{Token: tok, ExpiresAt: exp.Unix(), Session: g.Snapshot()})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	var snap game.Snapshot
	err := s.opts.Sessions.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Session) error {
		snap = g.Snapshot()
		return nil
	})
	if err != nil {
		s.sessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleDeleteSession drops a free-play board. Daily boards are locked.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if c := claimsFrom(r.Context()); c != nil && c.Daily != "" {
		s.sessionError(w, r, errDailyLocked)
		return
	}
	if err := s.opts.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.sessionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// letterReq is the payload for POST /sessions/{id}/letter.
type letterReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if utf8.RuneCountInString(req.Letter) != 1 {
		writeError(w, http.StatusBadRequest, "one_letter_expected")
		return
	}
	ch, _ := utf8.DecodeRuneInString(req.Letter)
	s.command(func(g *game.Session) (bool, game.Outcome, error) {
		return g.InputLetter(ch), "", nil
	})(w, r)
}

// command runs fn on the session from the URL and answers with the new snapshot.
// Finished rounds are recorded after the session lock is released.
func (s *Server) command(fn func(*game.Session) (bool, game.Outcome, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var res commandRes
		err := s.opts.Sessions.Update(r.Context(), chi.URLParam(r, "id"), func(g *game.Session) error {
			applied, outcome, err := fn(g)
			if err != nil {
				return err
			}
			res = commandRes{Applied: applied, Outcome: outcome, Session: g.Snapshot()}
			return nil
		})
		if err != nil {
			s.sessionError(w, r, err)
			return
		}
		if res.Outcome == game.OutcomeWon || res.Outcome == game.OutcomeLost {
			s.recordFinish(r, claimsFrom(r.Context()), res.Session)
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// restart wraps NewGame/TryAgain; daily boards are locked to their puzzle.
func (s *Server) restart(fn func(*game.Session) (bool, error)) http.HandlerFunc {
	cmd := s.command(func(g *game.Session) (bool, game.Outcome, error) {
		applied, err := fn(g)
		return applied && err == nil, "", err
	})
	return func(w http.ResponseWriter, r *http.Request) {
		if c := claimsFrom(r.Context()); c != nil && c.Daily != "" {
			s.sessionError(w, r, errDailyLocked)
			return
		}
		cmd(w, r)
	}
}

// recordFinish writes stats and, for daily boards, the day's result.
// Failures are logged; the round result itself is already in the response.
func (s *Server) recordFinish(r *http.Request, c *sessionClaims, snap game.Snapshot) {
	if c == nil {
		return
	}
	logger := hlog.FromRequest(r).With().Str("session", snap.ID).Str("player", c.playerID()).Logger()
	won := snap.State == game.StateWon

	if s.opts.Stats != nil {
		if err := s.opts.Stats.Record(r.Context(), c.playerID(), won, snap.Attempts); err != nil {
			logger.Warn().Err(err).Msg("record stats")
		}
	}
	if c.Daily != "" && s.opts.Daily != nil {
		var elapsed int64
		switch {
		case c.Started > 0:
			elapsed = s.opts.Now().Sub(time.UnixMilli(c.Started)).Milliseconds()
		case c.IssuedAt != nil:
			elapsed = s.opts.Now().Sub(c.IssuedAt.Time).Milliseconds()
		}
		err := s.opts.Daily.InsertResult(r.Context(), daily.Result{
			PlayerID:  c.playerID(),
			Date:      c.Daily,
			WordIndex: c.WordIndex,
			Won:       won,
			Guesses:   snap.Attempts,
			ElapsedMs: elapsed,
		})
		if err != nil && !errors.Is(err, daily.ErrAlreadyPlayed) {
			logger.Warn().Err(err).Msg("record daily result")
		}
	}
	logger.Info().Str("state", string(snap.State)).Int("attempts", snap.Attempts).Int("score", snap.Score).Msg("round finished")
}

// sessionError maps store/session errors to HTTP responses.
func (s *Server) sessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, errDailyLocked):
		writeError(w, http.StatusConflict, "daily_locked")
	case errors.Is(err, words.ErrEmptyBank):
		hlog.FromRequest(r).Error().Err(err).Msg("pick target")
		writeError(w, http.StatusInternalServerError, "no_words")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("session command")
		writeError(w, http.StatusInternalServerError, "server_error")
	}
}
