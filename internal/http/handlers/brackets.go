package handlers

import (
	"net/http"
	"strconv"

	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/session"
)

func CreateBracketHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req session.BracketRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		isDryRun := IsDryRunFromContext(r)
		rec, err := svc.GenerateBracket(r.Context(), req, isDryRun)
		if err != nil {
			writeError(w, "Failed to generate bracket", err)
			return
		}
		status := http.StatusCreated
		if isDryRun {
			status = http.StatusOK
		}
		writeJSON(w, status, rec)
	}
}

func ListBracketsHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.ListBrackets()
		if err != nil {
			writeError(w, "Failed to list brackets", err)
			return
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

func GetBracketHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetBracket(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get bracket", err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func DeleteBracketHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteBracket(r.PathValue("id")); err != nil {
			writeError(w, "Failed to delete bracket", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// SetScoreHandler records one side's score of a match.
// Body: {"side": "team1", "score": 6, "version": 3}. Version is optional.
func SetScoreHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, ok := pathInt(w, r, "round")
		if !ok {
			return
		}
		match, ok := pathInt(w, r, "match")
		if !ok {
			return
		}
		var body struct {
			Side    bracket.Side `json:"side"`
			Score   int          `json:"score"`
			Version int          `json:"version"`
		}
		if !decodeJSON(w, r, &body) {
			return
		}
		rec, err := svc.SetScore(r.Context(), r.PathValue("id"), session.ScoreUpdate{
			Round:   round,
			Match:   match,
			Side:    body.Side,
			Score:   body.Score,
			Version: body.Version,
		}, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to set score", err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// AdvanceWinnersHandler moves the winners of a round forward. An optional
// ?version= pins the update to that bracket version.
func AdvanceWinnersHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		round, ok := pathInt(w, r, "round")
		if !ok {
			return
		}
		version := 0
		if v := r.URL.Query().Get("version"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 1 {
				http.Error(w, "Invalid version", http.StatusBadRequest)
				return
			}
			version = parsed
		}
		rec, err := svc.AdvanceWinners(r.Context(), r.PathValue("id"), round, version, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, "Failed to advance winners", err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}
