package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-draw/internal/bracket"
	"github.com/mauv0809/court-draw/internal/schedule"
	"github.com/mauv0809/court-draw/internal/session"
	"github.com/mauv0809/court-draw/internal/store"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn("Failed to decode request body", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// pathInt reads a non-negative integer path value.
func pathInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil || v < 0 {
		http.Error(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return v, true
}

var badRequestErrors = []error{
	schedule.ErrInsufficientParticipants,
	schedule.ErrInvalidCourtCount,
	schedule.ErrInvalidRoundCount,
	schedule.ErrDuplicateParticipant,
	bracket.ErrInsufficientParticipants,
	bracket.ErrNoTeamsConfigured,
	bracket.ErrInvalidGameType,
	bracket.ErrInvalidMode,
	bracket.ErrInvalidTeam,
	bracket.ErrDuplicateParticipant,
	bracket.ErrRoundOutOfRange,
	bracket.ErrMatchOutOfRange,
	bracket.ErrInvalidSide,
	bracket.ErrNegativeScore,
	session.ErrInvalidDate,
}

var conflictErrors = []error{
	store.ErrVersionConflict,
	bracket.ErrTiedMatch,
	bracket.ErrNoNextRound,
	bracket.ErrMatchNotReady,
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, session.ErrRosterUnavailable) {
		return http.StatusServiceUnavailable
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return http.StatusConflict
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, msg string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(msg, "error", err)
		http.Error(w, msg, status)
		return
	}
	log.Warn(msg, "error", err, "status", status)
	http.Error(w, err.Error(), status)
}
