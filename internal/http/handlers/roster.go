package handlers

import (
	"net/http"
	"time"

	"github.com/mauv0809/court-draw/internal/session"
)

// RosterHandler lists the players booked at the club on ?date=YYYY-MM-DD, today by default.
func RosterHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			date = time.Now().Format(time.DateOnly)
		}
		roster, err := svc.ImportRoster(r.Context(), date)
		if err != nil {
			writeError(w, "Failed to import roster", err)
			return
		}
		writeJSON(w, http.StatusOK, roster)
	}
}
