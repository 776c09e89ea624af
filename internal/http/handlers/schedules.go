package handlers

import (
	"fmt"
	"net/http"

	"github.com/mauv0809/court-draw/internal/session"
)

func CreateScheduleHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req session.ScheduleRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		isDryRun := IsDryRunFromContext(r)
		rec, err := svc.GenerateSchedule(r.Context(), req, isDryRun)
		if err != nil {
			writeError(w, "Failed to generate schedule", err)
			return
		}
		status := http.StatusCreated
		if isDryRun {
			status = http.StatusOK
		}
		writeJSON(w, status, rec)
	}
}

func ListSchedulesHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := svc.ListSchedules()
		if err != nil {
			writeError(w, "Failed to list schedules", err)
			return
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

func GetScheduleHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := svc.GetSchedule(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to get schedule", err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func DeleteScheduleHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteSchedule(r.PathValue("id")); err != nil {
			writeError(w, "Failed to delete schedule", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ScheduleTextHandler returns the printable rotation.
func ScheduleTextHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text, err := svc.ScheduleText(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to render schedule", err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, text)
	}
}

func ScheduleSummaryHandler(svc *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.ScheduleSummary(r.PathValue("id"))
		if err != nil {
			writeError(w, "Failed to summarize schedule", err)
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}
