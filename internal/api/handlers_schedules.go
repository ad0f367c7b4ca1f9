package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := s.orchestrator.Store().ListSchedules(r.Context())
	if err != nil {
		s.log.Error("list schedules failed", "error", err)
		jsonError(w, "failed to list schedules", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"schedules": schedules})
}

func (s *Server) handleScheduleRecords(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	meta, err := s.orchestrator.Store().GetSchedule(r.Context(), scheduleID)
	if err != nil {
		s.log.Error("get schedule failed", "schedule_id", scheduleID, "error", err)
		jsonError(w, "failed to load schedule", http.StatusInternalServerError)
		return
	}
	if meta == nil {
		jsonError(w, "schedule not found", http.StatusNotFound)
		return
	}

	limit := queryInt(r, "limit", 100)
	offset := queryInt(r, "offset", 0)

	records, err := s.orchestrator.Store().Records(r.Context(), scheduleID, limit, offset)
	if err != nil {
		s.log.Error("load records failed", "schedule_id", scheduleID, "error", err)
		jsonError(w, "failed to load records", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"schedule_id": scheduleID,
		"total":       meta.RecordCount,
		"offset":      offset,
		"records":     records,
	})
}

func (s *Server) handleScheduleTree(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	meta, err := s.orchestrator.Store().GetSchedule(r.Context(), scheduleID)
	if err != nil {
		s.log.Error("get schedule failed", "schedule_id", scheduleID, "error", err)
		jsonError(w, "failed to load schedule", http.StatusInternalServerError)
		return
	}
	if meta == nil {
		jsonError(w, "schedule not found", http.StatusNotFound)
		return
	}

	forest, err := s.orchestrator.Store().LoadForest(scheduleID)
	if err != nil {
		s.log.Error("load forest failed", "schedule_id", scheduleID, "error", err)
		jsonError(w, "failed to load tree", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"schedule_id": scheduleID,
		"roots":       forest,
	})
}

func (s *Server) handleDeleteSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	meta, err := s.orchestrator.Store().GetSchedule(r.Context(), scheduleID)
	if err != nil {
		s.log.Error("get schedule failed", "schedule_id", scheduleID, "error", err)
		jsonError(w, "failed to load schedule", http.StatusInternalServerError)
		return
	}
	if meta == nil {
		jsonError(w, "schedule not found", http.StatusNotFound)
		return
	}

	if err := s.orchestrator.Store().DeleteSchedule(r.Context(), scheduleID); err != nil {
		s.log.Error("delete schedule failed", "schedule_id", scheduleID, "error", err)
		jsonError(w, "failed to delete schedule", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": scheduleID})
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}
