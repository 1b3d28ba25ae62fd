// Package tunables exposes the scheduler's runtime tunables and statistics
// over HTTP. It is the host-side configuration transport; the scheduler core
// only defines the get/set semantics.
package tunables

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teeterq/teeter/core/sched"
)

type ratioPayload struct {
	SyncRatio int `json:"sync_ratio"`
}

// NewRatioHandler returns an HTTP handler for the sync_ratio tunable:
// GET reads it, PUT replaces it. Out-of-range writes get 422.
func NewRatioHandler(s *sched.Scheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(ratioPayload{SyncRatio: s.SyncRatio()}); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		case http.MethodPut:
			var p ratioPayload
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				http.Error(w, "invalid body", http.StatusBadRequest)
				return
			}
			if err := s.SetSyncRatio(p.SyncRatio); err != nil {
				if errors.Is(err, sched.ErrRatioRange) {
					http.Error(w, err.Error(), http.StatusUnprocessableEntity)
					return
				}
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// NewStatsHandler returns an HTTP handler serving a snapshot of the
// scheduler's counters and queue depths via GET.
func NewStatsHandler(s *sched.Scheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.Stats()); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
