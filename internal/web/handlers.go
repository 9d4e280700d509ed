package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"connlogger/internal/models"
)

// handleStatus returns the latest summary per host.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	latest, err := s.store.Latest()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, statusSnapshot{
		Title:       s.title,
		GeneratedAt: time.Now().UTC(),
		Hosts:       latest,
	})
}

// handleSummaries returns summaries for a time range, optionally filtered
// by host address.
func (s *Server) handleSummaries(w http.ResponseWriter, r *http.Request) {
	hours := queryInt(r, "hours", 24)
	filter := models.QueryFilter{
		HostAddress: r.URL.Query().Get("host"),
		Since:       time.Now().UTC().Add(-time.Duration(hours) * time.Hour),
	}

	summaries, err := s.store.Query(filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, summaries)
}

// handleHosts lists every host with recorded data.
func (s *Server) handleHosts(w http.ResponseWriter, _ *http.Request) {
	hosts, err := s.store.MonitoredHosts()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, hosts)
}

// handleOutages returns recent outage events.
func (s *Server) handleOutages(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 7)
	outages, err := s.store.RecentOutages(days)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, outages)
}

type statusSnapshot struct {
	Title       string                `json:"title"`
	GeneratedAt time.Time             `json:"generated_at"`
	Hosts       []models.ProbeSummary `json:"hosts"`
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
