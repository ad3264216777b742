package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/linkaudit/linkaudit/internal/checker"
	"github.com/linkaudit/linkaudit/internal/input"
	"github.com/linkaudit/linkaudit/internal/model"
)

// linkCheckStartRequest is the body of POST /api/link-check/start.
// Threads and Timeout are optional overrides in whole seconds.
type linkCheckStartRequest struct {
	CSV     string `json:"csv"`
	Threads int    `json:"threads"`
	Timeout int    `json:"timeout"`
}

// handleLinkCheckStart parses the submitted CSV and launches a run.
func (s *Server) handleLinkCheckStart(w http.ResponseWriter, r *http.Request) {
	var req linkCheckStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rows := input.ParseRows(strings.NewReader(req.CSV))
	if len(rows) == 0 {
		s.respondError(w, http.StatusBadRequest, "No valid rows found in CSV")
		return
	}

	concurrency, timeout := s.runSettings(req.Threads, req.Timeout)
	if err := s.links.Run(s.runCtx, rows, concurrency, timeout); err != nil {
		if errors.Is(err, checker.ErrAlreadyRunning) {
			s.respondError(w, http.StatusConflict, "Link check already in progress")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"status": "started",
		"count":  len(rows),
	})
}

// handleLinkCheckStatus reports live progress of the current or last run.
func (s *Server) handleLinkCheckStatus(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, s.links.Tracker().Snapshot())
}

// handleLinkCheckResults returns finished results with optional status
// filtering and pagination.
func (s *Server) handleLinkCheckResults(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	switch filter {
	case "", "all", model.StatusOK, model.StatusAnchorMismatch, model.StatusLinkNotFound, model.StatusFetchError:
	default:
		s.respondError(w, http.StatusBadRequest, "unknown status filter: "+filter)
		return
	}
	if filter == "all" {
		filter = ""
	}

	page, perPage, ok := pageParams(r)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "invalid pagination parameters")
		return
	}

	results := s.links.Tracker().Results()
	if filter != "" {
		filtered := make([]model.LinkCheckResult, 0, len(results))
		for _, res := range results {
			if res.Status == filter {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}

	s.respondJSON(w, http.StatusOK, newResultsPage(results, page, perPage))
}

// handleLinkCheckStop requests the current run to stop.
// The stop is advisory: in-flight fetches finish, queued ones are dropped.
func (s *Server) handleLinkCheckStop(w http.ResponseWriter, _ *http.Request) {
	if !s.links.Tracker().Running() {
		s.respondError(w, http.StatusBadRequest, "no link check in progress")
		return
	}
	s.links.Tracker().Stop()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}
