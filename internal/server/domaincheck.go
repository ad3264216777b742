package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linkaudit/linkaudit/internal/checker"
	"github.com/linkaudit/linkaudit/internal/input"
	"github.com/linkaudit/linkaudit/internal/model"
)

// domainCheckStartRequest is the body of POST /api/domain-check/start.
// Domains and Targets accept newline or comma separated lists.
type domainCheckStartRequest struct {
	Domains string `json:"domains"`
	Targets string `json:"targets"`
	Threads int    `json:"threads"`
	Timeout int    `json:"timeout"`
}

// handleDomainCheckStart parses the domain lists and launches a run.
func (s *Server) handleDomainCheckStart(w http.ResponseWriter, r *http.Request) {
	var req domainCheckStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	domains := input.ParseDomainList(req.Domains)
	targets := input.ParseDomainList(req.Targets)
	if len(domains) == 0 {
		s.respondError(w, http.StatusBadRequest, "No referring domains provided")
		return
	}

	concurrency, timeout := s.runSettings(req.Threads, req.Timeout)
	if err := s.domains.Run(s.runCtx, domains, targets, concurrency, timeout); err != nil {
		if errors.Is(err, checker.ErrAlreadyRunning) {
			s.respondError(w, http.StatusConflict, "Domain check already in progress")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":  "started",
		"count":   len(domains),
		"targets": len(targets),
	})
}

// handleDomainCheckStatus reports live progress of the current or last run.
func (s *Server) handleDomainCheckStatus(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, s.domains.Tracker().Snapshot())
}

// handleDomainCheckResults returns finished results. The status filter
// accepts all, ok and error plus has_target and no_target, which select on
// whether any target domain was found among a page's outbound links.
func (s *Server) handleDomainCheckResults(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")
	switch filter {
	case "", "all", model.DomainStatusOK, model.DomainStatusError, "has_target", "no_target":
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

	results := s.domains.Tracker().Results()
	if filter != "" {
		filtered := make([]model.DomainCheckResult, 0, len(results))
		for _, res := range results {
			if domainFilterMatches(res, filter) {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}

	s.respondJSON(w, http.StatusOK, newResultsPage(results, page, perPage))
}

// domainFilterMatches reports whether a result passes the given filter.
func domainFilterMatches(res model.DomainCheckResult, filter string) bool {
	switch filter {
	case "has_target":
		return res.HasTarget()
	case "no_target":
		return !res.HasTarget()
	default:
		return res.Status == filter
	}
}

// handleDomainCheckStop requests the current run to stop.
func (s *Server) handleDomainCheckStop(w http.ResponseWriter, _ *http.Request) {
	if !s.domains.Tracker().Running() {
		s.respondError(w, http.StatusBadRequest, "no domain check in progress")
		return
	}
	s.domains.Tracker().Stop()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}
