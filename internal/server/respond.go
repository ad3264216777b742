package server

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// errorResponse is the JSON shape of every error reply.
type errorResponse struct {
	Error string `json:"error"`
}

// resultsPage is the JSON shape of a paginated results reply.
type resultsPage[T any] struct {
	// Total is the number of results after filtering, before paging.
	Total int `json:"total"`

	// Page is the 1-based page number. Zero when paging is off.
	Page int `json:"page"`

	// PerPage is the page size. Zero means all results in one page.
	PerPage int `json:"per_page"`

	Results []T `json:"results"`
}

// respondJSON writes v as a JSON response with the given status code.
func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// respondError writes a JSON error reply.
func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, errorResponse{Error: msg})
}

// queryInt reads an integer query parameter, returning def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// pageParams reads and validates page and per_page query parameters.
// per_page of zero disables paging and returns every result.
func pageParams(r *http.Request) (page, perPage int, ok bool) {
	page, err := queryInt(r, "page", 1)
	if err != nil || page < 1 {
		return 0, 0, false
	}
	perPage, err = queryInt(r, "per_page", 0)
	if err != nil || perPage < 0 {
		return 0, 0, false
	}
	return page, perPage, true
}

// paginate slices items down to the requested page.
// A perPage of zero returns all items unchanged.
func paginate[T any](items []T, page, perPage int) []T {
	if perPage <= 0 {
		return items
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// newResultsPage assembles the paginated reply for filtered results.
func newResultsPage[T any](filtered []T, page, perPage int) resultsPage[T] {
	paged := paginate(filtered, page, perPage)
	if paged == nil {
		paged = []T{}
	}
	out := resultsPage[T]{
		Total:   len(filtered),
		PerPage: perPage,
		Results: paged,
	}
	if perPage > 0 {
		out.Page = page
	}
	return out
}
