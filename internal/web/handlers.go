package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/teistermask/internal/core"
)

// healthTimeout bounds the store ping of /healthz.
const healthTimeout = 2 * time.Second

// Response headers carrying the import summary next to the plain-text log.
const (
	headerBatchID  = "X-Import-Batch"
	headerAccepted = "X-Import-Accepted"
	headerRejected = "X-Import-Rejected"
)

// handleImport reads a raw batch document and returns the import log.
// The log is text/plain unless the client asks for JSON.
func (s *Server) handleImport(kind core.ImportKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Import.MaxBatchSize)
		batch, err := io.ReadAll(r.Body)
		if err != nil {
			s.respondError(w, r, fmt.Errorf("read batch: %w", err))
			return
		}

		ctx := withRequestMetadata(r.Context(), r)

		var result *core.ImportResult
		switch kind {
		case core.KindProjects:
			result, err = s.service.ImportProjects(ctx, batch)
		case core.KindEmployees:
			result, err = s.service.ImportEmployees(ctx, batch)
		}
		if err != nil {
			s.respondError(w, r, err)
			return
		}

		w.Header().Set(headerBatchID, result.BatchID)
		w.Header().Set(headerAccepted, strconv.Itoa(result.Accepted))
		w.Header().Set(headerRejected, strconv.Itoa(result.Rejected))

		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, result)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, result.Log)
	}
}

// handleExportProjects renders the projects-with-tasks report (default XML).
func (s *Server) handleExportProjects(w http.ResponseWriter, r *http.Request) {
	format, err := core.ParseFormat(r.URL.Query().Get("format"), core.FormatXML)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	doc, err := s.service.ExportProjects(r.Context(), format)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeDocument(w, format, doc)
}

// handleExportBusiest renders the busiest-employees report (default JSON).
// Query: date (required), format, limit.
func (s *Server) handleExportBusiest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format, err := core.ParseFormat(q.Get("format"), core.FormatJSON)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	date, err := core.ParseReferenceDate(q.Get("date"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	limit, err := parseLimit(q.Get("limit"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	doc, err := s.service.ExportBusiestEmployees(r.Context(), date, limit, format)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeDocument(w, format, doc)
}

// handleHealth reports whether the store is reachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := s.health.Ping(ctx); err != nil {
		msg := core.MapError(err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "code": msg.Code})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// parseLimit parses the optional limit parameter. Empty means the configured default.
func parseLimit(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit %q must be a positive integer", core.ErrInvalidParameter, v)
	}
	return n, nil
}

func writeDocument(w http.ResponseWriter, format core.Format, doc string) {
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, doc)
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
