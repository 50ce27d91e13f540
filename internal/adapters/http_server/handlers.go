// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"travel_reco/internal/app"
)

// Handlers serves diagnostics about the loaded catalog. There is no search
// endpoint; searching happens in the client.
type Handlers struct{ S *app.SearchService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type readiness struct {
	Version   string `json:"version"`
	Beaches   int    `json:"beaches"`
	Temples   int    `json:"temples"`
	Countries int    `json:"countries"`
	Cities    int    `json:"cities"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/readyz", h.ready)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ready reports 503 while the catalog is empty (load failed or nothing staged).
func (h *Handlers) ready(w http.ResponseWriter, r *http.Request) {
	if h.S == nil {
		writeProblem(w, http.StatusServiceUnavailable, "Not Ready", "search service not initialised")
		return
	}
	b, t, co, ci := h.S.Catalog().Counts()
	resp := readiness{Version: h.S.Version(), Beaches: b, Temples: t, Countries: co, Cities: ci}
	if b+t+co == 0 {
		writeProblem(w, http.StatusServiceUnavailable, "Not Ready", "catalog is empty")
		return
	}

	etag, body := calcETagAndBody(resp)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write readyz body")
	}
}
