package httpserver

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func TestRemoteIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.9:5555"
	if got := remoteIP(r); got != "10.0.0.9" {
		t.Fatalf("remote addr: %q", got)
	}
	r.Header.Set("X-Real-IP", "10.0.0.2")
	if got := remoteIP(r); got != "10.0.0.2" {
		t.Fatalf("x-real-ip: %q", got)
	}
	r.Header.Set("X-Forwarded-For", " 1.2.3.4 , 5.6.7.8")
	if got := remoteIP(r); got != "1.2.3.4" {
		t.Fatalf("xff: %q", got)
	}
}

func TestInstrument_ProbesLogAtDebug(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.InfoLevel)

	m := chi.NewRouter()
	m.Use(Instrument(l))
	m.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	m.Get("/boom", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/healthz", nil))
	if buf.Len() != 0 {
		t.Fatalf("probe should not log at info: %s", buf.String())
	}

	m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/boom", nil))
	out := buf.String()
	if !strings.Contains(out, `"route":"/boom"`) || !strings.Contains(out, `"status":418`) {
		t.Fatalf("unexpected log line: %s", out)
	}
}
