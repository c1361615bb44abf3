// Package fakeapi is an in-process stand-in for the club backend. Tests
// program per-route responses and inspect the recorded requests.
package fakeapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// BasePath is the API prefix served by the fake.
const BasePath = "/api/v1"

// Route names, "METHOD path" relative to BasePath.
const (
	RouteLogin          = "POST /login"
	RouteSignup         = "POST /login/signup"
	RouteChangePassword = "PATCH /login/password"
	RouteVerify         = "POST /verify"
	RouteMailSend       = "POST /mail/send"
	RouteMailVerify     = "POST /mail/verify"
	RouteMailUpdate     = "POST /mail/update"
)

// Request is one recorded call.
type Request struct {
	Route  string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Decode unmarshals the recorded JSON body into v.
func (r Request) Decode(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode %s body %q: %v", r.Route, r.Body, err)
	}
}

type Server struct {
	srv *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []Request
}

// New starts a fake backend that is closed when t finishes. Routes answer
// 501 until programmed with Handle.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{handlers: make(map[string]http.HandlerFunc)}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route(BasePath, func(r chi.Router) {
		r.Post("/login", s.dispatch(RouteLogin))
		r.Post("/login/signup", s.dispatch(RouteSignup))
		r.Patch("/login/password", s.dispatch(RouteChangePassword))
		r.Post("/verify", s.dispatch(RouteVerify))
		r.Post("/mail/send", s.dispatch(RouteMailSend))
		r.Post("/mail/verify", s.dispatch(RouteMailVerify))
		r.Post("/mail/update", s.dispatch(RouteMailUpdate))
	})

	s.srv = httptest.NewServer(r)
	t.Cleanup(s.srv.Close)
	return s
}

// BaseURL is the API root to hand to the client.
func (s *Server) BaseURL() string {
	return s.srv.URL + BasePath
}

// Close stops the server early, making later calls fail at the transport.
func (s *Server) Close() {
	s.srv.Close()
}

// Handle programs the response of route.
func (s *Server) Handle(route string, h http.HandlerFunc) {
	s.mu.Lock()
	s.handlers[route] = h
	s.mu.Unlock()
}

// Requests returns every recorded call in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Calls returns the recorded calls of route.
func (s *Server) Calls(route string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Route == route {
			out = append(out, r)
		}
	}
	return out
}

// Last returns the most recent call of route.
func (s *Server) Last(t testing.TB, route string) Request {
	t.Helper()
	calls := s.Calls(route)
	if len(calls) == 0 {
		t.Fatalf("no %s request recorded", route)
	}
	return calls[len(calls)-1]
}

func (s *Server) dispatch(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Route:  route,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		h := s.handlers[route]
		s.mu.Unlock()

		if h == nil {
			JSON(http.StatusNotImplemented, map[string]string{"message": "not programmed: " + route})(w, r)
			return
		}
		h(w, r)
	}
}

// JSON answers with status and v encoded as JSON.
func JSON(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

// Raw answers with status and a verbatim body.
func Raw(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// Status answers with an empty body.
func Status(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	}
}

// WithHeader sets a response header before delegating to h.
func WithHeader(key, value string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(key, value)
		h(w, r)
	}
}
