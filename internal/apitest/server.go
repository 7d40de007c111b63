// Package apitest provides a fake staffing API for tests.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Call is one request received by the fake API.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Auth   string
	Body   []byte
}

// JSON decodes the call body into a generic map.
func (c Call) JSON() map[string]any {
	out := map[string]any{}
	_ = json.Unmarshal(c.Body, &out)
	return out
}

// Responder produces the status and JSON body for a call.
type Responder func(call Call) (int, any)

// Server records every call and answers with configured responders.
// Unconfigured routes answer 404 with a message.
type Server struct {
	*httptest.Server

	mu         sync.Mutex
	calls      []Call
	responders map[string]Responder
}

// NewServer starts a fake API. Callers must Close it.
func NewServer() *Server {
	s := &Server{responders: map[string]Responder{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

// Handle answers method+path with a fixed status and body.
func (s *Server) Handle(method, path string, status int, body any) {
	s.HandleFunc(method, path, func(Call) (int, any) { return status, body })
}

// HandleFunc answers method+path with fn.
func (s *Server) HandleFunc(method, path string, fn Responder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responders[method+" "+path] = fn
}

// Calls returns a copy of every recorded call.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsTo returns the recorded calls for method+path.
func (s *Server) CallsTo(method, path string) []Call {
	var out []Call
	for _, call := range s.Calls() {
		if call.Method == method && call.Path == path {
			out = append(out, call)
		}
	}
	return out
}

// Reset forgets recorded calls but keeps responders.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	call := Call{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	fn, ok := s.responders[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	status, payload := http.StatusNotFound, any(map[string]string{"message": "not found"})
	if ok {
		status, payload = fn(call)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// MintToken signs a token carrying role and exp, as the staffing API would.
func MintToken(role string, exp time.Time) string {
	claims := jwt.MapClaims{"role": role, "exp": exp.Unix(), "email": role + "@example.test"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("apitest-secret"))
	if err != nil {
		panic(err)
	}
	return token
}

// ValidToken mints a token for role that expires in an hour.
func ValidToken(role string) string {
	return MintToken(role, time.Now().Add(time.Hour))
}

// ExpiredToken mints a token for role that expired a minute ago.
func ExpiredToken(role string) string {
	return MintToken(role, time.Now().Add(-time.Minute))
}
