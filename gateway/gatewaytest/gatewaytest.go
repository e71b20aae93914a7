// Package gatewaytest provides a scriptable fake provider for tests of
// gateway consumers.
//
//	srv := gatewaytest.New(t, gatewaytest.WithToken("tok"))
//	srv.JSON(http.MethodGet, "/general/Credits", http.StatusOK, []gin.H{{"Amount": 10}})
//
//	gw, _ := gateway.New(gateway.Config{BaseURL: srv.URL(), Token: "tok"})
package gatewaytest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RecordedRequest is a request received by the fake provider.
type RecordedRequest struct {
	Method    string
	Path      string
	RawQuery  string
	Header    http.Header
	Body      []byte
	RequestID string
}

// Server is a gin-backed fake provider.
type Server struct {
	srv    *httptest.Server
	engine *gin.Engine
	token  string

	mu       sync.Mutex
	requests []RecordedRequest
}

// Option configures a Server.
type Option func(*Server)

// WithToken makes every route require "Authorization: Bearer <token>".
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// New starts a fake provider that is closed when the test ends.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{engine: gin.New()}
	for _, opt := range opts {
		opt(s)
	}
	s.engine.Use(s.requestID(), s.record(), s.auth())

	s.srv = httptest.NewServer(s.engine)
	t.Cleanup(s.srv.Close)
	return s
}

// URL returns the base URL of the fake provider.
func (s *Server) URL() string { return s.srv.URL }

// Engine exposes the gin engine for custom routes.
func (s *Server) Engine() *gin.Engine { return s.engine }

// SetToken changes the token the server accepts. Empty disables the check.
func (s *Server) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Handle registers a custom handler.
func (s *Server) Handle(method, path string, h gin.HandlerFunc) {
	s.engine.Handle(method, path, h)
}

// JSON registers a route answering with a JSON body.
func (s *Server) JSON(method, path string, status int, body any) {
	s.engine.Handle(method, path, func(c *gin.Context) {
		c.JSON(status, body)
	})
}

// Text registers a route answering with a raw body and content type.
func (s *Server) Text(method, path string, status int, contentType, body string) {
	s.Bytes(method, path, status, contentType, []byte(body))
}

// Bytes registers a route answering with raw bytes and content type.
func (s *Server) Bytes(method, path string, status int, contentType string, body []byte) {
	s.engine.Handle(method, path, func(c *gin.Context) {
		c.Data(status, contentType, body)
	})
}

// Requests returns a copy of all recorded requests.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

// requestID tags every request and response with an X-Request-Id.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

// record stores the request and restores its body for the handler.
func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			RawQuery:  c.Request.URL.RawQuery,
			Header:    c.Request.Header.Clone(),
			Body:      body,
			RequestID: c.GetString("request_id"),
		})
		s.mu.Unlock()
		c.Next()
	}
}

// auth rejects requests without the expected bearer token using a
// provider-shaped error body.
func (s *Server) auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()
		if token == "" {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, NESError("Unauthorized",
				Entry{Code: "401", Description: "Invalid or missing bearer token"}))
			return
		}
		c.Next()
	}
}
