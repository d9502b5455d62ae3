// Package rest implements the HTTP surface of the member portal.
package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"memberportal/internal/service"
	"memberportal/internal/session"
)

type contextKey string

const (
	// DefaultPort is the default port the server listens on.
	DefaultPort = 8080
	// DefaultAddress is the default address the server listens on.
	DefaultAddress = ""
	// DefaultWriteTimeout is the default write timeout for server responses.
	DefaultWriteTimeout = 15 * time.Second
	// DefaultReadTimeout is the default read timeout for incoming requests.
	DefaultReadTimeout = 15 * time.Second

	contextKeyReqID   = contextKey("reqID")
	contextKeySession = contextKey("session")
)

// Server represents the portal HTTP server.
type Server struct {
	*http.Server
	userService service.UserService
	sessions    *session.Manager
	healthCheck func(ctx context.Context) error
}

// NewServer creates a new Server instance.
func NewServer(userService service.UserService, sessions *session.Manager, opts ...ServerOption) *Server {
	server := &Server{
		Server: &http.Server{
			Addr:         DefaultAddress,
			WriteTimeout: DefaultWriteTimeout,
			ReadTimeout:  DefaultReadTimeout,
		},
		userService: userService,
		sessions:    sessions,
	}

	for _, opt := range opts {
		opt(server)
	}

	server.initRoutes()

	return server
}

// ServerOption is a function signature for providing options to configure the Server.
type ServerOption func(*Server)

// WithAddress is an option to set the server address.
func WithAddress(addr string) ServerOption {
	return func(s *Server) {
		s.Addr = addr
	}
}

// WithReadTimeout is an option to set the read timeout for the server.
func WithReadTimeout(timeout time.Duration) ServerOption {
	return func(s *Server) {
		s.ReadTimeout = timeout
	}
}

// WithWriteTimeout is an option to set the write timeout for the server.
func WithWriteTimeout(timeout time.Duration) ServerOption {
	return func(s *Server) {
		s.WriteTimeout = timeout
	}
}

// WithHealthCheck is an option to set the dependency check behind /healthz.
func WithHealthCheck(check func(ctx context.Context) error) ServerOption {
	return func(s *Server) {
		s.healthCheck = check
	}
}

func (s *Server) initRoutes() {
	r := mux.NewRouter()

	r.Use(s.logMiddleware)

	r.HandleFunc("/", s.handleHome).Methods("GET")
	r.HandleFunc("/signup", s.handleSignupForm).Methods("GET")
	r.HandleFunc("/signup", s.handleSignup).Methods("POST")
	r.HandleFunc("/login", s.handleLoginForm).Methods("GET")
	r.HandleFunc("/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/logout", s.handleLogout).Methods("GET")
	r.HandleFunc("/nosql-injection", s.handleLookupDemo).Methods("GET")
	r.HandleFunc("/healthz", s.handleHealthz).Methods("GET")

	r.Handle("/members", s.requireSession(http.HandlerFunc(s.handleMembers))).Methods("GET")

	r.Handle("/admin", s.requireSession(s.requireAdmin(http.HandlerFunc(s.handleAdmin)))).Methods("GET")
	r.Handle("/promote/{id}", s.requireSession(s.requireAdmin(http.HandlerFunc(s.handlePromote)))).Methods("GET")
	r.Handle("/demote/{id}", s.requireSession(s.requireAdmin(http.HandlerFunc(s.handleDemote)))).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)

	s.Handler = r
}
