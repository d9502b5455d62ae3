package rest

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"memberportal/pkg/logger"
)

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()

		clientIP := getClientIP(r)
		endpoint := r.URL.Path
		httpMethod := r.Method

		// Request bodies are never logged; signup and login carry plaintext
		// passwords.
		logMessage := fmt.Sprintf(
			"Received request [ID: %s] from [ClientIP: %s] to [Endpoint: %s] with [HTTP Method: %s]",
			requestID, clientIP, endpoint, httpMethod,
		)
		logger.Info(logMessage)

		r = r.WithContext(context.WithValue(r.Context(), contextKeyReqID, requestID))

		next.ServeHTTP(w, r)
	})
}

// requireSession redirects anonymous requests to the home page and stashes
// the resolved session in the request context otherwise.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.Current(r.Context(), r)
		if !sess.Authenticated {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), contextKeySession, sess))

		next.ServeHTTP(w, r)
	})
}

// requireAdmin rejects sessions without the admin role. It must run after
// requireSession.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFromContext(r.Context())
		if sess == nil || !sess.IsAdmin() {
			s.renderError(w, http.StatusForbidden, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func getClientIP(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	}

	colonIndex := strings.Index(ip, ":")
	if colonIndex != -1 {
		ip = ip[:colonIndex]
	}
	return ip
}
