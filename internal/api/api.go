// ABOUTME: HTTP API server for rolodex with route registration and lifecycle
// ABOUTME: Provides the data/errors response envelope and error-to-status mapping

package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/2389/rolodex/internal/auth"
	"github.com/2389/rolodex/internal/contacts"
	"github.com/2389/rolodex/internal/store"
	"github.com/2389/rolodex/internal/users"
	"github.com/2389/rolodex/internal/validate"
)

// WebResponse is the envelope every endpoint returns: a data payload on
// success or an errors payload on failure, never both. Data is always present
// so an empty list serializes as [] rather than vanishing.
type WebResponse struct {
	Data   any    `json:"data"`
	Errors string `json:"errors,omitempty"`
}

// Server wires the services to HTTP routes.
type Server struct {
	authenticator *auth.Authenticator
	sessions      *auth.SessionService
	users         *users.Service
	contacts      *contacts.Service
	httpServer    *http.Server
	logger        *slog.Logger
}

// Config holds the dependencies and listen address for a Server.
type Config struct {
	Addr          string
	Authenticator *auth.Authenticator
	Sessions      *auth.SessionService
	Users         *users.Service
	Contacts      *contacts.Service
}

// NewServer creates a Server and registers all routes.
func NewServer(cfg Config) *Server {
	s := &Server{
		authenticator: cfg.Authenticator,
		sessions:      cfg.Sessions,
		users:         cfg.Users,
		contacts:      cfg.Contacts,
		logger:        slog.Default().With("component", "api"),
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// registerRoutes registers all API routes on the given mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	requireAuth := auth.Middleware(s.authenticator)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	// Public routes
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/users", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	// Protected routes (X-API-TOKEN required)
	mux.Handle("DELETE /api/auth/logout", protected(s.handleLogout))
	mux.Handle("GET /api/users/current", protected(s.handleCurrentUser))
	mux.Handle("PATCH /api/users/current", protected(s.handleUpdateUser))

	mux.Handle("POST /api/contacts", protected(s.handleCreateContact))
	mux.Handle("GET /api/contacts", protected(s.handleListContacts))
	mux.Handle("GET /api/contacts/{contactId}", protected(s.handleGetContact))
	mux.Handle("PUT /api/contacts/{contactId}", protected(s.handleUpdateContact))
	mux.Handle("DELETE /api/contacts/{contactId}", protected(s.handleDeleteContact))

	mux.Handle("POST /api/contacts/{contactId}/addresses", protected(s.handleCreateAddress))
	mux.Handle("GET /api/contacts/{contactId}/addresses", protected(s.handleListAddresses))
	mux.Handle("GET /api/contacts/{contactId}/addresses/{addressId}", protected(s.handleGetAddress))
	mux.Handle("PUT /api/contacts/{contactId}/addresses/{addressId}", protected(s.handleUpdateAddress))
	mux.Handle("DELETE /api/contacts/{contactId}/addresses/{addressId}", protected(s.handleDeleteAddress))

	s.logger.Info("api routes registered")
}

// Handler returns the server's root handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails. Returns nil on graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeData(w, http.StatusOK, "OK")
}

// writeData writes a success envelope.
func (s *Server) writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(WebResponse{Data: data}); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes an error envelope with the given status.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(WebResponse{Errors: message}); err != nil {
		s.logger.Error("failed to encode error response", "error", err)
	}
}

// mapError translates service and store errors to the response taxonomy:
// 400 validation and duplicate username, 401 auth, 404 not found, 500
// otherwise. Internal details are never leaked to the caller.
func (s *Server) mapError(w http.ResponseWriter, err error) {
	var violations validate.Violations
	switch {
	case errors.As(err, &violations):
		s.writeError(w, http.StatusBadRequest, violations.Error())
	case errors.Is(err, store.ErrUsernameTaken):
		s.writeError(w, http.StatusBadRequest, store.ErrUsernameTaken.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		s.writeError(w, http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrUnauthorized):
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, store.ErrContactNotFound):
		s.writeError(w, http.StatusNotFound, store.ErrContactNotFound.Error())
	case errors.Is(err, store.ErrAddressNotFound):
		s.writeError(w, http.StatusNotFound, store.ErrAddressNotFound.Error())
	default:
		s.logger.Error("request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes a JSON request body into dst, writing a 400 response and
// returning false on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
