// Package http exposes the JSON API: a thin layer over the lifecycle
// services with request tracing and graceful shutdown.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"sync"
	"time"

	applog "finor/internal/log"
	"finor/internal/services"
)

// ContextKey type for context keys
type ContextKey string

// RequestIDKey is the context key for request ID
const RequestIDKey ContextKey = "request_id"

type Server struct {
	http.Server

	transactions *services.TransactionService
	payables     *services.PayableService
	settings     *services.SettingsService
	backup       *services.BackupService

	logger       *applog.Logger
	httpLog      *applog.HTTPLogger
	shutdownOnce sync.Once
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, logger *applog.Logger,
	ts *services.TransactionService, ps *services.PayableService,
	ss *services.SettingsService, bs *services.BackupService) *Server {

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
		},
		transactions: ts,
		payables:     ps,
		settings:     ss,
		backup:       bs,
		logger:       logger.WithComponent(applog.ComponentHTTP),
	}
	s.httpLog = applog.NewHTTPLogger(s.logger)

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleSaveTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("POST /api/transactions/bulk-delete", s.handleBulkDeleteTransactions)
	mux.HandleFunc("GET /api/transactions/export", s.handleExportTransactions)
	mux.HandleFunc("GET /api/transactions/{id}/receipt", s.handleReceipt)
	mux.HandleFunc("GET /api/debtors", s.handleDebtors)

	mux.HandleFunc("GET /api/payables", s.handleListPayables)
	mux.HandleFunc("POST /api/payables", s.handleCreatePayables)
	mux.HandleFunc("POST /api/payables/{id}/toggle", s.handleTogglePayable)
	mux.HandleFunc("DELETE /api/payables/{id}", s.handleDeletePayable)

	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)
	mux.HandleFunc("GET /api/price", s.handlePrice)

	mux.HandleFunc("GET /api/backup", s.handleBackup)
	mux.HandleFunc("POST /api/restore", s.handleRestore)

	// Middleware chain, outermost first: inject the base logger, stamp a
	// request id and log the request lifecycle, then enrich the context
	// logger with that id so every handler log carries it.
	var handler http.Handler = mux
	handler = applog.RequestIDMiddleware(func(r *http.Request) string {
		return GetRequestID(r.Context())
	})(handler)
	handler = s.trace(handler)
	handler = applog.Middleware(s.logger)(handler)
	s.Server.Handler = handler

	return s
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// trace stamps a request id into the context and logs request
// start/completion with timing and status.
func (s *Server) trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		r = r.WithContext(ctx)

		s.httpLog.LogStart(ctx, r, clientIP)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		s.httpLog.LogEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// GetRequestID extracts the request ID from context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
