// Package mockapi is the local development stand-in for the
// marketplace backend. It implements every HTTP collaborator the
// client consumes -- reference catalog, lead and product creation, file
// upload, OTP auth -- from seeded in-memory state, so the wizards run
// end-to-end with no real backend.
package mockapi

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/swapcell/swapcell/internal/auth"
	"github.com/swapcell/swapcell/internal/gateway"
	"github.com/swapcell/swapcell/internal/refdata"
)

// Server holds the mock backend's in-memory state.
type Server struct {
	log zerolog.Logger

	mu        sync.Mutex
	brands    []refdata.Brand
	models    []refdata.Model
	variants  []refdata.Variant
	retailers []retailerFixture

	leads    map[string]leadRecord // keyed by idempotency key
	products map[string]gateway.ProductResult
	otps     map[string]string // email -> code
	sessions map[string]auth.User
}

type leadRecord struct {
	Payload gateway.LeadPayload
	Result  gateway.LeadResult
}

// New creates a seeded mock server.
func New(log zerolog.Logger) *Server {
	return &Server{
		log:       log,
		brands:    seedBrands(),
		models:    seedModels(),
		variants:  seedVariants(),
		retailers: seedRetailers(),
		leads:     make(map[string]leadRecord),
		products:  make(map[string]gateway.ProductResult),
		otps:      make(map[string]string),
		sessions:  make(map[string]auth.User),
	}
}

// Router builds the HTTP route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/api/phone-brands", s.handleBrands).Methods(http.MethodGet)
	r.HandleFunc("/api/phone-models", s.handleModels).Methods(http.MethodGet)
	r.HandleFunc("/api/phone-models", s.handleCreateModel).Methods(http.MethodPost)
	r.HandleFunc("/api/phone-models", s.handleUpdateModel).Methods(http.MethodPut)
	r.HandleFunc("/api/phone-models", s.handleDeleteModel).Methods(http.MethodDelete)
	r.HandleFunc("/api/phone-variants", s.handleVariants).Methods(http.MethodGet)

	r.HandleFunc("/api/leads", s.handleCreateLead).Methods(http.MethodPost)
	r.HandleFunc("/api/products", s.handleCreateProduct).Methods(http.MethodPost)
	r.HandleFunc("/api/upload", s.handleUpload).Methods(http.MethodPost)

	r.HandleFunc("/api/auth/otp/send", s.handleSendOTP).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/otp/verify", s.handleVerifyOTP).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/me", s.handleMe).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/logout", s.handleLogout).Methods(http.MethodPost)

	return r
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.log.Info().Str("addr", addr).Msg("mock API listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// logRequests is the zerolog access-log middleware.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
