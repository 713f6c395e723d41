package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
	"github.com/frontboat/death-mountain-sub001/internal/db"
	"github.com/frontboat/death-mountain-sub001/internal/dispatch"
	"github.com/frontboat/death-mountain-sub001/internal/feed"
	mw "github.com/frontboat/death-mountain-sub001/internal/middleware"
	"github.com/frontboat/death-mountain-sub001/internal/wire"
)

// Options wires a Server to its collaborators
type Options struct {
	DB               *db.DB
	Translator       *dispatch.Translator
	Logger           *zap.Logger
	RecentEventLimit int
	RateLimitRPS     float64
	RateLimitBurst   int
	MaxBodyBytes     int64
	JWTSecret        string
}

// Server handles HTTP requests
type Server struct {
	router      chi.Router
	db          *db.DB
	translator  *dispatch.Translator
	feeds       *feed.Hub
	logger      *zap.Logger
	recentLimit int
	maxBody     int64
	rateLimiter *mw.RateLimiter
	auth        *mw.Authenticator
}

// NewServer creates a new API server
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Translator == nil {
		opts.Translator = dispatch.NewTranslator(dispatch.Config{Logger: opts.Logger})
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1024 * 1024
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 100
	}

	s := &Server{
		router:      chi.NewRouter(),
		db:          opts.DB,
		translator:  opts.Translator,
		feeds:       feed.NewHub(opts.RecentEventLimit, opts.DB.History),
		logger:      opts.Logger,
		recentLimit: opts.RecentEventLimit,
		maxBody:     opts.MaxBodyBytes,
		rateLimiter: mw.NewRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
		auth:        mw.NewAuthenticator(opts.JWTSecret),
	}
	if s.recentLimit <= 0 {
		s.recentLimit = 50
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.SetHeader("Content-Type", "application/json"))
	s.router.Use(s.rateLimiter.Middleware)
	s.router.Use(mw.SecurityHeadersMiddleware)
	s.router.Use(mw.MaxBodySizeMiddleware(s.maxBody))

	// Public endpoints
	s.router.Get("/api/catalogue", s.getCatalogue)

	// Protected endpoints (auth required when a secret is configured)
	s.router.Group(func(r chi.Router) {
		r.Use(s.auth.Middleware)
		r.Post("/api/receipts/decode", s.decodeReceipt)
		r.Get("/api/receipts/{receiptID}", s.getReceipt)
		r.Get("/api/adventurers/{id}", s.getAdventurer)
		r.Get("/api/adventurers/{id}/events", s.listEvents)
		r.Get("/api/adventurers/{id}/receipts", s.listReceipts)
		r.Post("/api/adventurers/{id}/optimistic/stats", s.predictStats)
		r.Post("/api/adventurers/{id}/optimistic/purchase", s.predictPurchase)
		r.Post("/api/adventurers/{id}/rollback", s.rollback)
	})
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response wraps API responses
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (sanitized)
func writeError(w http.ResponseWriter, status int, message string) {
	if status >= 500 {
		message = "Internal server error"
	}
	writeJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// writeAppError maps a coded error to its status
func (s *Server) writeAppError(w http.ResponseWriter, err error, fallback string) {
	code := apperr.CodeOf(err)
	status := statusFor(code)
	if status >= 500 {
		s.logger.Error(fallback, zap.Error(err))
		writeError(w, status, fallback)
		return
	}
	writeJSON(w, status, Response{Success: false, Error: err.Error(), Code: string(code)})
}

func statusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodePredictionPending:
		return http.StatusConflict
	case apperr.CodeInvalidScalar, apperr.CodeUnknownEventKind:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// adventurerID validates the {id} path parameter and checks ownership
func (s *Server) adventurerID(w http.ResponseWriter, r *http.Request) (wire.Felt, bool) {
	id, err := parseAdventurerID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid adventurer ID")
		return wire.Felt{}, false
	}
	if !s.checkAdventurerOwnership(w, r, id) {
		return wire.Felt{}, false
	}
	return id, true
}

// checkAdventurerOwnership verifies the caller may act on the adventurer.
// Unclaimed adventurers are open to any authenticated caller.
func (s *Server) checkAdventurerOwnership(w http.ResponseWriter, r *http.Request, id wire.Felt) bool {
	userID := mw.UserID(r.Context())
	if userID == "" {
		return true
	}

	owner, err := s.db.GetAdventurerOwner(id.String())
	if apperr.CodeOf(err) == apperr.CodeNotFound {
		return true
	}
	if err != nil {
		s.logger.Error("adventurer owner", zap.String("adventurer_id", id.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to check ownership")
		return false
	}
	if owner != userID {
		writeError(w, http.StatusForbidden, "Access denied")
		return false
	}
	return true
}

// claimAdventurer makes the caller the adventurer's owner unless another user
// got there first
func (s *Server) claimAdventurer(w http.ResponseWriter, r *http.Request, id wire.Felt) bool {
	userID := mw.UserID(r.Context())
	if userID == "" {
		return true
	}

	isOwner, err := s.db.ClaimAdventurer(id.String(), userID)
	if err != nil {
		s.logger.Error("claim adventurer", zap.String("adventurer_id", id.String()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to check ownership")
		return false
	}
	if !isOwner {
		writeError(w, http.StatusForbidden, "Access denied")
		return false
	}
	return true
}
