package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sloghttp "github.com/samber/slog-http"

	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/domain"
	"github.com/reshetovitsme/photo-relay-bot/internal/modules/account/registry"
	"github.com/reshetovitsme/photo-relay-bot/internal/shared/config"
)

// Server exposes read-only operational snapshots over HTTP. It never mutates
// account state; all reads go through the registry lock.
type Server struct {
	cfg      *config.Config
	registry *registry.Registry
	logger   *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config, reg *registry.Registry) *Server {
	return &Server{
		cfg:      cfg,
		registry: reg,
		logger:   slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /accounts", s.handleAccounts)
	mux.HandleFunc("GET /accounts/{accountID}", s.handleAccount)
	mux.HandleFunc("GET /health", s.handleHealth)

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("Status server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

type accountView struct {
	ID                int64 `json:"id"`
	SourceChatID      int64 `json:"source_chat_id"`
	DestinationChatID int64 `json:"destination_chat_id"`
	GeoStamp          bool  `json:"geo_stamp"`
	domain.State
}

func (s *Server) snapshot(account *domain.Account) (accountView, error) {
	state, err := s.registry.Snapshot(account.ID)
	if err != nil {
		return accountView{}, err
	}
	return accountView{
		ID:                int64(account.ID),
		SourceChatID:      account.SourceChatID,
		DestinationChatID: account.DestinationChatID,
		GeoStamp:          account.GeoStamp,
		State:             state,
	}, nil
}

func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	views := make([]accountView, 0)
	for _, account := range s.registry.Accounts() {
		view, err := s.snapshot(account)
		if err != nil {
			s.logger.Error("Error reading account state", "account_id", account.ID, "error", err)
			http.Error(w, "Failed to read account state", http.StatusInternalServerError)
			return
		}
		views = append(views, view)
	}
	writeJSON(w, views)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("accountID"))
	if err != nil {
		http.Error(w, "Account ID must be an integer", http.StatusBadRequest)
		return
	}

	account, ok := s.registry.Account(id)
	if !ok {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	view, err := s.snapshot(account)
	if err != nil {
		s.logger.Error("Error reading account state", "account_id", id, "error", err)
		http.Error(w, "Failed to read account state", http.StatusInternalServerError)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}
