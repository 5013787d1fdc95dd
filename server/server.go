// Package server exposes the routing engine over HTTP for the application
// frontend and for diagnostics.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/RaghavSood/swaprouter/chains"
	"github.com/RaghavSood/swaprouter/config"
	"github.com/RaghavSood/swaprouter/db"
	"github.com/RaghavSood/swaprouter/quotes"
	"github.com/RaghavSood/swaprouter/router"
	"github.com/RaghavSood/swaprouter/swaps"
)

type Server struct {
	cfg     *config.Config
	router  *router.Router
	service *quotes.Service
	store   *db.Store
}

func New(cfg *config.Config, rtr *router.Router, service *quotes.Service, store *db.Store) *Server {
	return &Server{
		cfg:     cfg,
		router:  rtr,
		service: service,
		store:   store,
	}
}

func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/chains", s.handleChains)
	mux.HandleFunc("/api/quote", s.handleQuote)
	mux.HandleFunc("/api/quotes", s.handleMultiQuote)
	mux.HandleFunc("/api/quotes/recent", s.handleRecentQuotes)
	mux.HandleFunc("/api/cache/stats", s.handleCacheStats)
	mux.HandleFunc("/api/cache/clear", s.handleCacheClear)
	mux.HandleFunc("/api/balance", s.handleBalance)

	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Printf("HTTP server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChains(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, chains.All())
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	form, ok := decodeForm(w, r)
	if !ok {
		return
	}

	q, err := s.router.GetOptimalQuote(r.Context(), form)
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quoteView(q))
}

func (s *Server) handleMultiQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	form, ok := decodeForm(w, r)
	if !ok {
		return
	}

	multi, err := s.router.GetMultipleQuotes(r.Context(), form)
	if err != nil {
		writeQuoteError(w, err)
		return
	}

	resp := struct {
		Recommended *QuoteView `json:"recommended"`
		SameChain   *QuoteView `json:"same_chain,omitempty"`
		CrossChain  *QuoteView `json:"cross_chain,omitempty"`
	}{
		Recommended: quoteViewPtr(multi.Recommended),
		SameChain:   quoteViewPtr(multi.SameChain),
		CrossChain:  quoteViewPtr(multi.CrossChain),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecentQuotes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "quote history disabled", http.StatusNotFound)
		return
	}
	records, err := s.store.RecentQuotes(r.Context(), 50)
	if err != nil {
		log.Printf("recent quotes query failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.CacheStats())
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.service.ClearCache()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func decodeForm(w http.ResponseWriter, r *http.Request) (swaps.FormData, bool) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return swaps.FormData{}, false
	}
	return req.formData(), true
}

func writeQuoteError(w http.ResponseWriter, err error) {
	var verr *swaps.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Error(),
			"field": verr.Field,
		})
		return
	}

	var qerr *swaps.QuoteUnavailableError
	if errors.As(err, &qerr) {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": qerr.Error()})
		return
	}

	log.Printf("quote request failed: %v", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}
