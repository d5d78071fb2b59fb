package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"brewboard/internal/analytics"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReady reports whether the dataset source is reachable.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.loader.Table(ctx); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		http.Error(w, "dataset unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// handleDashboard returns the full dashboard bundle for the requested filter.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	bundle, err := s.getBundle(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "Dashboard computation failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to load dataset: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// handleKPIs returns only the headline figures for the requested filter.
func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	bundle, err := s.getBundle(r.Context(), filterFromQuery(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "KPI computation failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to load dataset: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Filter analytics.Filter `json:"filter"`
		KPIs   analytics.KPIs   `json:"kpis"`
	}{Filter: bundle.Filter, KPIs: bundle.KPIs})
}

// handleFilters returns the selectable stores and months for the full dataset.
func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	rows, err := s.loader.Table(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Filter options failed", "error", err)
		writeError(w, http.StatusBadGateway, "failed to load dataset: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Stores []string `json:"stores"`
		Months []string `json:"months"`
	}{Stores: analytics.StoreOptions(rows), Months: analytics.MonthOptions(rows)})
}

func filterFromQuery(r *http.Request) analytics.Filter {
	return analytics.Filter{
		Store: r.URL.Query().Get("store"),
		Month: r.URL.Query().Get("month"),
	}.Normalize()
}

// getBundle serves a memoized dashboard when the selection was computed
// recently, otherwise recomputes it from the enriched table. The cache key
// carries the dataset signature, so a re-imported or rewritten export makes
// every memoized selection miss; a bundle never outlives the content it
// was computed from.
func (s *Server) getBundle(ctx context.Context, f analytics.Filter) (analytics.Bundle, error) {
	rows, sig, err := s.loader.Snapshot(ctx)
	if err != nil {
		return analytics.Bundle{}, err
	}

	key := sig + "|" + f.Key()
	if bundle, found := s.bundleCache.Get(key); found {
		slog.DebugContext(ctx, "Bundle cache hit", "store", f.Store, "month", f.Month)
		return bundle, nil
	}

	bundle := analytics.Compute(rows, f)
	if bundle.KPIs.Rows == 0 {
		slog.WarnContext(ctx, "No data for selection", "store", f.Store, "month", f.Month)
	}

	s.bundleCache.Set(key, bundle)
	slog.DebugContext(ctx, "Bundle cached", "store", f.Store, "month", f.Month, "rows", bundle.KPIs.Rows)
	return bundle, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encoding failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}
