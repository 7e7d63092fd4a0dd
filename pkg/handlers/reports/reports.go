package reports

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sakib/coinledger/pkg/api"
	"github.com/sakib/coinledger/pkg/mapping"
	"github.com/sakib/coinledger/pkg/storage"
)

// ReportsHandler holds the read-only dependencies for reporting endpoints.
type ReportsHandler struct {
	Ledger storage.LedgerReader
	Stats  storage.StatsReader
}

// NewReportsHandler creates a new ReportsHandler.
func NewReportsHandler(ledger storage.LedgerReader, stats storage.StatsReader) *ReportsHandler {
	return &ReportsHandler{Ledger: ledger, Stats: stats}
}

// ListTransactions handles retrieving the most recent transaction records.
func (h *ReportsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	domainTxs, err := h.Ledger.ListTransactions(r.Context(), limitParam(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	apiTxs := make([]*api.Transaction, len(domainTxs))
	for i, tx := range domainTxs {
		apiTxs[i] = mapping.ToApiTransaction(&tx)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiTxs); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListLogs handles retrieving the most recent audit log entries.
func (h *ReportsHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	domainEntries, err := h.Ledger.ListLogs(r.Context(), limitParam(r))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve audit log: %v", err), http.StatusInternalServerError)
		return
	}

	apiEntries := make([]*api.AuditEntry, len(domainEntries))
	for i, entry := range domainEntries {
		apiEntries[i] = mapping.ToApiAuditEntry(&entry)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiEntries); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetStats handles retrieving the derived ledger totals.
func (h *ReportsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.Stats(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to compute stats: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// limitParam reads the optional ?limit= query parameter; 0 means everything.
func limitParam(r *http.Request) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
