package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListHistory はセッション内の完成履歴を新しい順で返します。
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, m.Ledger().List())
}

// RestoreHistory は履歴エントリの内容でウィザード状態を丸ごと復元します。
func (h *Handler) RestoreHistory(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	entryID := chi.URLParam(r, "entryID")
	entry, found := m.Ledger().Get(entryID)
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown history entry"})
		return
	}
	if err := m.LoadHistory(entry); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}
