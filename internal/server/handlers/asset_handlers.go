package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ap-script-studio/internal/domain"
	"ap-script-studio/internal/wizard"
)

// GenerateAsset は確定済み台本から派生アセットを1種類生成します。
// 種別はパスで指定します（cover / audio / slides / document）。
func (h *Handler) GenerateAsset(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	kind := domain.AssetKind(chi.URLParam(r, "kind"))
	if !kind.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown asset kind: " + string(kind)})
		return
	}
	if err := m.GenerateAsset(r.Context(), kind); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}

// snapshotOf は出力系ハンドラ共通の「セッション解決→スナップショット」手順です。
func (h *Handler) snapshotOf(w http.ResponseWriter, r *http.Request) (wizard.State, bool) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return wizard.State{}, false
	}
	return m.Snapshot(), true
}
