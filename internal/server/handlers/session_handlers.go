package handlers

import (
	"log/slog"
	"net/http"
)

type createSessionResponse struct {
	SessionID string       `json:"sessionId"`
	State     statePayload `json:"state"`
}

// CreateSession は新しいウィザードセッションを作成します。
// 資格情報が環境側で解決できる場合はキー取得ステップを省略し、
// 即座にトピック発見まで進めます。
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, m := h.container.NewSession()

	if h.cfg.HasAPIKey() {
		if err := m.UnlockKey(r.Context()); err != nil {
			slog.Warn("セッション作成時の自動アンロックに失敗しました", "session_id", id, "error", err)
		}
	}

	slog.Info("🧙 セッションを作成しました", "session_id", id)
	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: id,
		State:     statePayloadFrom(m),
	})
}
