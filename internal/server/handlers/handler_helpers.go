package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ap-script-studio/internal/config"
	"ap-script-studio/internal/gateway"
	"ap-script-studio/internal/wizard"
)

// writeJSON はJSONレスポンスを書き込みます。
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("レスポンスの書き込みに失敗しました", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError はエラー分類をHTTPステータスへ写して返します。
//   - 資格情報なし(前提条件エラー)      → 412
//   - 資格情報の失効                    → 401
//   - 処理中の操作拒否・未到達ステップ  → 409
//   - 不正な入力                        → 400
//   - 上流の不正応答                    → 422
//   - 上流のペイロード欠落・その他失敗  → 502
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, config.ErrAPIKeyMissing):
		status = http.StatusPreconditionFailed
	case errors.Is(err, gateway.ErrCredentialInvalid):
		status = http.StatusUnauthorized
	case errors.Is(err, wizard.ErrBusy), errors.Is(err, wizard.ErrStepLocked):
		status = http.StatusConflict
	case errors.Is(err, wizard.ErrNoTopic), errors.Is(err, wizard.ErrNoScript),
		errors.Is(err, wizard.ErrUnknownTopic), errors.Is(err, wizard.ErrInvalidConfig):
		status = http.StatusBadRequest
	case errors.Is(err, gateway.ErrMalformedResponse):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, gateway.ErrNoImage), errors.Is(err, gateway.ErrNoAudio),
		errors.Is(err, gateway.ErrUpstream):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// machineFromRequest はパスのセッションIDからステートマシンを解決します。
func (h *Handler) machineFromRequest(w http.ResponseWriter, r *http.Request) (*wizard.Machine, bool) {
	id := chi.URLParam(r, "sessionID")
	m, ok := h.container.Sessions.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown session"})
		return nil, false
	}
	return m, true
}

// decodeBody はJSONリクエストボディをデコードします。
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Warn("リクエストの解析に失敗しました", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
