package handlers

import (
	"net/http"

	"ap-script-studio/internal/config"
	"ap-script-studio/internal/domain"
	"ap-script-studio/internal/wizard"
)

// statePayload はウィザード状態と候補トピックをまとめた応答です。
type statePayload struct {
	wizard.State
	Topics []domain.Topic `json:"topics"`
}

func statePayloadFrom(m *wizard.Machine) statePayload {
	return statePayload{
		State:  m.Snapshot(),
		Topics: m.Topics(),
	}
}

// GetState は現在のウィザード状態を返します。生成中でもブロックしません。
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}

// UnlockKey は資格情報を検査してウィザードをトピック発見へ進めます。
func (h *Handler) UnlockKey(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	if !h.cfg.HasAPIKey() {
		writeError(w, config.ErrAPIKeyMissing)
		return
	}
	if err := m.UnlockKey(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}

type navigateRequest struct {
	Step string `json:"step"`
}

// Navigate は到達済みステップへの移動を処理します。
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	var req navigateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	step, err := wizard.ParseStep(req.Step)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err := m.Navigate(r.Context(), step); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}

type refreshTopicsRequest struct {
	Category string `json:"category"`
}

// RefreshTopics は指定カテゴリでトピック一覧を取り直します。
func (h *Handler) RefreshTopics(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	var req refreshTopicsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Category == "" {
		req.Category = wizard.DefaultCategory
	}
	if err := m.RefreshTopics(r.Context(), req.Category); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}

type customTopicRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// CustomTopic は手入力のトピックを候補一覧へ追加し、同時に選択します。
func (h *Handler) CustomTopic(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	var req customTopicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	topic, err := m.AddCustomTopic(req.Title, req.Summary)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := m.SelectTopic(topic.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}

type selectTopicRequest struct {
	TopicID string `json:"topicId"`
}

// SelectTopic はトピックを確定して設定ステップへ進みます。
func (h *Handler) SelectTopic(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	var req selectTopicRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := m.SelectTopic(req.TopicID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}

// GenerateScript は生成設定を受け取って台本を生成します。
// 生成はリクエストの間同期で走り、進捗は GetState のポーリングで観測できます。
func (h *Handler) GenerateScript(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	var cfg domain.GenerationConfig
	if !decodeBody(w, r, &cfg) {
		return
	}
	if err := m.GenerateScript(r.Context(), cfg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}

// UpdateScript はエディタでの台本編集を反映します。
func (h *Handler) UpdateScript(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	var script domain.Script
	if !decodeBody(w, r, &script) {
		return
	}
	if err := m.UpdateScript(&script); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}

// ConfirmScript は台本を確定してアセットステップへ進みます。
func (h *Handler) ConfirmScript(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machineFromRequest(w, r)
	if !ok {
		return
	}
	if err := m.ConfirmScript(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statePayloadFrom(m))
}
