package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"ap-script-studio/internal/export"
)

// ServeCover はカバー画像のバイナリをそのまま返します。
func (h *Handler) ServeCover(w http.ResponseWriter, r *http.Request) {
	state, ok := h.snapshotOf(w, r)
	if !ok {
		return
	}
	if state.Assets.CoverImage == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "cover image not generated"})
		return
	}
	w.Header().Set("Content-Type", state.Assets.CoverImage.MIMEType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(state.Assets.CoverImage.Data)
}

// ServeAudio は音声概要のWAVをそのまま返します。
func (h *Handler) ServeAudio(w http.ResponseWriter, r *http.Request) {
	state, ok := h.snapshotOf(w, r)
	if !ok {
		return
	}
	if state.Assets.AudioOverview == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "audio overview not generated"})
		return
	}
	w.Header().Set("Content-Type", state.Assets.AudioOverview.MIMEType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(state.Assets.AudioOverview.Data)
}

// ExportScript は台本をプレーンテキストでダウンロードさせます。
func (h *Handler) ExportScript(w http.ResponseWriter, r *http.Request) {
	state, ok := h.snapshotOf(w, r)
	if !ok {
		return
	}
	if state.Script == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "script not generated"})
		return
	}
	serveDownload(w, downloadName(state.Script.Title, "txt"), "text/plain; charset=utf-8",
		[]byte(export.ScriptText(state.Script, h.cfg.AuthorName)))
}

// ExportSlides はスライド概要をMarkdownでダウンロードさせます。
func (h *Handler) ExportSlides(w http.ResponseWriter, r *http.Request) {
	state, ok := h.snapshotOf(w, r)
	if !ok {
		return
	}
	if state.Script == nil || len(state.Assets.SlideDeck) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "slide deck not generated"})
		return
	}
	serveDownload(w, downloadName(state.Script.Title, "md"), "text/markdown; charset=utf-8",
		[]byte(export.SlidesMarkdown(state.Script.Title, state.Assets.SlideDeck, h.cfg.AuthorName)))
}

// ExportDocument は整形済み文書をWord互換HTMLでダウンロードさせます。
func (h *Handler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	state, ok := h.snapshotOf(w, r)
	if !ok {
		return
	}
	if state.Script == nil || state.Assets.FormattedDocument == "" {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "formatted document not generated"})
		return
	}
	serveDownload(w, downloadName(state.Script.Title, "doc"), "application/msword",
		export.WordDocument(state.Script.Title, state.Assets.FormattedDocument, h.cfg.AuthorName))
}

func serveDownload(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// downloadName はタイトルをファイル名として安全な形に整えます。
func downloadName(title, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "untitled"
	}
	return name + "." + ext
}
