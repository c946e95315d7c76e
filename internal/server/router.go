// Package server はルーティングとミドルウェアを束ねたHTTPサーフェスです。
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ap-script-studio/internal/app"
	"ap-script-studio/internal/config"
	"ap-script-studio/internal/server/handlers"
)

// NewRouter は、ミドルウェアとルーティングを統合した http.Handler を構築します。
func NewRouter(cfg *config.Config, container *app.Container) http.Handler {
	r := chi.NewRouter()

	setupCommonMiddleware(r)
	setupRoutes(r, handlers.NewHandler(cfg, container))

	return r
}

func setupCommonMiddleware(r *chi.Mux) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
}

func setupRoutes(r chi.Router, h *handlers.Handler) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)

		r.Route("/{sessionID}", func(r chi.Router) {
			// --- ウィザード操作 ---
			r.Get("/state", h.GetState)
			r.Post("/key/unlock", h.UnlockKey)
			r.Post("/navigate", h.Navigate)
			r.Post("/topics/refresh", h.RefreshTopics)
			r.Post("/topics/custom", h.CustomTopic)
			r.Post("/topics/select", h.SelectTopic)
			r.Post("/script/generate", h.GenerateScript)
			r.Put("/script", h.UpdateScript)
			r.Post("/script/confirm", h.ConfirmScript)
			r.Post("/assets/{kind}", h.GenerateAsset)

			// --- 履歴 ---
			r.Get("/history", h.ListHistory)
			r.Post("/history/{entryID}/restore", h.RestoreHistory)

			// --- 生成物の取得・エクスポート ---
			r.Get("/assets/cover", h.ServeCover)
			r.Get("/assets/audio.wav", h.ServeAudio)
			r.Get("/export/script.txt", h.ExportScript)
			r.Get("/export/slides.md", h.ExportSlides)
			r.Get("/export/document.doc", h.ExportDocument)
		})
	})
}
