// Package handlers はウィザード操作をJSON APIとして公開する薄い層です。
// 入力のデコードとエラー分類のHTTPステータスへの写像だけを行い、
// 意味論はすべてステートマシンとゲートウェイに委ねます。
package handlers

import (
	"ap-script-studio/internal/app"
	"ap-script-studio/internal/config"
)

type Handler struct {
	cfg       *config.Config
	container *app.Container
}

// NewHandler は指定された構成とDIコンテナに基づいてハンドラーを初期化します。
func NewHandler(cfg *config.Config, container *app.Container) *Handler {
	return &Handler{
		cfg:       cfg,
		container: container,
	}
}
