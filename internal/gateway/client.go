// Package gateway は外部の生成AIコラボレーター (Gemini) へのファサードです。
// プロンプト構築、安全性フィルタ、スキーマ制約、リトライ方針をここに閉じ込め、
// 上位レイヤーには結果とエラーの形だけを公開します。
package gateway

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"ap-script-studio/internal/config"
	"ap-script-studio/internal/domain"
)

// ContentGenerator は genai クライアントのうち本システムが依存する1操作です。
// テストではこのインターフェースを偽装してネットワークなしで検証します。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gateway は生成系4操作（トピック発見・台本生成・派生アセット生成）を提供します。
type Gateway struct {
	models ContentGenerator
	cfg    *config.Config
	now    func() time.Time
}

// New は資格情報を解決して Gemini クライアントを初期化します。
// 資格情報がどこにも存在しない場合は config.ErrAPIKeyMissing を返します。
func New(ctx context.Context, cfg *config.Config) (*Gateway, error) {
	apiKey, err := cfg.ResolveAPIKey()
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}

	return newWithGenerator(client.Models, cfg), nil
}

func newWithGenerator(models ContentGenerator, cfg *config.Config) *Gateway {
	return &Gateway{
		models: models,
		cfg:    cfg,
		now:    time.Now,
	}
}

// scriptModel は設定されたモデル階層を実際のモデルIDへ解決します。
func (g *Gateway) scriptModel(tier domain.ModelTier) string {
	if tier == domain.TierPro {
		return g.cfg.ScriptProModel
	}
	return g.cfg.ScriptFastModel
}

// safetySettings は全生成呼び出しに一律で適用する安全性フィルタです。
// 高信頼度の違反のみをブロックする、緩めの下限として設定しています。
func safetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
		})
	}
	return settings
}

// firstInlineData はレスポンスから最初のインラインバイナリペイロードを探します。
func firstInlineData(resp *genai.GenerateContentResponse) *genai.Blob {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return part.InlineData
			}
		}
	}
	return nil
}

// attribution は帰属表示の本文を組み立てます。
func (g *Gateway) attribution() string {
	return fmt.Sprintf("© %d %s. All Rights Reserved.", g.now().Year(), g.cfg.AuthorName)
}
