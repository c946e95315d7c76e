package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"ap-script-studio/internal/domain"
	"ap-script-studio/internal/encoding"
)

// thinkingBudgetWordCount を超える pro 階層の依頼にだけ思考バジェットを与えます。
const (
	thinkingBudgetWordCount = 1000
	thinkingBudgetTokens    = int32(1024)
)

type sectionPayload struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	VisualPrompt string `json:"visualPrompt"`
	TimestampStr string `json:"timestampStr"`
}

type scriptPayload struct {
	Title                 string           `json:"title"`
	SubtitleOrDescription string           `json:"subtitleOrDescription"`
	Tags                  []string         `json:"tags"`
	Sections              []sectionPayload `json:"sections"`
	// 一部のモデルは sections の代わりに content キーでセクション列を返します。
	Content []sectionPayload `json:"content"`
}

// GenerateScript はトピックと生成プロファイルから台本を生成します。
// 1回目はスキーマ制約付きで依頼し、その応答の解析に失敗した場合のみ、
// 同じプロンプトで制約を緩めた再試行をちょうど1回行います。
// 返される台本には必ず（モデル出力に関係なく）帰属表示セクションが末尾に付きます。
func (g *Gateway) GenerateScript(ctx context.Context, topic domain.Topic, cfg domain.GenerationConfig) (*domain.Script, error) {
	prompt := scriptPrompt(topic, cfg)

	script, err := g.attemptScript(ctx, prompt, cfg, true)
	if err != nil {
		if !errors.Is(err, ErrMalformedResponse) {
			return nil, err
		}
		slog.WarnContext(ctx, "スキーマ制約付き生成に失敗したため、緩和モードで再試行します", "error", err)
		script, err = g.attemptScript(ctx, prompt, cfg, false)
		if err != nil {
			return nil, err
		}
	}
	return script, nil
}

func (g *Gateway) attemptScript(ctx context.Context, prompt string, cfg domain.GenerationConfig, strict bool) (*domain.Script, error) {
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: scriptSystemInstruction(cfg.Format)}}},
		SafetySettings:    safetySettings(),
		ResponseMIMEType:  "application/json",
	}
	if strict {
		genCfg.ResponseSchema = scriptSchema(cfg.Format)
	}
	if cfg.ModelTier == domain.TierPro && cfg.WordCount > thinkingBudgetWordCount {
		genCfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: genai.Ptr(thinkingBudgetTokens)}
	}

	resp, err := g.models.GenerateContent(ctx, g.scriptModel(cfg.ModelTier), genai.Text(prompt), genCfg)
	if err != nil {
		return nil, wrapUpstream("script generation", err)
	}

	script, err := g.parseScript(resp.Text(), cfg)
	if err != nil {
		return nil, err
	}
	return script, nil
}

// parseScript は応答テキストを台本へ変換します。解析系の失敗はすべて
// ErrMalformedResponse に分類され、呼び出し側の再試行判断に使われます。
func (g *Gateway) parseScript(text string, cfg domain.GenerationConfig) (*domain.Script, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedResponse)
	}

	raw, err := encoding.ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var payload scriptPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	sections := payload.Sections
	if len(sections) == 0 {
		sections = payload.Content
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("%w: no sections in payload", ErrMalformedResponse)
	}

	script := &domain.Script{
		Title:                 payload.Title,
		SubtitleOrDescription: payload.SubtitleOrDescription,
		Tags:                  payload.Tags,
		Config:                cfg,
		Sections:              make([]domain.Section, 0, len(sections)+1),
	}
	for _, s := range sections {
		script.Sections = append(script.Sections, toDomainSection(s, cfg.Format))
	}

	script.Sections = append(script.Sections, g.attributionSection(cfg.Format))
	return script, nil
}

func toDomainSection(p sectionPayload, format domain.Format) domain.Section {
	sec := domain.Section{Title: p.Title, Content: p.Content}
	if format.HasVideoDirection() {
		sec.Video = &domain.VideoDirection{
			VisualPrompt: p.VisualPrompt,
			Timestamp:    p.TimestampStr,
		}
	}
	return sec
}

// attributionSection はゲートウェイが必ず付与する末尾の帰属表示セクションです。
func (g *Gateway) attributionSection(format domain.Format) domain.Section {
	sec := domain.Section{
		Title:   "Copyright",
		Content: g.attribution(),
	}
	if format.HasVideoDirection() {
		sec.Video = &domain.VideoDirection{
			VisualPrompt: "Copyright screen with logo and author name",
			Timestamp:    "End",
		}
	}
	return sec
}

// scriptSchema は台本のスキーマを返します。形式が video-script の場合のみ
// セクションに映像指示とタイムスタンプのプロパティを含めます。
func scriptSchema(format domain.Format) *genai.Schema {
	sectionProps := map[string]*genai.Schema{
		"title":   {Type: genai.TypeString},
		"content": {Type: genai.TypeString},
	}
	if format.HasVideoDirection() {
		sectionProps["visualPrompt"] = &genai.Schema{Type: genai.TypeString}
		sectionProps["timestampStr"] = &genai.Schema{Type: genai.TypeString}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":                 {Type: genai.TypeString},
			"subtitleOrDescription": {Type: genai.TypeString},
			"tags":                  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"sections": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type:       genai.TypeObject,
					Properties: sectionProps,
				},
			},
		},
	}
}
