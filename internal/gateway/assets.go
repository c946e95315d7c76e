package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"ap-script-studio/internal/config"
	"ap-script-studio/internal/domain"
	"ap-script-studio/internal/encoding"
)

// defaultGreeting はナレーション原稿の下請け呼び出しが空文字を返したときの定型文です。
const defaultGreeting = "Welcome to this presentation."

// GenerateCoverImage は台本タイトルと冒頭セクションを文脈にして
// 16:9のカバー画像を生成します。画像ペイロードが無ければ ErrNoImage です。
func (g *Gateway) GenerateCoverImage(ctx context.Context, script *domain.Script) (*domain.ImageAsset, error) {
	imageContext := "Topic"
	if len(script.Sections) > 0 && script.Sections[0].Content != "" {
		imageContext = script.Sections[0].Content
	}

	resp, err := g.models.GenerateContent(ctx, g.cfg.ImageModel, genai.Text(coverPrompt(script.Title, imageContext)), &genai.GenerateContentConfig{
		ImageConfig:    &genai.ImageConfig{AspectRatio: "16:9"},
		SafetySettings: safetySettings(),
	})
	if err != nil {
		return nil, wrapUpstream("cover image generation", err)
	}

	blob := firstInlineData(resp)
	if blob == nil {
		return nil, ErrNoImage
	}

	mime := blob.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return &domain.ImageAsset{MIMEType: mime, Data: blob.Data}, nil
}

// GenerateAudioOverview はまず30〜40秒のナレーション原稿を依頼し、
// それを固定ボイスで音声合成します。合成結果のPCMはWAVコンテナに包んで返します。
// 原稿の下請け呼び出しが空テキストを返した場合は定型の挨拶文にフォールバックします。
func (g *Gateway) GenerateAudioOverview(ctx context.Context, script *domain.Script) (*domain.AudioAsset, error) {
	introResp, err := g.models.GenerateContent(ctx, g.cfg.ScriptFastModel, genai.Text(introPrompt(script)), &genai.GenerateContentConfig{
		SafetySettings: safetySettings(),
	})
	if err != nil {
		return nil, wrapUpstream("intro overview generation", err)
	}

	spoken := strings.TrimSpace(introResp.Text())
	if spoken == "" {
		slog.WarnContext(ctx, "ナレーション原稿が空だったため定型文を使用します")
		spoken = defaultGreeting
	}

	ttsResp, err := g.models.GenerateContent(ctx, g.cfg.SpeechModel, genai.Text(spoken), &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SafetySettings:     safetySettings(),
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: g.cfg.VoiceName},
			},
		},
	})
	if err != nil {
		return nil, wrapUpstream("speech synthesis", err)
	}

	blob := firstInlineData(ttsResp)
	if blob == nil {
		return nil, ErrNoAudio
	}

	wav := encoding.EncodeWAV(blob.Data, config.DefaultAudioSampleRate)
	return &domain.AudioAsset{MIMEType: "audio/wav", Data: wav}, nil
}

var slideListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":        {Type: genai.TypeString},
			"bulletPoints": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"speakerNotes": {Type: genai.TypeString},
		},
	},
}

// GenerateSlideDeck は台本本文から5〜8枚のスライド概要を生成し、
// 末尾に固定の帰属表示スライドを付与して返します。
func (g *Gateway) GenerateSlideDeck(ctx context.Context, script *domain.Script) ([]domain.Slide, error) {
	resp, err := g.models.GenerateContent(ctx, g.cfg.ScriptFastModel, genai.Text(slidePrompt(script)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   slideListSchema,
		SafetySettings:   safetySettings(),
	})
	if err != nil {
		return nil, wrapUpstream("slide deck generation", err)
	}

	raw, err := encoding.ExtractJSON(resp.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var slides []domain.Slide
	if err := json.Unmarshal([]byte(raw), &slides); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	slides = append(slides, domain.Slide{
		Title:        "Copyright",
		BulletPoints: []string{fmt.Sprintf("© %d %s", g.now().Year(), g.cfg.AuthorName), "All Rights Reserved."},
		SpeakerNotes: "Closing attribution.",
	})
	return slides, nil
}

// GenerateFormattedDocument は台本本文のセマンティックHTML断片を生成します。
// 断片はエクスポート時にWord互換のドキュメントシェルで包まれます。
func (g *Gateway) GenerateFormattedDocument(ctx context.Context, script *domain.Script) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.cfg.ScriptFastModel, genai.Text(documentPrompt(script, g.cfg.AuthorName)), &genai.GenerateContentConfig{
		SafetySettings: safetySettings(),
	})
	if err != nil {
		return "", wrapUpstream("document generation", err)
	}
	return resp.Text(), nil
}
