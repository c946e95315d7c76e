package gateway

import (
	"context"
	"time"

	"google.golang.org/genai"

	"ap-script-studio/internal/config"
)

// recordedCall は偽クライアントが受け取った1呼び出し分の記録です。
type recordedCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (c recordedCall) promptText() string {
	if len(c.contents) == 0 || len(c.contents[0].Parts) == 0 {
		return ""
	}
	return c.contents[0].Parts[0].Text
}

// fakeModels は ContentGenerator のテスト用実装です。
// 仕込んだ応答・エラーを呼び出し順に返し、リクエスト内容を記録します。
type fakeModels struct {
	calls     []recordedCall
	responses []*genai.GenerateContentResponse
	errs      []error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, recordedCall{model: model, contents: contents, config: cfg})

	if idx < len(f.errs) && f.errs[idx] != nil {
		return nil, f.errs[idx]
	}
	if idx < len(f.responses) {
		return f.responses[idx], nil
	}
	return textResponse(""), nil
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func inlineResponse(mimeType string, data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{
				InlineData: &genai.Blob{MIMEType: mimeType, Data: data},
			}}},
		}},
	}
}

func testConfig() *config.Config {
	return &config.Config{
		ScriptFastModel: "fast-model",
		ScriptProModel:  "pro-model",
		ImageModel:      "image-model",
		SpeechModel:     "speech-model",
		VoiceName:       "Kore",
		AuthorName:      "Kong Chun Yin",
	}
}

func newTestGateway(models *fakeModels) *Gateway {
	g := newWithGenerator(models, testConfig())
	g.now = func() time.Time { return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) }
	return g
}
