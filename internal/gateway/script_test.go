package gateway

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"ap-script-studio/internal/domain"
)

const validScriptJSON = `{
	"title": "The Quiet Rise of Edge AI",
	"subtitleOrDescription": "Why inference is moving off the cloud",
	"tags": ["ai", "hardware"],
	"sections": [
		{"title": "Hook", "content": "Your phone already runs a model."},
		{"title": "Body", "content": "Latency and privacy drive the shift."}
	]
}`

func scriptTestConfig() domain.GenerationConfig {
	return domain.GenerationConfig{
		WordCount:  800,
		Style:      "conversational",
		ModelTier:  domain.TierFast,
		AuthorRole: "Tech Journalist",
		Format:     domain.FormatArticle,
		Language:   "English",
	}
}

func testTopic() domain.Topic {
	return domain.Topic{ID: "topic-1", Title: "Edge AI", Summary: "Models on devices."}
}

func TestGenerateScriptAppendsAttribution(t *testing.T) {
	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse(validScriptJSON)}}
	g := newTestGateway(models)

	script, err := g.GenerateScript(context.Background(), testTopic(), scriptTestConfig())
	require.NoError(t, err)

	assert.Equal(t, "The Quiet Rise of Edge AI", script.Title)
	require.Len(t, script.Sections, 3, "two model sections plus attribution")

	last := script.Sections[2]
	assert.Equal(t, "Copyright", last.Title)
	assert.Equal(t, "© 2026 Kong Chun Yin. All Rights Reserved.", last.Content)
	assert.Nil(t, last.Video, "article sections carry no video direction")
	assert.Equal(t, scriptTestConfig(), script.Config)

	// 1回目はスキーマ制約付き
	require.Len(t, models.calls, 1)
	call := models.calls[0]
	assert.Equal(t, "fast-model", call.model)
	assert.NotNil(t, call.config.ResponseSchema)
	assert.Equal(t, "application/json", call.config.ResponseMIMEType)
	assert.NotNil(t, call.config.SystemInstruction)
	assert.Nil(t, call.config.ThinkingConfig)
}

func TestGenerateScriptVideoFormatCarriesDirections(t *testing.T) {
	text := `{
		"title": "T",
		"sections": [
			{"title": "Open", "content": "Hi.", "visualPrompt": "City skyline at dawn", "timestampStr": "00:00"}
		]
	}`
	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse(text)}}
	g := newTestGateway(models)

	cfg := scriptTestConfig()
	cfg.Format = domain.FormatVideoScript
	script, err := g.GenerateScript(context.Background(), testTopic(), cfg)
	require.NoError(t, err)
	require.Len(t, script.Sections, 2)

	require.NotNil(t, script.Sections[0].Video)
	assert.Equal(t, "City skyline at dawn", script.Sections[0].Video.VisualPrompt)
	assert.Equal(t, "00:00", script.Sections[0].Video.Timestamp)

	attribution := script.Sections[1]
	require.NotNil(t, attribution.Video)
	assert.Equal(t, "Copyright screen with logo and author name", attribution.Video.VisualPrompt)
	assert.Equal(t, "End", attribution.Video.Timestamp)

	// video-script のスキーマには映像指示プロパティが含まれる
	sections := models.calls[0].config.ResponseSchema.Properties["sections"]
	assert.Contains(t, sections.Items.Properties, "visualPrompt")
	assert.Contains(t, sections.Items.Properties, "timestampStr")
}

func TestGenerateScriptContentKeyAlias(t *testing.T) {
	text := `{"title": "T", "content": [{"title": "S", "content": "Body."}]}`
	models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse(text)}}
	g := newTestGateway(models)

	script, err := g.GenerateScript(context.Background(), testTopic(), scriptTestConfig())
	require.NoError(t, err)
	require.Len(t, script.Sections, 2)
	assert.Equal(t, "Body.", script.Sections[0].Content)
}

func TestGenerateScriptRetriesOnceWithoutSchema(t *testing.T) {
	models := &fakeModels{responses: []*genai.GenerateContentResponse{
		textResponse("I could not produce structured output, sorry."),
		textResponse(validScriptJSON),
	}}
	g := newTestGateway(models)

	script, err := g.GenerateScript(context.Background(), testTopic(), scriptTestConfig())
	require.NoError(t, err)
	assert.Equal(t, "The Quiet Rise of Edge AI", script.Title)

	require.Len(t, models.calls, 2)
	assert.NotNil(t, models.calls[0].config.ResponseSchema, "first attempt is schema-constrained")
	assert.Nil(t, models.calls[1].config.ResponseSchema, "retry relaxes the schema")
	assert.Equal(t, models.calls[0].promptText(), models.calls[1].promptText(), "same prompt on retry")
}

func TestGenerateScriptRetryFailureSurfaces(t *testing.T) {
	models := &fakeModels{responses: []*genai.GenerateContentResponse{
		textResponse("no json here"),
		textResponse(`{"title": "T", "sections": []}`),
	}}
	g := newTestGateway(models)

	_, err := g.GenerateScript(context.Background(), testTopic(), scriptTestConfig())
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Len(t, models.calls, 2, "exactly one retry, never more")
}

func TestGenerateScriptUpstreamErrorNoRetry(t *testing.T) {
	models := &fakeModels{errs: []error{genai.APIError{Code: 500, Message: "internal"}}}
	g := newTestGateway(models)

	_, err := g.GenerateScript(context.Background(), testTopic(), scriptTestConfig())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
	assert.Len(t, models.calls, 1, "transport failures are not retried")
}

func TestGenerateScriptThinkingBudget(t *testing.T) {
	tests := []struct {
		name      string
		tier      domain.ModelTier
		wordCount int
		wantModel string
		wantThink bool
	}{
		{"pro long form", domain.TierPro, 2000, "pro-model", true},
		{"pro short form", domain.TierPro, 800, "pro-model", false},
		{"fast long form", domain.TierFast, 2000, "fast-model", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models := &fakeModels{responses: []*genai.GenerateContentResponse{textResponse(validScriptJSON)}}
			g := newTestGateway(models)

			cfg := scriptTestConfig()
			cfg.ModelTier = tt.tier
			cfg.WordCount = tt.wordCount

			_, err := g.GenerateScript(context.Background(), testTopic(), cfg)
			require.NoError(t, err)

			call := models.calls[0]
			assert.Equal(t, tt.wantModel, call.model)
			if tt.wantThink {
				require.NotNil(t, call.config.ThinkingConfig)
				assert.Equal(t, int32(1024), *call.config.ThinkingConfig.ThinkingBudget)
			} else {
				assert.Nil(t, call.config.ThinkingConfig)
			}
		})
	}
}
