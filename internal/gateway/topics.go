package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"ap-script-studio/internal/domain"
	"ap-script-studio/internal/encoding"
)

const maxSourceURLs = 3

// topicPayload はモデルが返すトピック1件分のワイヤ形式です。
type topicPayload struct {
	Title          string  `json:"title"`
	Summary        string  `json:"summary"`
	RelevanceScore float64 `json:"relevanceScore"`
}

var topicListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":          {Type: genai.TypeString},
			"summary":        {Type: genai.TypeString},
			"relevanceScore": {Type: genai.TypeNumber, Description: "Score 1-100 based on interest"},
		},
	},
}

// DiscoverTopics はカテゴリに関連するトピックを5〜6件発見します。
// レスポンスが素のリストでも {"topics": ...} / {"items": ...} 形式でも受け付け、
// どの形にも合致しなければ失敗ではなく0件として扱います。
// 「Requested entity was not found」だけは資格情報失効として区別して伝播します。
func (g *Gateway) DiscoverTopics(ctx context.Context, category string) ([]domain.Topic, error) {
	resp, err := g.models.GenerateContent(ctx, g.cfg.ScriptFastModel, genai.Text(discoveryPrompt(category)), &genai.GenerateContentConfig{
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema:   topicListSchema,
		SafetySettings:   safetySettings(),
	})
	if err != nil {
		return nil, wrapUpstream("topic discovery", err)
	}

	payloads := decodeTopicList(ctx, resp.Text())
	urls := groundingURLs(resp)

	topics := make([]domain.Topic, 0, len(payloads))
	for _, p := range payloads {
		topics = append(topics, domain.Topic{
			ID:             "topic-" + uuid.NewString(),
			Title:          p.Title,
			Summary:        p.Summary,
			RelevanceScore: p.RelevanceScore,
			Category:       category,
			SourceURLs:     urls,
		})
	}
	return topics, nil
}

// decodeTopicList は受理可能な形を順に試します: 素の配列 → topics ラッパ → items ラッパ。
// すべて外れたら空結果ポリシーに落とします。
func decodeTopicList(ctx context.Context, text string) []topicPayload {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	raw, err := encoding.ExtractJSON(text)
	if err != nil {
		slog.WarnContext(ctx, "トピック応答からJSONを抽出できませんでした", "error", err)
		return nil
	}

	var list []topicPayload
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list
	}

	var wrapped struct {
		Topics []topicPayload `json:"topics"`
		Items  []topicPayload `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapped); err == nil {
		if wrapped.Topics != nil {
			return wrapped.Topics
		}
		if wrapped.Items != nil {
			return wrapped.Items
		}
	}

	slog.WarnContext(ctx, "トピック応答が既知のどの形にも一致しませんでした")
	return nil
}

// groundingURLs は検索グラウンディングの引用メタデータから出典URLを最大3件集めます。
func groundingURLs(resp *genai.GenerateContentResponse) []string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	var urls []string
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		urls = append(urls, chunk.Web.URI)
		if len(urls) == maxSourceURLs {
			break
		}
	}
	return urls
}
