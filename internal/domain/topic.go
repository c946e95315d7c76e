package domain

import "github.com/google/uuid"

// CategoryCustom は手動入力されたトピックに固定で付与されるカテゴリです。
const CategoryCustom = "Custom"

// Topic は発見またはユーザー入力によって生まれたニューストピックです。
// 一度生成されたら不変として扱い、以後書き換えません。
type Topic struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	SourceURLs     []string `json:"sourceUrls"`
	RelevanceScore float64  `json:"relevanceScore"`
	Category       string   `json:"category,omitempty"`
}

// NewCustomTopic はユーザーが直接入力したトピックを生成します。
// カテゴリは "Custom"、スコアは 100 固定、出典リストは空になります。
func NewCustomTopic(title, summary string) Topic {
	return Topic{
		ID:             "topic-" + uuid.NewString(),
		Title:          title,
		Summary:        summary,
		SourceURLs:     nil,
		RelevanceScore: 100,
		Category:       CategoryCustom,
	}
}

// Clone はトピックの深いコピーを返します。
func (t Topic) Clone() Topic {
	c := t
	if t.SourceURLs != nil {
		c.SourceURLs = append([]string(nil), t.SourceURLs...)
	}
	return c
}
