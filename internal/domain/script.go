package domain

// ModelTier は台本生成に使用するモデルの階層を表します。
type ModelTier string

const (
	TierFast ModelTier = "fast"
	TierPro  ModelTier = "pro"
)

// Format は生成物の出力形式です。形式によってセクションが
// 映像指示・タイムスタンプを持つかどうかが決まります。
type Format string

const (
	FormatArticle      Format = "article"
	FormatVideoScript  Format = "video-script"
	FormatFormalReport Format = "formal-report"
	FormatNewsletter   Format = "newsletter"
)

// HasVideoDirection はこの形式のセクションが映像指示を伴うかを返します。
func (f Format) HasVideoDirection() bool {
	return f == FormatVideoScript
}

// Valid は既知の形式かどうかを返します。
func (f Format) Valid() bool {
	switch f {
	case FormatArticle, FormatVideoScript, FormatFormalReport, FormatNewsletter:
		return true
	}
	return false
}

// GenerationConfig はウィザード1回分の生成プロファイルです。
// 生成に渡した後は不変として扱います（編集時は新しい値を作ります）。
type GenerationConfig struct {
	// WordCount は目標語数です。推奨レンジは 300〜3000。
	WordCount  int       `json:"wordCount"`
	Style      string    `json:"style"`
	ModelTier  ModelTier `json:"modelTier"`
	AuthorRole string    `json:"authorRole"`
	Format     Format    `json:"format"`
	Language   string    `json:"language"`
}

// VideoDirection は video-script 形式のセクションだけが持つ拡張レコードです。
type VideoDirection struct {
	// VisualPrompt は背景映像などの視覚演出の指示文です。
	VisualPrompt string `json:"visualPrompt"`
	// Timestamp は "00:00" のようなタイムスタンプ表記です。
	Timestamp string `json:"timestampStr"`
}

// Section は台本の1セクションです。Video は形式が video-script の場合のみ
// 意味を持ちます（タグ付きバリアント）。
type Section struct {
	Title   string          `json:"title"`
	Content string          `json:"content"`
	Video   *VideoDirection `json:"video,omitempty"`
}

// Clone はセクションの深いコピーを返します。
func (s Section) Clone() Section {
	c := s
	if s.Video != nil {
		v := *s.Video
		c.Video = &v
	}
	return c
}

// Script は生成された長文台本です。
// 不変条件: 最後のセクションは必ずゲートウェイが付与した帰属表示セクションです。
type Script struct {
	Title                 string           `json:"title"`
	SubtitleOrDescription string           `json:"subtitleOrDescription"`
	Tags                  []string         `json:"tags"`
	Sections              []Section        `json:"sections"`
	Config                GenerationConfig `json:"config"`
}

// Clone は台本の深いコピーを返します。履歴スナップショットの分離に使用します。
func (s *Script) Clone() *Script {
	if s == nil {
		return nil
	}
	c := *s
	c.Tags = append([]string(nil), s.Tags...)
	c.Sections = make([]Section, len(s.Sections))
	for i, sec := range s.Sections {
		c.Sections[i] = sec.Clone()
	}
	return &c
}
