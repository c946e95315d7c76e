package domain

// AssetKind は派生アセットの種別です。
type AssetKind string

const (
	AssetCover    AssetKind = "cover"
	AssetAudio    AssetKind = "audio"
	AssetSlides   AssetKind = "slides"
	AssetDocument AssetKind = "document"
)

// Valid は既知のアセット種別かどうかを返します。
func (k AssetKind) Valid() bool {
	switch k {
	case AssetCover, AssetAudio, AssetSlides, AssetDocument:
		return true
	}
	return false
}

// ImageAsset はインライン画像ペイロードです。
type ImageAsset struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
}

// AudioAsset は再生可能なWAVコンテナ入りの音声です。
type AudioAsset struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"-"`
}

// Slide はスライド概要の1枚分です。
type Slide struct {
	Title        string   `json:"title"`
	BulletPoints []string `json:"bulletPoints"`
	SpeakerNotes string   `json:"speakerNotes"`
}

// Clone はスライドの深いコピーを返します。
func (s Slide) Clone() Slide {
	c := s
	c.BulletPoints = append([]string(nil), s.BulletPoints...)
	return c
}

// AssetBundle は台本から派生する4つのアセットを保持します。
// 各フィールドは要求されたときにだけ個別に埋まります（先行生成なし）。
type AssetBundle struct {
	CoverImage        *ImageAsset `json:"coverImage,omitempty"`
	AudioOverview     *AudioAsset `json:"audioOverview,omitempty"`
	SlideDeck         []Slide     `json:"slideDeck,omitempty"`
	FormattedDocument string      `json:"formattedDocument,omitempty"`
}

// Clone はバンドルの深いコピーを返します。
func (b AssetBundle) Clone() AssetBundle {
	c := b
	if b.CoverImage != nil {
		img := *b.CoverImage
		img.Data = append([]byte(nil), b.CoverImage.Data...)
		c.CoverImage = &img
	}
	if b.AudioOverview != nil {
		au := *b.AudioOverview
		au.Data = append([]byte(nil), b.AudioOverview.Data...)
		c.AudioOverview = &au
	}
	if b.SlideDeck != nil {
		c.SlideDeck = make([]Slide, len(b.SlideDeck))
		for i, sl := range b.SlideDeck {
			c.SlideDeck[i] = sl.Clone()
		}
	}
	return c
}
