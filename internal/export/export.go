// Package export は台本・スライド・ドキュメントをダウンロード可能な形式へ
// 整形する純粋関数群です。データモデルのフィールド意味論をそのまま保存します。
package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"ap-script-studio/internal/domain"
)

const textRule = "========================================"

// utf8BOM はWordに文字コードを正しく認識させるために先頭へ付与します。
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func attributionLine(authorName string) string {
	return fmt.Sprintf("© %d %s. All Rights Reserved.", time.Now().Year(), authorName)
}

// ScriptText は台本のプレーンテキスト出力を組み立てます。
func ScriptText(script *domain.Script, authorName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s\n\n", script.Title, script.SubtitleOrDescription)
	b.WriteString(textRule + "\n\n")

	for _, sec := range script.Sections {
		fmt.Fprintf(&b, "--- %s ---\n\n", sec.Title)
		if sec.Video != nil && sec.Video.VisualPrompt != "" {
			fmt.Fprintf(&b, "[Visual: %s]\n", sec.Video.VisualPrompt)
		}
		fmt.Fprintf(&b, "%s\n\n", sec.Content)
	}

	fmt.Fprintf(&b, "\n\n%s\n%s", textRule, attributionLine(authorName))
	return b.String()
}

// SlidesMarkdown はスライド概要のMarkdown出力を組み立てます。
// 末尾には帰属表示行がリテラルで付きます。
func SlidesMarkdown(title string, slides []domain.Slide, authorName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Slide Deck: %s\n\n", title)

	for i, slide := range slides {
		fmt.Fprintf(&b, "## Slide %d: %s\n", i+1, slide.Title)
		for _, bp := range slide.BulletPoints {
			fmt.Fprintf(&b, "- %s\n", bp)
		}
		fmt.Fprintf(&b, "\n*Speaker Notes: %s*\n\n---\n\n", slide.SpeakerNotes)
	}

	fmt.Fprintf(&b, "\n\n%s", attributionLine(authorName))
	return b.String()
}

// WordDocument は整形済みドキュメント断片をWord互換のHTMLシェルで包み、
// `.doc` として保存できるバイト列を返します。
func WordDocument(title, fragment, authorName string) []byte {
	header := fmt.Sprintf(`<html xmlns:o='urn:schemas-microsoft-com:office:office' xmlns:w='urn:schemas-microsoft-com:office:word' xmlns='http://www.w3.org/TR/REC-html40'><head><meta charset='utf-8'><title>%s</title></head><body>`, title)
	footer := fmt.Sprintf(`<div style="text-align:center; margin-top: 50px; font-size: 0.8em; color: #666; border-top: 1px solid #ccc; padding-top: 20px;">%s</div></body></html>`, attributionLine(authorName))

	var buf bytes.Buffer
	buf.Write(utf8BOM)
	buf.WriteString(header)
	buf.WriteString(normalizeFragment(fragment))
	buf.WriteString(footer)
	return buf.Bytes()
}

// normalizeFragment は断片をHTMLに正規化します。モデルがHTMLではなく
// Markdownを返してくることがあるため、タグが見当たらない場合は変換します。
func normalizeFragment(fragment string) string {
	if strings.Contains(fragment, "<") {
		return fragment
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(fragment), &buf); err != nil {
		slog.Warn("Markdown断片のHTML変換に失敗したため原文のまま出力します", "error", err)
		return fragment
	}
	return buf.String()
}
