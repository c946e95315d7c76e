package encoding

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONPayload はテキスト中にブラケット対が見つからないことを示します。
var ErrNoJSONPayload = errors.New("no json payload found in text")

var codeFencePattern = regexp.MustCompile("```json\n?|```")

// ExtractJSON はモデル出力のような雑多なテキストからJSON部分文字列を取り出します。
// コードフェンスを除去した上で、最初に開くブラケット（`{` または `[` の早い方）から
// 最後に閉じるブラケットまでの最外スパンを返します。見つからなければエラーです。
func ExtractJSON(text string) (string, error) {
	clean := codeFencePattern.ReplaceAllString(text, "")

	firstBrace := strings.Index(clean, "{")
	firstBracket := strings.Index(clean, "[")

	start := firstBrace
	switch {
	case firstBrace == -1:
		start = firstBracket
	case firstBracket == -1:
		start = firstBrace
	case firstBracket < firstBrace:
		start = firstBracket
	}

	lastBrace := strings.LastIndex(clean, "}")
	lastBracket := strings.LastIndex(clean, "]")
	end := lastBrace
	if lastBracket > end {
		end = lastBracket
	}

	if start == -1 || end == -1 || end <= start {
		return "", ErrNoJSONPayload
	}
	return strings.TrimSpace(clean[start : end+1]), nil
}
