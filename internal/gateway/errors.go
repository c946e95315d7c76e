package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

var (
	// ErrCredentialInvalid は「Requested entity was not found」系の失敗を表します。
	// 呼び出し側はこれを資格情報の失効として解釈し、キー取得ステップへ戻します。
	ErrCredentialInvalid = errors.New("credential invalidated by upstream")

	// ErrMalformedResponse は構造化レスポンスの解析失敗を表します。
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrNoImage は成功レスポンスに画像ペイロードが含まれていなかったことを表します。
	ErrNoImage = errors.New("no image generated")

	// ErrNoAudio は成功レスポンスに音声ペイロードが含まれていなかったことを表します。
	ErrNoAudio = errors.New("no audio generated")

	// ErrUpstream は資格情報の失効以外の一般的な上流失敗（ネットワーク・クォータ等）です。
	ErrUpstream = errors.New("upstream failure")
)

// wrapUpstream は genai のエラーをゲートウェイのエラー分類に写します。
// 資格情報の失効だけは区別して上位へそのまま伝播させます。
func wrapUpstream(op string, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusNotFound || strings.Contains(apiErr.Message, "Requested entity was not found") {
			return fmt.Errorf("%s: %w", op, ErrCredentialInvalid)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
}
