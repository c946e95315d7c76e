package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrAPIKeyMissing は資格情報が環境変数にもローカルファイルにも存在しないことを示します。
// ゲートウェイ呼び出しの前提条件エラーであり、リトライでは回復しません。
var ErrAPIKeyMissing = errors.New("gemini api key is not configured")

// ResolveAPIKey は資格情報を解決します。優先順位は 環境変数 → ローカル保存ファイル です。
func (c *Config) ResolveAPIKey() (string, error) {
	if c.GeminiAPIKey != "" {
		return c.GeminiAPIKey, nil
	}

	data, err := os.ReadFile(c.CredentialFile)
	if err != nil {
		return "", ErrAPIKeyMissing
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", ErrAPIKeyMissing
	}
	return key, nil
}

// HasAPIKey は資格情報が解決可能かどうかだけを返します。
func (c *Config) HasAPIKey() bool {
	_, err := c.ResolveAPIKey()
	return err == nil
}

// ValidateEssentialConfig はアプリケーション実行に不可欠な設定を検証します。
// 資格情報は起動時には必須としません（ウィザード側で取得フローに誘導するため）。
func ValidateEssentialConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("configuration error: PORT is empty")
	}
	if cfg.ScriptFastModel == "" || cfg.ScriptProModel == "" {
		return fmt.Errorf("configuration error: script model ids are empty")
	}
	if cfg.ImageModel == "" || cfg.SpeechModel == "" {
		return fmt.Errorf("configuration error: asset model ids are empty")
	}
	if cfg.AuthorName == "" {
		return fmt.Errorf("configuration error: AUTHOR_NAME is empty")
	}
	return nil
}
