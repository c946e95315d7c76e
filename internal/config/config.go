package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultScriptFastModel は台本生成の高速モデルです。
	DefaultScriptFastModel = "gemini-3-flash-preview"
	// DefaultScriptProModel は長文・高品質向けのモデルです。
	DefaultScriptProModel = "gemini-3-pro-preview"
	DefaultImageModel     = "gemini-3-pro-image-preview"
	DefaultSpeechModel    = "gemini-2.5-flash-preview-tts"

	// DefaultVoiceName は音声概要のプリセットボイスです。
	DefaultVoiceName = "Kore"

	// DefaultAudioSampleRate はTTSが返すPCMのサンプルレート (Hz) です。
	DefaultAudioSampleRate = 24000

	// DefaultAuthorName は帰属表示（コピーライト）に使用される著者名です。
	DefaultAuthorName = "Kong Chun Yin"

	// DefaultSessionTTL は操作が途絶えたウィザードセッションの保持期間です。
	DefaultSessionTTL = 30 * time.Minute

	DefaultShutdownTimeout = 15 * time.Second
)

// Config は環境変数から読み込まれたアプリケーションの全設定を保持します。
type Config struct {
	Port            string
	ServiceURL      string
	ShutdownTimeout time.Duration

	// GeminiAPIKey は環境変数由来の資格情報です。空の場合は CredentialFile を参照します。
	GeminiAPIKey string
	// CredentialFile はローカルに保存された資格情報ファイルのパスです。
	CredentialFile string

	ScriptFastModel string
	ScriptProModel  string
	ImageModel      string
	SpeechModel     string
	VoiceName       string

	// AuthorName は生成物へ付与する帰属表示の著者名です。
	AuthorName string

	SlackWebhookURL string

	SessionTTL time.Duration
}

// LoadConfig は環境変数から設定を読み込み、Config 構造体を生成します。
func LoadConfig() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		ServiceURL:      getEnv("SERVICE_URL", "http://localhost:8080"),
		ShutdownTimeout: DefaultShutdownTimeout,

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		CredentialFile: getEnv("GEMINI_CREDENTIAL_FILE", defaultCredentialFile()),

		ScriptFastModel: getEnv("SCRIPT_FAST_MODEL", DefaultScriptFastModel),
		ScriptProModel:  getEnv("SCRIPT_PRO_MODEL", DefaultScriptProModel),
		ImageModel:      getEnv("IMAGE_MODEL", DefaultImageModel),
		SpeechModel:     getEnv("SPEECH_MODEL", DefaultSpeechModel),
		VoiceName:       getEnv("SPEECH_VOICE", DefaultVoiceName),

		AuthorName: getEnv("AUTHOR_NAME", DefaultAuthorName),

		SlackWebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),

		SessionTTL: DefaultSessionTTL,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// defaultCredentialFile はユーザー設定ディレクトリ配下の資格情報パスを返します。
// 設定ディレクトリが解決できない環境ではカレント配下にフォールバックします。
func defaultCredentialFile() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", ".ap-script-studio", "credential")
	}
	return filepath.Join(base, "ap-script-studio", "credential")
}
