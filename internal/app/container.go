// Package app はアプリケーションの依存関係（DIコンテナ）を組み立てます。
package app

import (
	"context"
	"sync"

	"ap-script-studio/internal/adapters"
	"ap-script-studio/internal/config"
	"ap-script-studio/internal/domain"
	"ap-script-studio/internal/gateway"
	"ap-script-studio/internal/history"
	"ap-script-studio/internal/session"
	"ap-script-studio/internal/wizard"
)

// Container はアプリケーションの依存関係を保持します。
type Container struct {
	Config   *config.Config
	Sessions *session.Store
	Notifier adapters.SlackNotifier

	// ゲートウェイは資格情報が揃って初めて構築できるため遅延初期化します。
	mu sync.Mutex
	gw *gateway.Gateway
}

// BuildContainer は依存関係を組み立てます。資格情報が未設定でも失敗せず、
// ゲートウェイの初期化はウィザードがキーを解放するまで遅延されます。
func BuildContainer(cfg *config.Config) *Container {
	return &Container{
		Config:   cfg,
		Sessions: session.NewStore(cfg.SessionTTL),
		Notifier: adapters.NewSlackAdapter(cfg.SlackWebhookURL),
	}
}

// Gateway は構築済みのゲートウェイを返すか、資格情報を解決して初期化します。
// 資格情報がどこにも無ければ config.ErrAPIKeyMissing を返します。
func (c *Container) Gateway(ctx context.Context) (*gateway.Gateway, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gw != nil {
		return c.gw, nil
	}

	gw, err := gateway.New(ctx, c.Config)
	if err != nil {
		return nil, err
	}
	c.gw = gw
	return gw, nil
}

// NewSession はセッション1つ分のステートマシンと台帳を生成して登録します。
func (c *Container) NewSession() (string, *wizard.Machine) {
	m := wizard.NewMachine(&lazyGenerator{c: c}, history.NewLedger(), c.Notifier)
	return c.Sessions.Create(m), m
}

// lazyGenerator は呼び出しの瞬間に資格情報を検査してゲートウェイへ委譲します。
// これにより「前提条件: 資格情報の存在」が全ゲートウェイ操作の前で enforce されます。
type lazyGenerator struct {
	c *Container
}

func (l *lazyGenerator) DiscoverTopics(ctx context.Context, category string) ([]domain.Topic, error) {
	gw, err := l.c.Gateway(ctx)
	if err != nil {
		return nil, err
	}
	return gw.DiscoverTopics(ctx, category)
}

func (l *lazyGenerator) GenerateScript(ctx context.Context, topic domain.Topic, cfg domain.GenerationConfig) (*domain.Script, error) {
	gw, err := l.c.Gateway(ctx)
	if err != nil {
		return nil, err
	}
	return gw.GenerateScript(ctx, topic, cfg)
}

func (l *lazyGenerator) GenerateCoverImage(ctx context.Context, script *domain.Script) (*domain.ImageAsset, error) {
	gw, err := l.c.Gateway(ctx)
	if err != nil {
		return nil, err
	}
	return gw.GenerateCoverImage(ctx, script)
}

func (l *lazyGenerator) GenerateAudioOverview(ctx context.Context, script *domain.Script) (*domain.AudioAsset, error) {
	gw, err := l.c.Gateway(ctx)
	if err != nil {
		return nil, err
	}
	return gw.GenerateAudioOverview(ctx, script)
}

func (l *lazyGenerator) GenerateSlideDeck(ctx context.Context, script *domain.Script) ([]domain.Slide, error) {
	gw, err := l.c.Gateway(ctx)
	if err != nil {
		return nil, err
	}
	return gw.GenerateSlideDeck(ctx, script)
}

func (l *lazyGenerator) GenerateFormattedDocument(ctx context.Context, script *domain.Script) (string, error) {
	gw, err := l.c.Gateway(ctx)
	if err != nil {
		return "", err
	}
	return gw.GenerateFormattedDocument(ctx, script)
}
