// Package wizard は複数ステップの制作フロー（トピック→設定→台本→アセット）の
// 単一の真実の状態を保持するステートマシンです。
// 1セッションにつき1インスタンスを生成し、セッション終了とともに破棄します。
package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ap-script-studio/internal/domain"
	"ap-script-studio/internal/gateway"
	"ap-script-studio/internal/history"
)

// DefaultCategory は自動トピック発見に使う既定カテゴリです。
const DefaultCategory = "General"

// Generator はジェネレーションゲートウェイの結果・エラーの形だけに依存する
// ステートマシン側の境界です。実装はネットワーク呼び出しでもテスト用の偽物でも構いません。
type Generator interface {
	DiscoverTopics(ctx context.Context, category string) ([]domain.Topic, error)
	GenerateScript(ctx context.Context, topic domain.Topic, cfg domain.GenerationConfig) (*domain.Script, error)
	GenerateCoverImage(ctx context.Context, script *domain.Script) (*domain.ImageAsset, error)
	GenerateAudioOverview(ctx context.Context, script *domain.Script) (*domain.AudioAsset, error)
	GenerateSlideDeck(ctx context.Context, script *domain.Script) ([]domain.Slide, error)
	GenerateFormattedDocument(ctx context.Context, script *domain.Script) (string, error)
}

// Notifier は完成・失敗の通知チャネルです。nil の場合は通知しません。
type Notifier interface {
	NotifyCompletion(ctx context.Context, req domain.NotificationRequest) error
	NotifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) error
}

// State はウィザードの観測可能な状態のスナップショットです。
type State struct {
	Step         Step                    `json:"step"`
	FurthestStep Step                    `json:"furthestStepReached"`
	Topic        *domain.Topic           `json:"selectedTopic,omitempty"`
	Config       domain.GenerationConfig `json:"scriptConfig"`
	Script       *domain.Script          `json:"script,omitempty"`
	Assets       domain.AssetBundle      `json:"assets"`
	Processing   bool                    `json:"isProcessing"`
	Status       string                  `json:"processStatus"`
	Progress     int                     `json:"progress"`
}

// Machine はウィザード1セッション分のステートマシンです。
// 変更系の入口はすべて processing フラグを検査し、同時に実行できる
// 生成操作を1つに制限します。ゲートウェイ呼び出しの間はロックを
// 手放すため、状態のポーリングは生成中も止まりません。
type Machine struct {
	mu       sync.Mutex
	gen      Generator
	ledger   *history.Ledger
	notifier Notifier

	tickInterval time.Duration

	state          State
	topics         []domain.Topic
	autoDiscovered bool
}

// NewMachine はキー取得待ち状態のステートマシンを生成します。
func NewMachine(gen Generator, ledger *history.Ledger, notifier Notifier) *Machine {
	return &Machine{
		gen:          gen,
		ledger:       ledger,
		notifier:     notifier,
		tickInterval: defaultTickInterval,
		state: State{
			Step:         StepAPIKeyPending,
			FurthestStep: StepAPIKeyPending,
		},
	}
}

// Snapshot は状態の深いコピーを返します。
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state
	if m.state.Topic != nil {
		t := m.state.Topic.Clone()
		s.Topic = &t
	}
	s.Script = m.state.Script.Clone()
	s.Assets = m.state.Assets.Clone()
	return s
}

// Topics は現在のトピック一覧のコピーを返します。
func (m *Machine) Topics() []domain.Topic {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Topic, len(m.topics))
	for i, t := range m.topics {
		out[i] = t.Clone()
	}
	return out
}

// Ledger はこのセッションが所有する履歴台帳を返します。
func (m *Machine) Ledger() *history.Ledger {
	return m.ledger
}

// UnlockKey は資格情報の確認後にウィザードを discovery へ進めます。
// 鍵が新しく解放された状態につき一度だけ、トピックが空なら自動発見を行います。
func (m *Machine) UnlockKey(ctx context.Context) error {
	m.mu.Lock()
	if m.state.Processing {
		m.mu.Unlock()
		return ErrBusy
	}
	m.advanceTo(StepDiscovery)
	shouldDiscover := m.markAutoDiscovery()
	m.mu.Unlock()

	if shouldDiscover {
		m.autoDiscover(ctx)
	}
	return nil
}

// Navigate は到達済みのステップへの移動を処理します。
// 生成処理中は拒否し、未到達のステップへの移動は状態を変えません。
func (m *Machine) Navigate(ctx context.Context, step Step) error {
	m.mu.Lock()
	if m.state.Processing {
		m.mu.Unlock()
		return ErrBusy
	}
	if step > m.state.FurthestStep {
		m.mu.Unlock()
		return ErrStepLocked
	}
	m.state.Step = step

	shouldDiscover := false
	if step == StepDiscovery {
		shouldDiscover = m.markAutoDiscovery()
	}
	m.mu.Unlock()

	if shouldDiscover {
		m.autoDiscover(ctx)
	}
	return nil
}

// RefreshTopics は指定カテゴリでトピック発見を実行します。
// 資格情報の失効を検知した場合はウィザードをキー取得待ちへ戻します。
func (m *Machine) RefreshTopics(ctx context.Context, category string) error {
	if category == "" {
		category = DefaultCategory
	}

	m.mu.Lock()
	if m.state.Processing {
		m.mu.Unlock()
		return ErrBusy
	}
	m.state.Processing = true
	m.state.Status = fmt.Sprintf("Scanning %s trends...", category)
	m.state.Progress = 30
	m.mu.Unlock()

	topics, err := m.gen.DiscoverTopics(ctx, category)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Processing = false
	m.state.Status = ""
	m.state.Progress = 100

	if err != nil {
		if errors.Is(err, gateway.ErrCredentialInvalid) {
			slog.WarnContext(ctx, "資格情報が失効したためキー取得ステップへ戻します")
			m.lockKeyLocked()
		}
		return err
	}

	m.topics = topics
	return nil
}

// AddCustomTopic は手動入力のトピックを一覧に加えて返します。
func (m *Machine) AddCustomTopic(title, summary string) (domain.Topic, error) {
	if title == "" {
		return domain.Topic{}, fmt.Errorf("%w: custom topic title is empty", ErrInvalidConfig)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Processing {
		return domain.Topic{}, ErrBusy
	}

	topic := domain.NewCustomTopic(title, summary)
	m.topics = append(m.topics, topic)
	return topic, nil
}

// SelectTopic はトピックを選択し、configuration へ進めます。
func (m *Machine) SelectTopic(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Processing {
		return ErrBusy
	}

	for _, t := range m.topics {
		if t.ID == id {
			selected := t.Clone()
			m.state.Topic = &selected
			m.state.Progress = 33
			m.advanceTo(StepConfiguration)
			return nil
		}
	}
	return ErrUnknownTopic
}

// GenerateScript は生成プロファイルを確定して台本生成を実行します。
// 実行中は合成プログレスが一定周期で進み、成功・失敗どちらでも必ず停止します。
// 成功時は生成前のアセットバンドルとともに履歴へ書き込まれます。
// 失敗してもステップは scripting に留まり、再試行または後退が可能です。
func (m *Machine) GenerateScript(ctx context.Context, cfg domain.GenerationConfig) error {
	if !cfg.Format.Valid() {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, cfg.Format)
	}

	m.mu.Lock()
	if m.state.Processing {
		m.mu.Unlock()
		return ErrBusy
	}
	if m.state.Topic == nil {
		m.mu.Unlock()
		return ErrNoTopic
	}

	topic := m.state.Topic.Clone()
	m.state.Config = cfg
	m.advanceTo(StepScripting)
	m.state.Processing = true
	m.state.Status = fmt.Sprintf("Composing %s...", cfg.Format)
	m.state.Progress = progressStart
	m.mu.Unlock()

	ticker := m.startProgressTicker()
	defer ticker.Stop()

	script, err := m.gen.GenerateScript(ctx, topic, cfg)

	m.mu.Lock()
	m.state.Processing = false
	if err != nil {
		m.state.Progress = 0
		m.state.Status = "Error: " + err.Error()
		m.mu.Unlock()

		m.notifyError(ctx, err, domain.NotificationRequest{
			SourceTopic:    topic.Title,
			OutputCategory: "script",
			TargetTitle:    domain.CategoryNotAvailable,
			ExecutionMode:  executionMode(cfg),
		})
		return err
	}

	// 生成前に保持していたバンドルを添えて履歴を更新します
	// （台本の再生成でアセットはリセットされません）。
	assetsBefore := m.state.Assets
	m.state.Script = script
	m.state.Status = "Draft ready."
	m.state.Progress = 100
	m.ledger.Upsert(topic, cfg, script, assetsBefore)
	m.mu.Unlock()

	m.notifyCompletion(ctx, domain.NotificationRequest{
		SourceTopic:    topic.Title,
		OutputCategory: "script",
		TargetTitle:    script.Title,
		ExecutionMode:  executionMode(cfg),
	})
	return nil
}

// UpdateScript はエディタからの編集内容を反映します。
func (m *Machine) UpdateScript(script *domain.Script) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Processing {
		return ErrBusy
	}
	if m.state.Script == nil {
		return ErrNoScript
	}

	updated := script.Clone()
	updated.Config = m.state.Config
	m.state.Script = updated
	return nil
}

// ConfirmScript は台本を確定し assets へ進めます。他の副作用はありません。
func (m *Machine) ConfirmScript() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Processing {
		return ErrBusy
	}
	if m.state.Script == nil {
		return ErrNoScript
	}

	m.advanceTo(StepAssets)
	return nil
}

// GenerateAsset は指定種別の派生アセットを生成してバンドルへ統合します。
// 成功時は返された1フィールドだけを差し替え、履歴を全バンドルで更新します。
// 失敗時はバンドルに一切手を付けません。
func (m *Machine) GenerateAsset(ctx context.Context, kind domain.AssetKind) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown asset kind: %q", kind)
	}

	m.mu.Lock()
	if m.state.Processing {
		m.mu.Unlock()
		return ErrBusy
	}
	if m.state.Script == nil {
		m.mu.Unlock()
		return ErrNoScript
	}

	topic := m.state.Topic.Clone()
	cfg := m.state.Config
	script := m.state.Script.Clone()
	m.state.Processing = true
	m.state.Status = fmt.Sprintf("Generating %s...", kind)
	m.mu.Unlock()

	merge, err := m.produceAsset(ctx, kind, script)

	m.mu.Lock()
	m.state.Processing = false
	m.state.Status = ""
	if err != nil {
		m.mu.Unlock()

		m.notifyError(ctx, err, domain.NotificationRequest{
			SourceTopic:    topic.Title,
			OutputCategory: string(kind),
			TargetTitle:    script.Title,
			ExecutionMode:  executionMode(cfg),
		})
		return err
	}

	merge(&m.state.Assets)
	m.ledger.Upsert(topic, cfg, m.state.Script, m.state.Assets)
	m.mu.Unlock()

	m.notifyCompletion(ctx, domain.NotificationRequest{
		SourceTopic:    topic.Title,
		OutputCategory: string(kind),
		TargetTitle:    script.Title,
		ExecutionMode:  executionMode(cfg),
	})
	return nil
}

// produceAsset は種別ごとのゲートウェイ操作を実行し、
// 成功時にバンドルの該当フィールドだけを差し替えるクロージャを返します。
func (m *Machine) produceAsset(ctx context.Context, kind domain.AssetKind, script *domain.Script) (func(*domain.AssetBundle), error) {
	switch kind {
	case domain.AssetCover:
		img, err := m.gen.GenerateCoverImage(ctx, script)
		if err != nil {
			return nil, err
		}
		return func(b *domain.AssetBundle) { b.CoverImage = img }, nil

	case domain.AssetAudio:
		audio, err := m.gen.GenerateAudioOverview(ctx, script)
		if err != nil {
			return nil, err
		}
		return func(b *domain.AssetBundle) { b.AudioOverview = audio }, nil

	case domain.AssetSlides:
		slides, err := m.gen.GenerateSlideDeck(ctx, script)
		if err != nil {
			return nil, err
		}
		return func(b *domain.AssetBundle) { b.SlideDeck = slides }, nil

	default: // domain.AssetDocument
		doc, err := m.gen.GenerateFormattedDocument(ctx, script)
		if err != nil {
			return nil, err
		}
		return func(b *domain.AssetBundle) { b.FormattedDocument = doc }, nil
	}
}

// LoadHistory は履歴エントリでウィザード全体を1ステップで置き換えます。
// 復元後は台本レビューのため scripting へ移動し、到達済み最遠ステップは
// assets まで解放されます。生成処理中の復元は拒否され、状態は変わりません。
func (m *Machine) LoadHistory(entry *history.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Processing {
		return ErrBusy
	}

	topic := entry.Topic.Clone()
	m.state = State{
		Step:         StepScripting,
		FurthestStep: StepAssets,
		Topic:        &topic,
		Config:       entry.Config,
		Script:       entry.Script.Clone(),
		Assets:       entry.Assets.Clone(),
		Processing:   false,
		Status:       "Restored from history",
		Progress:     100,
	}
	return nil
}

// --- 内部ヘルパー ---

// advanceTo は現在ステップを移動し、必要なら到達済み最遠ステップを前進させます。
// 到達済み最遠ステップは決して後退しません。
func (m *Machine) advanceTo(step Step) {
	m.state.Step = step
	if step > m.state.FurthestStep {
		m.state.FurthestStep = step
	}
}

// lockKeyLocked はウィザードをキー取得待ちへ戻します。呼び出し側がロックを保持します。
func (m *Machine) lockKeyLocked() {
	m.state.Step = StepAPIKeyPending
	m.autoDiscovered = false
}

// markAutoDiscovery は自動発見を実行すべきか判定し、実行予約を記録します。
// 鍵の解放1回につき1度しか true を返しません。呼び出し側がロックを保持します。
func (m *Machine) markAutoDiscovery() bool {
	if m.autoDiscovered || len(m.topics) > 0 {
		return false
	}
	m.autoDiscovered = true
	return true
}

// autoDiscover は既定カテゴリでの自動トピック発見を行います。失敗しても致命的ではありません。
func (m *Machine) autoDiscover(ctx context.Context) {
	if err := m.RefreshTopics(ctx, DefaultCategory); err != nil {
		slog.WarnContext(ctx, "自動トピック発見に失敗しました", "error", err)
	}
}

func (m *Machine) notifyCompletion(ctx context.Context, req domain.NotificationRequest) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.NotifyCompletion(ctx, req); err != nil {
		slog.WarnContext(ctx, "完了通知の送信に失敗しました", "error", err)
	}
}

func (m *Machine) notifyError(ctx context.Context, errDetail error, req domain.NotificationRequest) {
	if m.notifier == nil {
		return
	}
	if err := m.notifier.NotifyError(ctx, errDetail, req); err != nil {
		slog.WarnContext(ctx, "エラー通知の送信に失敗しました", "error", err)
	}
}

func executionMode(cfg domain.GenerationConfig) string {
	return fmt.Sprintf("%s / %s", cfg.Format, cfg.ModelTier)
}
