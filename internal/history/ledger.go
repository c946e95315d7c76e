// Package history はセッション内で完成した作品の追記・更新ログを保持します。
package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ap-script-studio/internal/domain"
)

// Entry は完成した1作品のスナップショットです。
// 中のトピック・台本・アセットは深いコピーであり、エディタ側の後続編集が
// 保存済みの履歴へ波及することはありません。
type Entry struct {
	ID        string                  `json:"id"`
	Timestamp time.Time               `json:"timestamp"`
	Topic     domain.Topic            `json:"topic"`
	Config    domain.GenerationConfig `json:"config"`
	Script    *domain.Script          `json:"script"`
	Assets    domain.AssetBundle      `json:"assets"`
}

// Ledger は表示用に新しい順で並ぶ無制限の履歴ログです。
// セッションをまたぐ永続化は行いません。
type Ledger struct {
	mu      sync.Mutex
	entries []*Entry
	now     func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// Upsert は (トピックID, 台本タイトル) をキーに履歴を書き込みます。
// 既存キーなら内容を置き換えてタイムスタンプだけ更新し、IDと並び順は保存します。
// 新規キーなら新しいIDを発行して先頭に追加します。
func (l *Ledger) Upsert(topic domain.Topic, cfg domain.GenerationConfig, script *domain.Script, assets domain.AssetBundle) *Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := &Entry{
		Timestamp: l.now(),
		Topic:     topic.Clone(),
		Config:    cfg,
		Script:    script.Clone(),
		Assets:    assets.Clone(),
	}

	for i, existing := range l.entries {
		if existing.Topic.ID == topic.ID && existing.Script.Title == script.Title {
			entry.ID = existing.ID
			l.entries[i] = entry
			return entry
		}
	}

	entry.ID = "hist-" + uuid.NewString()
	l.entries = append([]*Entry{entry}, l.entries...)
	return entry
}

// List は新しい順のエントリ一覧を返します。
func (l *Ledger) List() []*Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Entry(nil), l.entries...)
}

// Get はIDでエントリを探します。
func (l *Ledger) Get(id string) (*Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Len は現在のエントリ数を返します。
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
