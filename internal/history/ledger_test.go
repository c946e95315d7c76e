package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ap-script-studio/internal/domain"
)

func sampleScript(title string) *domain.Script {
	return &domain.Script{
		Title: title,
		Sections: []domain.Section{
			{Title: "Intro", Content: "Opening words."},
		},
	}
}

func TestLedgerUpsertPrependsNewEntries(t *testing.T) {
	l := NewLedger()
	topic := domain.Topic{ID: "topic-1", Title: "AI"}
	cfg := domain.GenerationConfig{Format: domain.FormatArticle}

	first := l.Upsert(topic, cfg, sampleScript("First"), domain.AssetBundle{})
	second := l.Upsert(topic, cfg, sampleScript("Second"), domain.AssetBundle{})

	require.Equal(t, 2, l.Len())
	entries := l.List()
	assert.Equal(t, second.ID, entries[0].ID, "newest entry comes first")
	assert.Equal(t, first.ID, entries[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestLedgerUpsertSameKeyReplacesInPlace(t *testing.T) {
	l := NewLedger()
	topic := domain.Topic{ID: "topic-1", Title: "AI"}
	cfg := domain.GenerationConfig{Format: domain.FormatArticle}

	l.Upsert(topic, cfg, sampleScript("Other"), domain.AssetBundle{})
	original := l.Upsert(topic, cfg, sampleScript("Same"), domain.AssetBundle{})

	revised := sampleScript("Same")
	revised.Sections[0].Content = "Revised body."
	updated := l.Upsert(topic, cfg, revised, domain.AssetBundle{})

	require.Equal(t, 2, l.Len(), "same key must not add a new entry")
	assert.Equal(t, original.ID, updated.ID, "identifier is preserved")

	entries := l.List()
	assert.Equal(t, original.ID, entries[0].ID, "position is preserved")
	assert.Equal(t, "Revised body.", entries[0].Script.Sections[0].Content)
}

func TestLedgerUpsertSameKeyRefreshesTimestamp(t *testing.T) {
	l := NewLedger()
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }

	topic := domain.Topic{ID: "topic-1", Title: "AI"}
	cfg := domain.GenerationConfig{}

	original := l.Upsert(topic, cfg, sampleScript("Same"), domain.AssetBundle{})
	require.Equal(t, clock, original.Timestamp)

	clock = clock.Add(5 * time.Minute)
	updated := l.Upsert(topic, cfg, sampleScript("Same"), domain.AssetBundle{})

	// 同一キーの再書き込みで変わるのはタイムスタンプだけ
	require.Equal(t, 1, l.Len())
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, clock, updated.Timestamp)
	assert.True(t, updated.Timestamp.After(original.Timestamp))
}

func TestLedgerDifferentTitleIsNewEntry(t *testing.T) {
	l := NewLedger()
	topic := domain.Topic{ID: "topic-1", Title: "AI"}
	cfg := domain.GenerationConfig{}

	l.Upsert(topic, cfg, sampleScript("A"), domain.AssetBundle{})
	l.Upsert(topic, cfg, sampleScript("B"), domain.AssetBundle{})

	assert.Equal(t, 2, l.Len())
}

func TestLedgerSnapshotsAreIsolated(t *testing.T) {
	l := NewLedger()
	topic := domain.Topic{ID: "topic-1", Title: "AI"}
	script := sampleScript("Isolated")

	entry := l.Upsert(topic, domain.GenerationConfig{}, script, domain.AssetBundle{})

	// 保存後の編集は履歴に波及しない
	script.Sections[0].Content = "Edited after save."
	got, ok := l.Get(entry.ID)
	require.True(t, ok)
	assert.Equal(t, "Opening words.", got.Script.Sections[0].Content)
}

func TestLedgerGetUnknownID(t *testing.T) {
	l := NewLedger()
	_, ok := l.Get("hist-missing")
	assert.False(t, ok)
}
