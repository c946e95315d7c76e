// Package session はセッションIDとウィザードステートマシンの対応を
// メモリ上で管理します。永続化は行わず、TTLで自然に破棄されます。
package session

import (
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"ap-script-studio/internal/wizard"
)

// Store はTTL付きのインメモリセッションストアです。
// 参照のたびに期限を延長するスライディング方式です。
type Store struct {
	cache *cache.Cache
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		cache: cache.New(ttl, ttl/2),
	}
}

// Create はステートマシンを登録して新しいセッションIDを返します。
func (s *Store) Create(m *wizard.Machine) string {
	id := uuid.NewString()
	s.cache.Set(id, m, cache.DefaultExpiration)
	return id
}

// Get はセッションIDからステートマシンを引き、期限を延長します。
func (s *Store) Get(id string) (*wizard.Machine, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}
	m := v.(*wizard.Machine)
	s.cache.Set(id, m, cache.DefaultExpiration)
	return m, true
}
