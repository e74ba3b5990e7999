package xp

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/futebadosparcas/matchday/internal/logger"
)

// SettingsStore loads stored weight overrides. A nil result means nothing is stored.
type SettingsStore interface {
	GetXPSettings(ctx context.Context, key string) (*Overrides, error)
}

// SettingsProvider resolves the effective weight table with a short-lived cache.
type SettingsProvider struct {
	store SettingsStore
	lru   *expirable.LRU[string, Settings]
}

// NewSettingsProvider creates a provider caching settings for ttl.
func NewSettingsProvider(store SettingsStore, ttl time.Duration) *SettingsProvider {
	return &SettingsProvider{
		store: store,
		lru:   expirable.NewLRU[string, Settings](DefaultSettingsCacheSize, nil, ttl),
	}
}

// Get returns the merged settings. Store failures fall back to the defaults so
// a broken settings row never blocks finalization.
func (p *SettingsProvider) Get(ctx context.Context) Settings {
	log := logger.FromContext(ctx)
	if s, ok := p.lru.Get(SettingsKey); ok {
		log.Debug(LogMsgSettingsCacheHit)
		return s
	}

	s := DefaultSettings()
	o, err := p.store.GetXPSettings(ctx, SettingsKey)
	if err != nil {
		log.Warn(LogMsgSettingsLoadFailed, "error", err)
		return s
	}
	if o != nil {
		s = s.Merge(*o)
	}
	p.lru.Add(SettingsKey, s)
	return s
}

// Invalidate drops the cached settings.
func (p *SettingsProvider) Invalidate() {
	p.lru.Purge()
}
