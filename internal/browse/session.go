// Copyright (c) 2026 Artmarket. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package browse

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultRegistrySize bounds the registry when no size is configured.
const DefaultRegistrySize = 10_000

// Session is the discovery state of one visitor.
type Session struct {
	ID      string
	Filters *FilterStore
	Search  *SearchStore
}

// NewSession constructs a session with fresh, Idle stores.
func NewSession(id string, gateway Gateway, logger *slog.Logger) *Session {
	logger = logger.With(slog.String("session_id", id))

	return &Session{
		ID:      id,
		Filters: NewFilterStore(gateway, logger),
		Search:  NewSearchStore(gateway, logger),
	}
}

// ApplyFiltersToSearch applies the filter criteria within the hits of the
// last loaded search. With no loaded search it is a plain apply.
func (session *Session) ApplyFiltersToSearch(ctx context.Context) FilterState {
	return session.Filters.ApplyFilters(ctx, session.Search.Scope())
}

// Registry hands out sessions by key, keeping at most size of them. The
// least recently used session is evicted first.
type Registry struct {
	gateway Gateway
	logger  *slog.Logger

	// mu makes get-or-create atomic; the cache locks only per call.
	mu       sync.Mutex
	sessions *lru.Cache[string, *Session]
}

// NewRegistry constructs a [Registry]. A non-positive size uses
// [DefaultRegistrySize].
func NewRegistry(size int, gateway Gateway, logger *slog.Logger) (*Registry, error) {
	if size <= 0 {
		size = DefaultRegistrySize
	}

	sessions, err := lru.NewWithEvict(size, func(key string, _ *Session) {
		logger.Debug("browse_session_evicted", slog.String("session_id", key))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache: %w", err)
	}

	return &Registry{gateway: gateway, logger: logger, sessions: sessions}, nil
}

// Get returns the session for key, creating it on first use.
func (registry *Registry) Get(key string) *Session {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if session, ok := registry.sessions.Get(key); ok {
		return session
	}

	session := NewSession(key, registry.gateway, registry.logger)
	registry.sessions.Add(key, session)
	return session
}

// Peek returns the session for key without creating it or refreshing its
// recency.
func (registry *Registry) Peek(key string) (*Session, bool) {
	return registry.sessions.Peek(key)
}

// Remove drops the session for key and reports whether it existed.
func (registry *Registry) Remove(key string) bool {
	return registry.sessions.Remove(key)
}

// Len is the number of live sessions.
func (registry *Registry) Len() int {
	return registry.sessions.Len()
}
