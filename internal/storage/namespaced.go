package storage

import (
	"context"
	"strings"
)

// Namespaced prefixes every key so several owners can share one backing store.
type Namespaced struct {
	inner  Store
	prefix string
}

// ForSession scopes inner to a single browser session.
func ForSession(inner Store, sessionID string) *Namespaced {
	return &Namespaced{inner: inner, prefix: "session:" + sessionID + ":"}
}

// NewNamespaced scopes inner under prefix, adding the ":" separator when missing.
func NewNamespaced(inner Store, prefix string) *Namespaced {
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &Namespaced{inner: inner, prefix: prefix}
}

func (n *Namespaced) Get(ctx context.Context, key string) (string, bool, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key, value string) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}
