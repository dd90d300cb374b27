// Package identity resolves a stable opaque identifier for the current
// visitor. The identifier is not a credential; its only purpose is to key
// the visitor's persisted preferences.
package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FallbackKey is the storage key for the locally persisted identifier used
// when no provider-issued identity is available.
const FallbackKey = "portfolio-fallback-uid"

// Provider is an external identity provider. Resolve returns an opaque
// identity string; any failure makes the bootstrap fall through.
type Provider interface {
	Resolve(ctx context.Context) (string, error)
}

// FallbackStore persists the locally minted fallback identifier. The HTTP
// edge backs it with a visitor cookie named FallbackKey.
type FallbackStore interface {
	Load() (string, bool)
	Save(id string)
}

// BootstrapOptions carries the collaborators of one bootstrap attempt.
// Every field may be zero; the chain degrades to a freshly minted id.
type BootstrapOptions struct {
	// Token is an optional signed token from the embedding environment.
	Token string
	// TokenSecret verifies Token; an empty secret disables the token path.
	TokenSecret string
	Provider    Provider
	Fallback    FallbackStore
	Logger      *zap.Logger
}

// Bootstrap resolves the visitor identity. It never fails and never
// returns an empty string: embed token, then provider, then persisted
// fallback id, then a freshly minted uuid persisted for next time.
func Bootstrap(ctx context.Context, opts BootstrapOptions) string {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	if token := strings.TrimSpace(opts.Token); token != "" && opts.TokenSecret != "" {
		id, err := ParseEmbedToken(token, opts.TokenSecret)
		if err == nil && id != "" {
			return id
		}
		log.Warn("embed token rejected, falling back", zap.Error(err))
	}

	if opts.Provider != nil {
		id, err := opts.Provider.Resolve(ctx)
		if err == nil && strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id)
		}
		if err != nil {
			log.Warn("identity provider unavailable, falling back", zap.Error(err))
		}
	}

	if opts.Fallback != nil {
		if id, ok := opts.Fallback.Load(); ok && strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id)
		}
	}

	id := uuid.New().String()
	if opts.Fallback != nil {
		opts.Fallback.Save(id)
	}
	return id
}
