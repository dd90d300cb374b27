package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/folio-space/core/internal/models"
	pkgredis "github.com/folio-space/core/internal/pkg/redis"
	"gorm.io/gorm"
)

// localKeyPrefix namespaces the cached flag per identity.
const localKeyPrefix = "darkMode-"

// documentKey is the key of the preference document inside its namespace.
const documentKey = "darkMode"

// LocalTier is the fast, always-reachable cache of the flag. Read reports
// (value, ok); a missing or unparseable entry is simply not ok.
type LocalTier interface {
	Read(ctx context.Context, identity string) (bool, bool)
	Write(ctx context.Context, identity string, enabled bool) error
}

// RemoteTier is the authoritative document store. Load reports ok=false
// when the document is absent or its enabled field is not a boolean.
type RemoteTier interface {
	Load(ctx context.Context, identity string) (enabled bool, ok bool, err error)
	Save(ctx context.Context, identity string, enabled bool) error
}

// RedisTier caches the flag in Redis under darkMode-<identity>.
type RedisTier struct {
	rc *pkgredis.Client
}

func NewRedisTier(rc *pkgredis.Client) *RedisTier { return &RedisTier{rc: rc} }

func (t *RedisTier) Read(ctx context.Context, identity string) (bool, bool) {
	raw, err := t.rc.Get(ctx, localKeyPrefix+identity)
	if err != nil || raw == "" {
		return false, false
	}
	var v bool
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return false, false
	}
	return v, true
}

func (t *RedisTier) Write(ctx context.Context, identity string, enabled bool) error {
	raw, _ := json.Marshal(enabled)
	return t.rc.Set(ctx, localKeyPrefix+identity, string(raw), 0)
}

// MemoryTier is a process-local LocalTier used when Redis is not
// configured, and in tests.
type MemoryTier struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryTier() *MemoryTier {
	return &MemoryTier{values: make(map[string]string)}
}

func (t *MemoryTier) Read(ctx context.Context, identity string) (bool, bool) {
	t.mu.RLock()
	raw, exists := t.values[localKeyPrefix+identity]
	t.mu.RUnlock()
	if !exists {
		return false, false
	}
	var v bool
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return false, false
	}
	return v, true
}

func (t *MemoryTier) Write(ctx context.Context, identity string, enabled bool) error {
	raw, _ := json.Marshal(enabled)
	t.mu.Lock()
	t.values[localKeyPrefix+identity] = string(raw)
	t.mu.Unlock()
	return nil
}

// Put stores a raw value, bypassing encoding. Tests use it to plant
// corrupt entries.
func (t *MemoryTier) Put(identity, raw string) {
	t.mu.Lock()
	t.values[localKeyPrefix+identity] = raw
	t.mu.Unlock()
}

// DocumentTier persists preference documents in the documents table at the
// logical path artifacts/<appId>/users/<identity>/preferences/darkMode.
// Saves merge: sibling fields of the stored JSON document survive.
type DocumentTier struct {
	db    *gorm.DB
	appID string
}

func NewDocumentTier(db *gorm.DB, appID string) *DocumentTier {
	return &DocumentTier{db: db, appID: appID}
}

func (t *DocumentTier) namespace(identity string) string {
	return fmt.Sprintf("artifacts/%s/users/%s/preferences", t.appID, identity)
}

func (t *DocumentTier) Load(ctx context.Context, identity string) (bool, bool, error) {
	var doc models.DocumentModel
	err := t.db.WithContext(ctx).
		Where("namespace = ? AND `key` = ?", t.namespace(identity), documentKey).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, false, nil
		}
		return false, false, err
	}
	enabled, ok := extractEnabled(doc.Value)
	return enabled, ok, nil
}

func (t *DocumentTier) Save(ctx context.Context, identity string, enabled bool) error {
	ns := t.namespace(identity)

	var existing models.DocumentModel
	err := t.db.WithContext(ctx).
		Where("namespace = ? AND `key` = ?", ns, documentKey).
		First(&existing).Error
	if err == nil {
		merged := mergeEnabled(existing.Value, enabled)
		return t.db.WithContext(ctx).Model(&existing).Update("value", merged).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	doc := models.DocumentModel{
		Namespace: ns,
		Key:       documentKey,
		Value:     mergeEnabled("", enabled),
	}
	return t.db.WithContext(ctx).Create(&doc).Error
}

// extractEnabled pulls the enabled field out of a stored document. A
// document whose enabled field is missing or not a boolean counts as
// absent.
func extractEnabled(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return false, false
	}
	v, exists := doc["enabled"]
	if !exists {
		return false, false
	}
	enabled, isBool := v.(bool)
	return enabled, isBool
}

// mergeEnabled sets enabled in the stored document, preserving any other
// fields. An unreadable document is replaced.
func mergeEnabled(raw string, enabled bool) string {
	doc := map[string]interface{}{}
	if s := strings.TrimSpace(raw); s != "" {
		_ = json.Unmarshal([]byte(s), &doc)
	}
	doc["enabled"] = enabled
	merged, _ := json.Marshal(doc)
	return string(merged)
}
