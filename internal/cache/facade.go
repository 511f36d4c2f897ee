package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Facade is the only cache surface domain handlers talk to. It hides the
// store wire format (JSON) and the key/TTL conventions, and it fails open:
// no method ever returns a store error to the caller.
//
// One Facade is constructed at startup and injected into every handler; the
// backing Store is process-external (Redis), so invalidation is visible to
// all server instances at once.
type Facade struct {
	store  Store
	policy Policy
	log    *zap.Logger
}

// New creates a Facade over store. A nil logger is replaced with a no-op.
func New(store Store, policy Policy, log *zap.Logger) *Facade {
	if store == nil {
		panic("cache: store cannot be nil")
	}
	if policy == nil {
		policy = DefaultPolicy()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Facade{store: store, policy: policy, log: log}
}

// Get loads the value cached under key into dest and reports whether it was
// a hit. Store errors and malformed payloads are both treated as misses; a
// malformed entry is proactively deleted so it does not fail on every read.
func (f *Facade) Get(ctx context.Context, key string, dest any) bool {
	data, err := f.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			cacheErrors.WithLabelValues("get").Inc()
			f.log.Warn("cache get failed, falling through",
				zap.String("key", key), zap.Error(err))
		}
		cacheMisses.Inc()
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		f.log.Warn("dropping corrupt cache entry",
			zap.String("key", key), zap.Error(err))
		f.Delete(ctx, key)
		cacheMisses.Inc()
		return false
	}

	cacheHits.Inc()
	return true
}

// Set caches value under key with the TTL of the given class.
func (f *Facade) Set(ctx context.Context, key string, value any, class Class) {
	f.SetTTL(ctx, key, value, f.policy.TTL(class))
}

// SetTTL caches value under key with an explicit TTL. Failures are logged
// and swallowed: a failed populate only costs the next reader a database
// query.
func (f *Facade) SetTTL(ctx context.Context, key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		cacheErrors.WithLabelValues("set").Inc()
		f.log.Warn("cache set skipped, value not serializable",
			zap.String("key", key), zap.Error(err))
		return
	}

	if err := f.store.Set(ctx, key, data, ttl); err != nil {
		cacheErrors.WithLabelValues("set").Inc()
		f.log.Warn("cache set failed",
			zap.String("key", key), zap.Error(err))
	}
}

// Delete removes exact keys. Idempotent; absent keys are not an error.
func (f *Facade) Delete(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := f.store.Delete(ctx, keys...); err != nil {
		cacheErrors.WithLabelValues("delete").Inc()
		f.log.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// InvalidateEntity removes every detail entry cached under entity. List
// entries are left alone: a write to one record does not stale the detail
// entries of unrelated records. Callers pair this with InvalidateEntityList
// as their write contract requires.
func (f *Facade) InvalidateEntity(ctx context.Context, entity string) {
	keys, err := f.store.Scan(ctx, detailPrefix(entity))
	if err != nil {
		cacheErrors.WithLabelValues("scan").Inc()
		f.log.Warn("entity invalidation scan failed",
			zap.String("entity", entity), zap.Error(err))
		return
	}
	f.removeInvalidated(ctx, entity, keys)
}

// InvalidateEntityList removes every list/query entry cached under entity,
// whatever its parameter suffix, leaving detail entries untouched. Any list
// might contain the record a write just touched, so all of them go.
func (f *Facade) InvalidateEntityList(ctx context.Context, entity string) {
	keys, err := f.store.Scan(ctx, entityPrefix(entity))
	if err != nil {
		cacheErrors.WithLabelValues("scan").Inc()
		f.log.Warn("entity list invalidation scan failed",
			zap.String("entity", entity), zap.Error(err))
		return
	}

	lists := keys[:0]
	for _, k := range keys {
		if !isDetailKey(entity, k) {
			lists = append(lists, k)
		}
	}
	f.removeInvalidated(ctx, entity, lists)
}

func (f *Facade) removeInvalidated(ctx context.Context, entity string, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := f.store.Delete(ctx, keys...); err != nil {
		cacheErrors.WithLabelValues("delete").Inc()
		f.log.Warn("invalidation delete failed",
			zap.String("entity", entity), zap.Int("keys", len(keys)), zap.Error(err))
		return
	}
	cacheInvalidations.WithLabelValues(entity).Add(float64(len(keys)))
	f.log.Debug("cache invalidated",
		zap.String("entity", entity), zap.Int("keys", len(keys)))
}
