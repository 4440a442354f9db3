package policy

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/stockroom/internal/models"
)

// RoleResolver resolves a user id to a role name.
type RoleResolver interface {
	Resolve(ctx context.Context, userID uint) (string, error)
}

// DBRoleResolver fetches the role name from the users/roles tables.
type DBRoleResolver struct {
	db *gorm.DB
}

func NewDBRoleResolver(db *gorm.DB) *DBRoleResolver { return &DBRoleResolver{db: db} }

func (r *DBRoleResolver) Resolve(ctx context.Context, userID uint) (string, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Role").First(&user, userID).Error; err != nil {
		return "", err
	}
	return user.Role.Name, nil
}

// CachedRoleResolver wraps a RoleResolver with TTL-based caching so the guard
// does not hit the database on every request.
type CachedRoleResolver struct {
	inner RoleResolver
	cache map[uint]cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
}

type cacheEntry struct {
	role      string
	expiresAt time.Time
}

func NewCachedRoleResolver(inner RoleResolver, ttl time.Duration) *CachedRoleResolver {
	return &CachedRoleResolver{inner: inner, cache: make(map[uint]cacheEntry), ttl: ttl}
}

func (r *CachedRoleResolver) Resolve(ctx context.Context, userID uint) (string, error) {
	r.mu.RLock()
	entry, ok := r.cache[userID]
	r.mu.RUnlock()
	if ok && time.Now().Before(entry.expiresAt) {
		return entry.role, nil
	}

	role, err := r.inner.Resolve(ctx, userID)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	r.cache[userID] = cacheEntry{role: role, expiresAt: time.Now().Add(r.ttl)}
	r.mu.Unlock()
	return role, nil
}

// Invalidate removes a user from the cache. Call when a user's role changes.
func (r *CachedRoleResolver) Invalidate(userID uint) {
	r.mu.Lock()
	delete(r.cache, userID)
	r.mu.Unlock()
}

// InvalidateAll clears the entire cache.
func (r *CachedRoleResolver) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[uint]cacheEntry)
	r.mu.Unlock()
}
