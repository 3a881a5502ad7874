package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Membership is the cached authorization view of one project.
type Membership struct {
	Members  []int64 `json:"members"`
	Managers []int64 `json:"managers"`
}

// IsMember reports whether the principal belongs to the project.
// Managers are members.
func (m Membership) IsMember(principalID int64) bool {
	for _, id := range m.Members {
		if id == principalID {
			return true
		}
	}
	return m.IsManager(principalID)
}

// IsManager reports whether the principal manages the project.
func (m Membership) IsManager(principalID int64) bool {
	for _, id := range m.Managers {
		if id == principalID {
			return true
		}
	}
	return false
}

// Loader fetches a project's membership from the source of truth.
type Loader interface {
	ProjectMembership(ctx context.Context, projectID string) (Membership, error)
}

// MembershipCache caches project membership in redis. Concurrent
// misses for the same project collapse into one loader call.
type MembershipCache struct {
	client *redis.Client
	loader Loader
	ttl    time.Duration
	group  singleflight.Group
}

// NewMembershipCache constructs a cache over the given loader.
func NewMembershipCache(client *redis.Client, loader Loader, ttl time.Duration) *MembershipCache {
	return &MembershipCache{client: client, loader: loader, ttl: ttl}
}

// Get returns the project's membership, loading and caching it on a
// miss. Redis failures degrade to a direct load rather than an error.
func (c *MembershipCache) Get(ctx context.Context, projectID string) (Membership, error) {
	key := cacheKey(projectID)

	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var m Membership
		if err := json.Unmarshal(data, &m); err == nil {
			return m, nil
		}
	}

	v, err, _ := c.group.Do(projectID, func() (interface{}, error) {
		m, err := c.loader.ProjectMembership(ctx, projectID)
		if err != nil {
			return Membership{}, err
		}
		if data, err := json.Marshal(m); err == nil {
			_ = c.client.Set(ctx, key, data, c.ttl).Err()
		}
		return m, nil
	})
	if err != nil {
		return Membership{}, err
	}
	return v.(Membership), nil
}

// Invalidate drops the cached membership for a project.
func (c *MembershipCache) Invalidate(ctx context.Context, projectID string) error {
	return c.client.Del(ctx, cacheKey(projectID)).Err()
}

func cacheKey(projectID string) string {
	return fmt.Sprintf("palisade:project:%s:membership", projectID)
}
