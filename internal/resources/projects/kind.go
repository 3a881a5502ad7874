// Package projects registers the capability checks for the projects
// resource kind. Row-level checks consult a redis-cached membership
// view; the table-level create is open to any principal that survives
// the gate's short-circuits.
package projects

import (
	"context"

	"github.com/palisade-authz/palisade/internal/authz"
)

// KindName is the registry name for this resource kind.
const KindName = "projects"

// Kind builds the registration table for projects.
func Kind(cache *MembershipCache) *authz.Kind {
	return authz.NewKind(KindName).
		Class("create", func(context.Context, authz.Principal, authz.Context) (bool, error) {
			// Any authenticated, active principal may start a project.
			return true, nil
		}).
		Instance("view", func(ctx context.Context, p authz.Principal, id string, _ authz.Context) (bool, error) {
			m, err := cache.Get(ctx, id)
			if err != nil {
				return false, err
			}
			return m.IsMember(p.ID), nil
		}).
		Instance("manage", func(ctx context.Context, p authz.Principal, id string, _ authz.Context) (bool, error) {
			m, err := cache.Get(ctx, id)
			if err != nil {
				return false, err
			}
			return m.IsManager(p.ID), nil
		})
}
