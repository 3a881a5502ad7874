package authz

import "context"

// Resolver locates and invokes the capability check matching a
// (permission, target) pair. It interprets nothing: the check's verdict
// propagates as-is, and a missing check is an error, never a denial.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a resolver over the given registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve dispatches to the target-kind-appropriate capability check
// and returns its verdict.
func (r *Resolver) Resolve(ctx context.Context, p Principal, target *Target, permission string) (bool, error) {
	if target == nil {
		return false, ErrMalformedTarget
	}
	perm := FoldPermission(permission)

	switch target.Scope {
	case ScopeClass:
		kind, ok := r.registry.kind(target.Kind)
		if !ok {
			return false, &NotImplementedError{Kind: target.Kind, Capability: CapabilityName(perm), Scope: ScopeClass}
		}
		check, ok := kind.class[perm]
		if !ok {
			return false, &NotImplementedError{Kind: target.Kind, Capability: CapabilityName(perm), Scope: ScopeClass}
		}
		return check(ctx, p, target.Context)
	case ScopeInstance:
		kind, ok := r.registry.kind(target.Kind)
		if !ok {
			return false, &NotImplementedError{Kind: target.Kind, Capability: CapabilityName(perm), Scope: ScopeInstance}
		}
		check, ok := kind.instance[perm]
		if !ok {
			return false, &NotImplementedError{Kind: target.Kind, Capability: CapabilityName(perm), Scope: ScopeInstance}
		}
		return check(ctx, p, target.InstanceID, target.Context)
	default:
		return false, ErrMalformedTarget
	}
}
