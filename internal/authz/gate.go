package authz

import "context"

// Request is one permission check: a case-insensitive permission name
// and the object it is checked against. A nil Target marks a
// non-object request.
type Request struct {
	Permission string
	Target     *Target
}

// Gate is the entry point for permission checks. It applies the
// principal-state short-circuits in a fixed order before delegating to
// the resolver:
//
//  1. no target            -> deny (non-object permissions belong to an
//     upstream backend, not this one)
//  2. privileged principal -> grant, bypassing every capability check
//  3. unauthenticated, or authenticated but inactive -> deny
//  4. otherwise            -> the capability check's verdict
type Gate struct {
	resolver *Resolver
}

// NewGate creates a gate delegating to the given resolver.
func NewGate(resolver *Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// Evaluate runs one permission check. It is a pure function of its
// inputs; any error comes from resolution, never from the gate itself.
func (g *Gate) Evaluate(ctx context.Context, p Principal, req Request) (bool, error) {
	if req.Target == nil {
		return false, nil
	}
	if p.Privileged {
		return true, nil
	}
	if !p.Authenticated || !p.Active {
		return false, nil
	}
	return g.resolver.Resolve(ctx, p, req.Target, req.Permission)
}
