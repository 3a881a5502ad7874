package authz

import "context"

// ClassCheck is a table-level capability check: may the principal
// exercise the permission against the resource kind as a whole. The
// Context carries caller parameters (e.g. the parent a create is for).
type ClassCheck func(ctx context.Context, p Principal, c Context) (bool, error)

// InstanceCheck is a row-level capability check bound to one concrete
// resource, identified by instanceID.
type InstanceCheck func(ctx context.Context, p Principal, instanceID string, c Context) (bool, error)
