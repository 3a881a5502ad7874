// Package authz implements the object-permission resolution core:
// a policy gate that applies principal short-circuits and a resolver
// that dispatches to per-resource-kind capability checks.
//
// Resource kinds own their checks. They register class-scoped
// (table-level) and instance-scoped (row-level) checks against a
// Registry at startup; the gate and resolver stay generic and carry
// no state between calls.
package authz
