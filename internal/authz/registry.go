package authz

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldPermission lower-cases a permission name. Permission names are
// case-insensitive everywhere: registration and resolution fold before
// comparing.
func FoldPermission(perm string) string {
	return cases.Lower(language.Und).String(perm)
}

// CapabilityName derives the conventional identifier for a permission's
// check, used in diagnostics ("view" -> "can_view").
func CapabilityName(perm string) string {
	return "can_" + FoldPermission(perm)
}

// Kind is the registration table for one resource kind. Class-scoped
// and instance-scoped checks for the same permission are independent.
type Kind struct {
	name     string
	class    map[string]ClassCheck
	instance map[string]InstanceCheck
}

// NewKind creates an empty registration table for the named kind.
func NewKind(name string) *Kind {
	return &Kind{
		name:     name,
		class:    make(map[string]ClassCheck),
		instance: make(map[string]InstanceCheck),
	}
}

// Name returns the resource-kind name.
func (k *Kind) Name() string { return k.name }

// Class registers a table-level check for the permission. Returns the
// kind for chaining.
func (k *Kind) Class(perm string, check ClassCheck) *Kind {
	k.class[FoldPermission(perm)] = check
	return k
}

// Instance registers a row-level check for the permission.
func (k *Kind) Instance(perm string, check InstanceCheck) *Kind {
	k.instance[FoldPermission(perm)] = check
	return k
}

// Registry maps resource-kind names to their registration tables.
// Kinds register at startup; the registry is read-only afterwards, so
// concurrent resolution needs no locking.
type Registry struct {
	kinds map[string]*Kind
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]*Kind)}
}

// Register adds a kind's registration table. Registering the same name
// twice replaces the earlier table.
func (r *Registry) Register(k *Kind) {
	r.kinds[k.name] = k
}

func (r *Registry) kind(name string) (*Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}
