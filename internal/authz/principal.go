package authz

// Principal is the acting identity being authorized. The three flags
// are produced by the identity subsystem; this package only reads them.
type Principal struct {
	ID            int64
	Privileged    bool
	Authenticated bool
	Active        bool
}

// Anonymous returns the principal used for subjects the identity
// subsystem does not know about.
func Anonymous() Principal {
	return Principal{}
}
