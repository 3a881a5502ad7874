package decision

import "github.com/palisade-authz/palisade/internal/authz"

// TargetPayload is the wire form of a target. Scope picks the variant;
// instance_id is required only for instance scope.
type TargetPayload struct {
	Scope      string `json:"scope" validate:"required,oneof=class instance"`
	Kind       string `json:"kind" validate:"required"`
	InstanceID string `json:"instance_id" validate:"required_if=Scope instance"`
}

// CheckRequest is one permission query. A null target is a non-object
// request, answered with a deterministic denial.
type CheckRequest struct {
	SubjectID  int64          `json:"subject_id" validate:"required"`
	Permission string         `json:"permission" validate:"required"`
	Target     *TargetPayload `json:"target" validate:"omitempty"`
	Context    map[string]any `json:"context"`
}

// CheckResponse reports the verdict.
type CheckResponse struct {
	DecisionID string `json:"decision_id"`
	Allowed    bool   `json:"allowed"`
}

func (r CheckRequest) target() *authz.Target {
	if r.Target == nil {
		return nil
	}
	switch r.Target.Scope {
	case "class":
		return authz.ClassTarget(r.Target.Kind, authz.Context(r.Context))
	case "instance":
		return authz.InstanceTarget(r.Target.Kind, r.Target.InstanceID, authz.Context(r.Context))
	default:
		// Validation rejects other scopes before this runs; a zero
		// target here surfaces as ErrMalformedTarget from the resolver.
		return &authz.Target{Kind: r.Target.Kind, Context: authz.Context(r.Context)}
	}
}
