package audit

import (
	"time"

	"github.com/google/uuid"
)

// Entry records one permission verdict for the audit trail.
type Entry struct {
	DecisionID     uuid.UUID `json:"decision_id"`
	SubjectID      int64     `json:"subject_id"`
	Permission     string    `json:"permission"`
	TargetScope    string    `json:"target_scope"`
	TargetKind     string    `json:"target_kind"`
	TargetInstance string    `json:"target_instance,omitempty"`
	Allowed        bool      `json:"allowed"`
	DecidedAt      time.Time `json:"decided_at"`
}
