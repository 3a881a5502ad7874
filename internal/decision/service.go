package decision

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/palisade-authz/palisade/internal/audit"
	"github.com/palisade-authz/palisade/internal/authz"
	"github.com/palisade-authz/palisade/internal/observability"
)

// PrincipalSource resolves subjects into principals; satisfied by
// identity.Service.
type PrincipalSource interface {
	Principal(ctx context.Context, subjectID int64) (authz.Principal, error)
}

// Recorder submits audit entries; satisfied by jobs.Client.
type Recorder interface {
	RecordDecision(ctx context.Context, entry audit.Entry) error
}

// Verdict is the outcome of one check.
type Verdict struct {
	DecisionID uuid.UUID
	Allowed    bool
}

// Service runs the decision pipeline: principal lookup, policy gate,
// audit submission.
type Service struct {
	principals PrincipalSource
	gate       *authz.Gate
	recorder   Recorder
	metrics    *observability.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a decision Service. metrics may be nil.
func NewService(principals PrincipalSource, gate *authz.Gate, recorder Recorder, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{
		principals: principals,
		gate:       gate,
		recorder:   recorder,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// Check evaluates one permission query. Resolution failures abort the
// check and propagate; they never become a verdict.
func (s *Service) Check(ctx context.Context, req CheckRequest) (Verdict, error) {
	principal, err := s.principals.Principal(ctx, req.SubjectID)
	if err != nil {
		return Verdict{}, err
	}

	target := req.target()
	allowed, err := s.gate.Evaluate(ctx, principal, authz.Request{
		Permission: req.Permission,
		Target:     target,
	})
	if err != nil {
		return Verdict{}, err
	}

	verdict := Verdict{DecisionID: uuid.New(), Allowed: allowed}
	if target != nil {
		s.metrics.ObserveDecision(target.Kind, allowed)
	} else {
		s.metrics.ObserveDecision("", allowed)
	}
	s.record(ctx, req, target, verdict)
	return verdict, nil
}

// record submits the audit entry best-effort: a queue outage must not
// turn a resolved verdict into a failed request.
func (s *Service) record(ctx context.Context, req CheckRequest, target *authz.Target, verdict Verdict) {
	if s.recorder == nil {
		return
	}
	entry := audit.Entry{
		DecisionID: verdict.DecisionID,
		SubjectID:  req.SubjectID,
		Permission: authz.FoldPermission(req.Permission),
		Allowed:    verdict.Allowed,
		DecidedAt:  s.now().UTC(),
	}
	if target != nil {
		entry.TargetScope = target.Scope.String()
		entry.TargetKind = target.Kind
		entry.TargetInstance = target.InstanceID
	}
	if err := s.recorder.RecordDecision(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("audit enqueue failed",
			slog.String("decision_id", verdict.DecisionID.String()),
			slog.Any("error", err))
	}
}
