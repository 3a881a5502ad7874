package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/palisade-authz/palisade/internal/audit"
	"github.com/palisade-authz/palisade/jobs"
	_ "github.com/palisade-authz/palisade/testing"
)

type stubInserter struct {
	entries []audit.Entry
	err     error
}

func (s *stubInserter) Insert(ctx context.Context, e audit.Entry) error {
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, e)
	return nil
}

func TestDecisionAuditRoundTrip(t *testing.T) {
	entry := audit.Entry{
		DecisionID:     uuid.New(),
		SubjectID:      42,
		Permission:     "edit",
		TargetScope:    "instance",
		TargetKind:     "documents",
		TargetInstance: "d-1",
		Allowed:        true,
		DecidedAt:      time.Now().UTC().Truncate(time.Second),
	}
	task, err := jobs.NewDecisionAuditTask(entry)
	if err != nil {
		t.Fatalf("new task: %v", err)
	}

	store := &stubInserter{}
	handler := jobs.NewDecisionAuditHandler(store, nil)
	if err := handler(context.Background(), task); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(store.entries) != 1 {
		t.Fatalf("expected one insert, got %d", len(store.entries))
	}
	if store.entries[0].DecisionID != entry.DecisionID || !store.entries[0].Allowed {
		t.Fatalf("unexpected entry: %+v", store.entries[0])
	}
}

func TestDecisionAuditBadPayloadSkipsRetry(t *testing.T) {
	handler := jobs.NewDecisionAuditHandler(&stubInserter{}, nil)

	err := handler(context.Background(), asynq.NewTask(jobs.TaskTypeDecisionAudit, []byte("{not json")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
}

func TestDecisionAuditStoreErrorRetries(t *testing.T) {
	boom := errors.New("audit: insert failed")
	handler := jobs.NewDecisionAuditHandler(&stubInserter{err: boom}, nil)

	task, err := jobs.NewDecisionAuditTask(audit.Entry{DecisionID: uuid.New()})
	if err != nil {
		t.Fatalf("new task: %v", err)
	}
	if err := handler(context.Background(), task); !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate for retry, got %v", err)
	}
}
