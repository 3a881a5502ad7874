package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/palisade-authz/palisade/internal/audit"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeDecisionAudit is the task type recording permission verdicts.
	TaskTypeDecisionAudit = "audit:decision"
)

// NewDecisionAuditTask constructs an Asynq task carrying one audit entry.
func NewDecisionAuditTask(entry audit.Entry) (*asynq.Task, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeDecisionAudit, data), nil
}

// EntryInserter persists audit entries; satisfied by audit.Store.
type EntryInserter interface {
	Insert(ctx context.Context, e audit.Entry) error
}

// NewDecisionAuditHandler builds the handler processing TaskTypeDecisionAudit.
func NewDecisionAuditHandler(store EntryInserter, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var entry audit.Entry
		if err := json.Unmarshal(t.Payload(), &entry); err != nil {
			if logger != nil {
				logger.Warn("decision audit payload rejected", slog.Any("error", err))
			}
			return asynq.SkipRetry
		}
		return store.Insert(ctx, entry)
	}
}
