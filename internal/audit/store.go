package audit

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no audit entry exists for the decision id.
var ErrNotFound = errors.New("audit: decision not found")

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Store persists decision audit entries in PostgreSQL.
type Store struct {
	db dbtx
}

// NewStore constructs a Store backed by the provided pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// Insert writes one entry. Replays of the same decision id (task
// retries) are absorbed via the unique constraint.
func (s *Store) Insert(ctx context.Context, e Entry) error {
	const query = `
		INSERT INTO decision_audit
			(decision_id, subject_id, permission, target_scope, target_kind, target_instance, allowed, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.Exec(ctx, query,
		e.DecisionID, e.SubjectID, e.Permission, e.TargetScope, e.TargetKind, e.TargetInstance, e.Allowed, e.DecidedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil
		}
		return err
	}
	return nil
}

// Find returns the entry recorded for one decision id.
func (s *Store) Find(ctx context.Context, id uuid.UUID) (Entry, error) {
	const query = `
		SELECT decision_id, subject_id, permission, target_scope, target_kind, target_instance, allowed, decided_at
		FROM decision_audit
		WHERE decision_id = $1`

	var e Entry
	err := s.db.QueryRow(ctx, query, id).
		Scan(&e.DecisionID, &e.SubjectID, &e.Permission, &e.TargetScope, &e.TargetKind, &e.TargetInstance, &e.Allowed, &e.DecidedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	const query = `
		SELECT decision_id, subject_id, permission, target_scope, target_kind, target_instance, allowed, decided_at
		FROM decision_audit
		ORDER BY decided_at DESC
		LIMIT $1`

	rows, err := s.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.DecisionID, &e.SubjectID, &e.Permission, &e.TargetScope, &e.TargetKind, &e.TargetInstance, &e.Allowed, &e.DecidedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
