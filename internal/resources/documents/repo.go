package documents

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the document does not exist.
var ErrNotFound = errors.New("documents: not found")

// Document carries the columns the capability checks consult.
type Document struct {
	ID      string
	OwnerID int64
	Public  bool
}

// Repository defines the lookups the documents checks need.
type Repository interface {
	Get(ctx context.Context, id string) (Document, error)
	IsProjectMember(ctx context.Context, projectID string, principalID int64) (bool, error)
}

type dbtx interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db dbtx
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{db: pool}
}

// Get fetches a document's authorization columns.
func (r *PGRepository) Get(ctx context.Context, id string) (Document, error) {
	const query = `SELECT id, owner_id, is_public FROM documents WHERE id = $1`

	var doc Document
	if err := r.db.QueryRow(ctx, query, id).Scan(&doc.ID, &doc.OwnerID, &doc.Public); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// IsProjectMember reports whether the principal belongs to the project
// a new document would be created under.
func (r *PGRepository) IsProjectMember(ctx context.Context, projectID string, principalID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM project_members WHERE project_id = $1 AND principal_id = $2)`

	var member bool
	if err := r.db.QueryRow(ctx, query, projectID, principalID).Scan(&member); err != nil {
		return false, err
	}
	return member, nil
}

var _ Repository = (*PGRepository)(nil)
