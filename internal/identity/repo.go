package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/palisade-authz/palisade/internal/authz"
)

// ErrNotFound indicates the subject does not exist in the identity store.
var ErrNotFound = errors.New("identity: principal not found")

// Repository defines persistence operations for the identity module.
type Repository interface {
	FindPrincipal(ctx context.Context, subjectID int64) (authz.Principal, error)
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

// FindPrincipal fetches the authorization flags for a subject. Found
// subjects are authenticated by definition: the upstream session layer
// already verified their credentials.
func (r *PGRepository) FindPrincipal(ctx context.Context, subjectID int64) (authz.Principal, error) {
	const query = `SELECT id, is_privileged, is_active FROM principals WHERE id = $1`

	var p authz.Principal
	if err := r.db.QueryRow(ctx, query, subjectID).Scan(&p.ID, &p.Privileged, &p.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authz.Principal{}, ErrNotFound
		}
		return authz.Principal{}, err
	}
	p.Authenticated = true
	return p, nil
}

var _ Repository = (*PGRepository)(nil)
