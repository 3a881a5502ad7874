package projects

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type dbtx interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// PGLoader loads project membership from PostgreSQL.
type PGLoader struct {
	db dbtx
}

// NewLoader constructs a PostgreSQL membership loader.
func NewLoader(pool *pgxpool.Pool) *PGLoader {
	return &PGLoader{db: pool}
}

// ProjectMembership fetches all members of a project with their roles.
// An unknown project yields an empty membership, which denies everyone.
func (l *PGLoader) ProjectMembership(ctx context.Context, projectID string) (Membership, error) {
	const query = `SELECT principal_id, role FROM project_members WHERE project_id = $1`

	rows, err := l.db.Query(ctx, query, projectID)
	if err != nil {
		return Membership{}, err
	}
	defer rows.Close()

	var m Membership
	for rows.Next() {
		var principalID int64
		var role string
		if err := rows.Scan(&principalID, &role); err != nil {
			return Membership{}, err
		}
		if role == "manager" {
			m.Managers = append(m.Managers, principalID)
		} else {
			m.Members = append(m.Members, principalID)
		}
	}
	if err := rows.Err(); err != nil {
		return Membership{}, err
	}
	return m, nil
}

var _ Loader = (*PGLoader)(nil)
