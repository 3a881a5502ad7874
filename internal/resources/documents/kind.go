// Package documents registers the capability checks for the documents
// resource kind: row-level view/edit/delete against ownership and
// visibility, and a table-level create parameterized by the project
// the new document is for.
package documents

import (
	"context"

	"github.com/palisade-authz/palisade/internal/authz"
)

// KindName is the registry name for this resource kind.
const KindName = "documents"

// ContextProjectID is the context key naming the project a create
// targets. Creates with no project are denied, not errored: the
// caller simply has not said where the document would live.
const ContextProjectID = "project_id"

// Kind builds the registration table for documents.
func Kind(repo Repository) *authz.Kind {
	return authz.NewKind(KindName).
		Class("create", func(ctx context.Context, p authz.Principal, c authz.Context) (bool, error) {
			projectID, ok := c.String(ContextProjectID)
			if !ok || projectID == "" {
				return false, nil
			}
			return repo.IsProjectMember(ctx, projectID, p.ID)
		}).
		Instance("view", func(ctx context.Context, p authz.Principal, id string, _ authz.Context) (bool, error) {
			doc, err := repo.Get(ctx, id)
			if err != nil {
				return false, err
			}
			return doc.Public || doc.OwnerID == p.ID, nil
		}).
		Instance("edit", ownerOnly(repo)).
		Instance("delete", ownerOnly(repo))
}

func ownerOnly(repo Repository) authz.InstanceCheck {
	return func(ctx context.Context, p authz.Principal, id string, _ authz.Context) (bool, error) {
		doc, err := repo.Get(ctx, id)
		if err != nil {
			return false, err
		}
		return doc.OwnerID == p.ID, nil
	}
}
