package identity

import (
	"context"
	"errors"

	"github.com/palisade-authz/palisade/internal/authz"
)

// Service resolves subjects into principals for the policy gate.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Principal looks up the subject's authorization flags. Unknown
// subjects become the anonymous principal rather than an error: the
// gate denies them like any other unauthenticated caller.
func (s *Service) Principal(ctx context.Context, subjectID int64) (authz.Principal, error) {
	p, err := s.repo.FindPrincipal(ctx, subjectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return authz.Anonymous(), nil
		}
		return authz.Principal{}, err
	}
	return p, nil
}
