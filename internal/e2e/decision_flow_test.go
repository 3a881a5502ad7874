package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/palisade-authz/palisade/internal/app"
	"github.com/palisade-authz/palisade/internal/audit"
	"github.com/palisade-authz/palisade/internal/authz"
	"github.com/palisade-authz/palisade/internal/decision"
	"github.com/palisade-authz/palisade/internal/observability"
	"github.com/palisade-authz/palisade/internal/resources/documents"
	"github.com/palisade-authz/palisade/internal/resources/projects"
	_ "github.com/palisade-authz/palisade/testing"
)

const testAPIKey = "e2e-test-key"

type memPrincipals struct {
	byID map[int64]authz.Principal
}

func (m *memPrincipals) Principal(ctx context.Context, subjectID int64) (authz.Principal, error) {
	p, ok := m.byID[subjectID]
	if !ok {
		return authz.Anonymous(), nil
	}
	return p, nil
}

type memDocuments struct {
	docs    map[string]documents.Document
	members map[string][]int64
}

func (m *memDocuments) Get(ctx context.Context, id string) (documents.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return documents.Document{}, documents.ErrNotFound
	}
	return doc, nil
}

func (m *memDocuments) IsProjectMember(ctx context.Context, projectID string, principalID int64) (bool, error) {
	for _, id := range m.members[projectID] {
		if id == principalID {
			return true, nil
		}
	}
	return false, nil
}

type memLoader struct {
	membership map[string]projects.Membership
}

func (m *memLoader) ProjectMembership(ctx context.Context, projectID string) (projects.Membership, error) {
	return m.membership[projectID], nil
}

type memRecorder struct {
	entries []audit.Entry
}

func (m *memRecorder) RecordDecision(ctx context.Context, entry audit.Entry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memRecorder) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	return m.entries, nil
}

func (m *memRecorder) Find(ctx context.Context, id uuid.UUID) (audit.Entry, error) {
	for _, e := range m.entries {
		if e.DecisionID == id {
			return e, nil
		}
	}
	return audit.Entry{}, audit.ErrNotFound
}

func newStack(t *testing.T) (http.Handler, *memRecorder) {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	registry := authz.NewRegistry()
	registry.Register(documents.Kind(&memDocuments{
		docs: map[string]documents.Document{
			"d-roadmap": {ID: "d-roadmap", OwnerID: 10, Public: true},
			"d-notes":   {ID: "d-notes", OwnerID: 11},
		},
		members: map[string][]int64{"p-alpha": {10, 11}},
	}))
	membership := projects.NewMembershipCache(redisClient, &memLoader{
		membership: map[string]projects.Membership{
			"p-alpha": {Members: []int64{11}, Managers: []int64{10}},
		},
	}, time.Minute)
	registry.Register(projects.Kind(membership))

	principals := &memPrincipals{byID: map[int64]authz.Principal{
		1:  {ID: 1, Privileged: true, Authenticated: true, Active: true},
		10: {ID: 10, Authenticated: true, Active: true},
		11: {ID: 11, Authenticated: true, Active: true},
		12: {ID: 12, Authenticated: true, Active: false},
	}}

	hash, err := bcrypt.GenerateFromPassword([]byte(testAPIKey), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash api key: %v", err)
	}

	recorder := &memRecorder{}
	logger := slog.Default()
	gate := authz.NewGate(authz.NewResolver(registry))
	service := decision.NewService(principals, gate, recorder, observability.NewMetrics(), logger)
	handler := decision.NewHandler(service, recorder, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          &app.Config{APIKeyHash: string(hash), AppRequestTimeout: 5 * time.Second},
		DecisionHandler: handler,
	})
	return router, recorder
}

func check(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testAPIKey)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestDecisionFlow(t *testing.T) {
	router, recorder := newStack(t)

	cases := []struct {
		name    string
		subject int64
		perm    string
		target  string
		allowed bool
	}{
		{"privileged bypass on unregistered kind", 1, "purge", `{"scope":"class","kind":"ghosts"}`, true},
		{"manager manages project", 10, "manage", `{"scope":"instance","kind":"projects","instance_id":"p-alpha"}`, true},
		{"member denied manage", 11, "manage", `{"scope":"instance","kind":"projects","instance_id":"p-alpha"}`, false},
		{"owner edits document", 11, "edit", `{"scope":"instance","kind":"documents","instance_id":"d-notes"}`, true},
		{"public document viewable", 11, "VIEW", `{"scope":"instance","kind":"documents","instance_id":"d-roadmap"}`, true},
		{"inactive principal denied", 12, "view", `{"scope":"instance","kind":"documents","instance_id":"d-roadmap"}`, false},
		{"unknown subject denied", 999, "view", `{"scope":"instance","kind":"documents","instance_id":"d-roadmap"}`, false},
	}
	for _, tc := range cases {
		body := fmt.Sprintf(`{"subject_id": %d, "permission": %q, "target": %s}`, tc.subject, tc.perm, tc.target)
		res := check(t, router, body)
		if res.Code != http.StatusOK {
			t.Fatalf("%s: status %d: %s", tc.name, res.Code, res.Body.String())
		}
		want := fmt.Sprintf(`"allowed":%v`, tc.allowed)
		if !strings.Contains(res.Body.String(), want) {
			t.Fatalf("%s: expected %s, got %s", tc.name, want, res.Body.String())
		}
	}

	if len(recorder.entries) != len(cases) {
		t.Fatalf("expected %d audit entries, got %d", len(cases), len(recorder.entries))
	}
}

func TestDecisionFlowContextParameterizedCreate(t *testing.T) {
	router, _ := newStack(t)

	res := check(t, router, `{
		"subject_id": 10,
		"permission": "create",
		"target": {"scope": "class", "kind": "documents"},
		"context": {"project_id": "p-alpha"}
	}`)
	if res.Code != http.StatusOK || !strings.Contains(res.Body.String(), `"allowed":true`) {
		t.Fatalf("expected member create grant, got %d: %s", res.Code, res.Body.String())
	}

	res = check(t, router, `{
		"subject_id": 10,
		"permission": "create",
		"target": {"scope": "class", "kind": "documents"},
		"context": {"project_id": "p-unknown"}
	}`)
	if res.Code != http.StatusOK || !strings.Contains(res.Body.String(), `"allowed":false`) {
		t.Fatalf("expected non-member create denial, got %d: %s", res.Code, res.Body.String())
	}
}

func TestDecisionFlowMissingCapability(t *testing.T) {
	router, _ := newStack(t)

	res := check(t, router, `{
		"subject_id": 10,
		"permission": "archive",
		"target": {"scope": "class", "kind": "documents"}
	}`)
	if res.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d: %s", res.Code, res.Body.String())
	}
}

func TestDecisionFlowRejectsBadAPIKey(t *testing.T) {
	router, _ := newStack(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/check", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer wrong-key")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
}
