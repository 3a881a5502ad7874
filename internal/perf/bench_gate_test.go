package perf

import (
	"context"
	"testing"

	"github.com/palisade-authz/palisade/internal/authz"
	_ "github.com/palisade-authz/palisade/internal/testing/guard"
)

func benchGate() *authz.Gate {
	registry := authz.NewRegistry()
	registry.Register(authz.NewKind("documents").
		Class("create", func(context.Context, authz.Principal, authz.Context) (bool, error) {
			return true, nil
		}).
		Instance("edit", func(_ context.Context, p authz.Principal, _ string, c authz.Context) (bool, error) {
			owner, _ := c.Int64("owner")
			return owner == p.ID, nil
		}))
	return authz.NewGate(authz.NewResolver(registry))
}

func BenchmarkEvaluateInstance(b *testing.B) {
	gate := benchGate()
	principal := authz.Principal{ID: 42, Authenticated: true, Active: true}
	req := authz.Request{
		Permission: "edit",
		Target:     authz.InstanceTarget("documents", "d-1", authz.Context{"owner": int64(42)}),
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := gate.Evaluate(context.Background(), principal, req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluatePrivilegedShortCircuit(b *testing.B) {
	gate := benchGate()
	principal := authz.Principal{ID: 1, Privileged: true, Authenticated: true, Active: true}
	req := authz.Request{
		Permission: "edit",
		Target:     authz.InstanceTarget("documents", "d-1", nil),
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := gate.Evaluate(context.Background(), principal, req); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPermissionFolding(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if authz.FoldPermission("VIEW") != "view" {
			b.Fatal("unexpected fold")
		}
	}
}
