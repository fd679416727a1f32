package guard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/domain/repository"
	"github.com/oksasatya/creatorlink/internal/infrastructure/memory"
	"github.com/oksasatya/creatorlink/internal/session"
)

func signedIn(role entity.Role, onboarded bool) session.Session {
	return session.Session{
		IsAuthenticated: true,
		Token:           "t",
		User: &entity.User{
			Email:               string(role) + "@demo.com",
			Role:                role,
			OnboardingCompleted: onboarded,
		},
	}
}

func TestEvaluate_Chain(t *testing.T) {
	g := New(nil, nil, nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		target   string
		sess     session.Session
		reason   Reason
		redirect string
	}{
		{"public landing while signed out", "/", session.Session{}, ReasonAllowed, ""},
		{"public page while loading", "/pricing", session.Session{IsLoading: true}, ReasonAllowed, ""},
		{"loading protected", "/creator/dashboard", session.Session{IsLoading: true}, ReasonLoading, ""},
		{"signed out", "/brand/campaigns", session.Session{}, ReasonUnauthenticated, "/login?redirect=%2Fbrand%2Fcampaigns"},
		{"signed out keeps query", "/brand/discover?q=tech", session.Session{}, ReasonUnauthenticated, "/login?redirect=%2Fbrand%2Fdiscover%3Fq%3Dtech"},
		{"wrong role", "/brand/dashboard", signedIn(entity.RoleCreator, true), ReasonWrongRole, "/creator/dashboard"},
		{"admin outside onboarding role set", "/onboarding", signedIn(entity.RoleAdmin, false), ReasonWrongRole, "/admin/dashboard"},
		{"onboarding required", "/creator/earnings", signedIn(entity.RoleCreator, false), ReasonOnboardingRequired, "/onboarding"},
		{"onboarding renders before completion", "/onboarding", signedIn(entity.RoleCreator, false), ReasonAllowed, ""},
		{"onboarding already done", "/onboarding", signedIn(entity.RoleBrand, true), ReasonOnboardingAlreadyDone, "/brand/dashboard"},
		{"admin pages skip onboarding", "/admin/users", signedIn(entity.RoleAdmin, false), ReasonAllowed, ""},
		{"allowed", "/agency/clients", signedIn(entity.RoleAgency, true), ReasonAllowed, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := g.Evaluate(ctx, tc.target, tc.sess)
			assert.Equal(t, tc.reason, d.Reason)
			assert.Equal(t, tc.redirect, d.Redirect)
		})
	}
}

func TestEvaluate_UnknownRoleGoesHome(t *testing.T) {
	g := New(nil, nil, nil)
	d := g.Evaluate(context.Background(), "/creator/dashboard", signedIn(entity.Role("viewer"), true))
	assert.Equal(t, ReasonWrongRole, d.Reason)
	assert.Equal(t, PathHome, d.Redirect)
}

func TestEvaluate_NoProtectedRouteRendersForForeignRole(t *testing.T) {
	g := New(nil, nil, nil)
	for _, r := range g.Table().Routes() {
		if r.Public {
			continue
		}
		path := r.Path
		if r.Wildcard {
			path = r.Path[:len(r.Path)-1] + "anything"
		}
		for _, role := range append(entity.Roles, entity.Role("viewer")) {
			if r.Permits(role) {
				continue
			}
			d := g.Evaluate(context.Background(), path, signedIn(role, true))
			assert.False(t, d.Render(), "%s rendered %s", role, path)
			assert.Equal(t, DashboardFor(role), d.Redirect)
		}
	}
}

func TestEvaluate_WildcardKeepsRoleGuard(t *testing.T) {
	g := New(nil, nil, nil)
	ctx := context.Background()

	d := g.Evaluate(ctx, "/creator/does/not/exist", signedIn(entity.RoleCreator, true))
	assert.Equal(t, ReasonAllowed, d.Reason)
	assert.Equal(t, ViewNotFound, d.Route.View)

	d = g.Evaluate(ctx, "/creator/does/not/exist", signedIn(entity.RoleBrand, true))
	assert.Equal(t, "/brand/dashboard", d.Redirect)
}

func TestEvaluate_FlagSource(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStorage()
	g := New(nil, OnboardingSource("flag", kv), nil)

	// session says done, flag absent
	d := g.Evaluate(ctx, "/creator/dashboard", signedIn(entity.RoleCreator, true))
	assert.Equal(t, ReasonOnboardingRequired, d.Reason)

	require.NoError(t, kv.Set(ctx, repository.OnboardingCompletedKey("creator@demo.com"), "true", 0))
	d = g.Evaluate(ctx, "/creator/dashboard", signedIn(entity.RoleCreator, false))
	assert.Equal(t, ReasonAllowed, d.Reason)
}

func TestOnboardingSource_Fallback(t *testing.T) {
	assert.Equal(t, "session", OnboardingSource("flag", nil).Name())
	assert.Equal(t, "session", OnboardingSource("other", memory.NewStorage()).Name())
}

func TestTable_Lookup(t *testing.T) {
	tbl := DefaultTable()
	assert.Equal(t, "creator-dashboard", tbl.Lookup("/creator/dashboard/").View)
	assert.Equal(t, "landing", tbl.Lookup("").View)
	assert.True(t, tbl.Lookup("/nowhere").Public)
	assert.Equal(t, ViewNotFound, tbl.Lookup("/nowhere").View)
	assert.True(t, tbl.Lookup("/admin/x").Wildcard)
}
