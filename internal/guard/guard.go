package guard

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
	"github.com/oksasatya/creatorlink/internal/session"
)

// Reason names the rule that produced a Decision.
type Reason string

const (
	ReasonLoading               Reason = "loading"
	ReasonUnauthenticated       Reason = "unauthenticated"
	ReasonWrongRole             Reason = "wrong_role"
	ReasonOnboardingRequired    Reason = "onboarding_required"
	ReasonOnboardingAlreadyDone Reason = "onboarding_already_done"
	ReasonAllowed               Reason = "allowed"
)

// Decision is the outcome of one navigation.
type Decision struct {
	Reason   Reason `json:"reason"`
	Redirect string `json:"redirect,omitempty"`
	Route    Route  `json:"route"`
}

// Render reports whether the requested view (or the loading placeholder) is shown.
func (d Decision) Render() bool { return d.Redirect == "" }

// Input is what every rule sees.
type Input struct {
	Path    string
	Target  string
	Route   Route
	Session session.Session

	onboarded func() bool
}

// Onboarded reports the onboarding status, resolved at most once per navigation.
func (in *Input) Onboarded() bool { return in.onboarded() }

func (in *Input) role() entity.Role {
	if in.Session.User == nil {
		return ""
	}
	return in.Session.User.Role
}

// Rule is one predicate→action step of the chain.
type Rule struct {
	Reason   Reason
	Applies  func(in *Input) bool
	Redirect func(in *Input) string
}

// Rules is the ordered decision chain. Public routes never reach it.
var Rules = []Rule{
	{
		Reason:  ReasonLoading,
		Applies: func(in *Input) bool { return in.Session.IsLoading },
	},
	{
		Reason: ReasonUnauthenticated,
		Applies: func(in *Input) bool {
			return !in.Session.IsAuthenticated || in.Session.User == nil
		},
		Redirect: func(in *Input) string { return LoginRedirect(in.Target) },
	},
	{
		Reason:   ReasonWrongRole,
		Applies:  func(in *Input) bool { return !in.Route.Permits(in.role()) },
		Redirect: func(in *Input) string { return DashboardFor(in.role()) },
	},
	{
		Reason: ReasonOnboardingRequired,
		Applies: func(in *Input) bool {
			return in.Route.RequiresOnboarding && in.Path != PathOnboarding && !in.Onboarded()
		},
		Redirect: func(*Input) string { return PathOnboarding },
	},
	{
		Reason: ReasonOnboardingAlreadyDone,
		Applies: func(in *Input) bool {
			return in.Path == PathOnboarding && in.Onboarded()
		},
		Redirect: func(in *Input) string { return DashboardFor(in.role()) },
	},
}

// LoginRedirect is the login route carrying the originally requested target.
func LoginRedirect(target string) string {
	if target == "" {
		return PathLogin
	}
	return PathLogin + "?redirect=" + url.QueryEscape(target)
}

// Guard evaluates navigations against a route table.
type Guard struct {
	table      *Table
	rules      []Rule
	onboarding OnboardingStatus
	log        *logrus.Logger
}

func New(table *Table, onboarding OnboardingStatus, log *logrus.Logger) *Guard {
	if table == nil {
		table = DefaultTable()
	}
	if onboarding == nil {
		onboarding = SessionOnboarding{}
	}
	return &Guard{table: table, rules: Rules, onboarding: onboarding, log: log}
}

func (g *Guard) Table() *Table { return g.table }

// Evaluate runs the chain from scratch for target (path plus optional query)
// against sess.
func (g *Guard) Evaluate(ctx context.Context, target string, sess session.Session) Decision {
	route := g.table.Lookup(target)
	if route.Public {
		return Decision{Reason: ReasonAllowed, Route: route}
	}

	in := &Input{Path: cleanPath(target), Target: target, Route: route, Session: sess}
	var (
		resolved bool
		done     bool
	)
	in.onboarded = func() bool {
		if !resolved {
			done = g.completed(ctx, sess)
			resolved = true
		}
		return done
	}

	for _, r := range g.rules {
		if !r.Applies(in) {
			continue
		}
		d := Decision{Reason: r.Reason, Route: route}
		if r.Redirect != nil {
			d.Redirect = r.Redirect(in)
		}
		return d
	}
	return Decision{Reason: ReasonAllowed, Route: route}
}

func (g *Guard) completed(ctx context.Context, sess session.Session) bool {
	ok, err := g.onboarding.Completed(ctx, sess)
	if err != nil {
		if g.log != nil {
			g.log.WithError(err).WithField("source", g.onboarding.Name()).Warn("onboarding status unavailable")
		}
		return false
	}
	return ok
}
