package guard

import (
	"strings"

	"github.com/oksasatya/creatorlink/internal/domain/entity"
)

const (
	PathHome       = "/"
	PathLogin      = "/login"
	PathOnboarding = "/onboarding"

	ViewNotFound = "not-found"
)

// Route is one entry of the page table.
type Route struct {
	Path               string        `json:"path"`
	View               string        `json:"view"`
	Public             bool          `json:"public"`
	Roles              []entity.Role `json:"roles,omitempty"`
	RequiresOnboarding bool          `json:"requiresOnboarding"`
	Wildcard           bool          `json:"wildcard,omitempty"`
}

// Permits reports whether role may open the route.
func (r Route) Permits(role entity.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Table maps paths to routes. Exact paths win over wildcard prefixes;
// the longest wildcard prefix wins among wildcards.
type Table struct {
	exact     map[string]Route
	wildcards []Route
	ordered   []Route
}

func NewTable(routes ...Route) *Table {
	t := &Table{exact: make(map[string]Route, len(routes))}
	for _, r := range routes {
		t.Add(r)
	}
	return t
}

// Add registers r. A path ending in "/*" becomes a catch-all for its prefix.
func (t *Table) Add(r Route) {
	if strings.HasSuffix(r.Path, "/*") {
		r.Wildcard = true
		t.wildcards = append(t.wildcards, r)
	} else {
		t.exact[r.Path] = r
	}
	t.ordered = append(t.ordered, r)
}

// Routes returns the routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Lookup resolves path. Unknown paths map to a public not-found route.
func (t *Table) Lookup(path string) Route {
	path = cleanPath(path)
	if r, ok := t.exact[path]; ok {
		return r
	}
	var best Route
	found := false
	for _, r := range t.wildcards {
		prefix := strings.TrimSuffix(r.Path, "*")
		if strings.HasPrefix(path+"/", prefix) && (!found || len(r.Path) > len(best.Path)) {
			best, found = r, true
		}
	}
	if found {
		return best
	}
	return Route{Path: path, View: ViewNotFound, Public: true}
}

func cleanPath(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" || p[0] != '/' {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}

// Dashboards is the canonical landing route of each role.
var Dashboards = map[entity.Role]string{
	entity.RoleCreator: "/creator/dashboard",
	entity.RoleBrand:   "/brand/dashboard",
	entity.RoleAgency:  "/agency/dashboard",
	entity.RoleAdmin:   "/admin/dashboard",
}

// DashboardFor returns the role's dashboard, or home for unknown roles.
func DashboardFor(role entity.Role) string {
	if p, ok := Dashboards[role]; ok {
		return p
	}
	return PathHome
}

func public(path, view string) Route { return Route{Path: path, View: view, Public: true} }

func gated(path, view string, roles ...entity.Role) Route {
	return Route{Path: path, View: view, Roles: roles, RequiresOnboarding: true}
}

// DefaultTable is the page table of the marketing site and the role areas.
func DefaultTable() *Table {
	creator, brand, agency, admin := entity.RoleCreator, entity.RoleBrand, entity.RoleAgency, entity.RoleAdmin
	return NewTable(
		public("/", "landing"),
		public("/pricing", "pricing"),
		public("/case-studies", "case-studies"),
		public("/testimonials", "testimonials"),
		public("/contact", "contact"),
		public("/login", "login"),
		public("/signup", "signup"),
		public("/signup/creator", "signup-creator"),
		public("/signup/brand", "signup-brand"),
		public("/signup/agency", "signup-agency"),
		public("/verify-otp", "verify-otp"),

		gated(PathOnboarding, "onboarding", creator, brand, agency),

		gated("/creator/dashboard", "creator-dashboard", creator),
		gated("/creator/campaigns", "creator-campaigns", creator),
		gated("/creator/earnings", "creator-earnings", creator),
		gated("/creator/profile", "creator-profile", creator),
		gated("/creator/*", ViewNotFound, creator),

		gated("/brand/dashboard", "brand-dashboard", brand),
		gated("/brand/campaigns", "brand-campaigns", brand),
		gated("/brand/discover", "brand-discover", brand),
		gated("/brand/analytics", "brand-analytics", brand),
		gated("/brand/*", ViewNotFound, brand),

		gated("/agency/dashboard", "agency-dashboard", agency),
		gated("/agency/clients", "agency-clients", agency),
		gated("/agency/campaigns", "agency-campaigns", agency),
		gated("/agency/*", ViewNotFound, agency),

		Route{Path: "/admin/dashboard", View: "admin-dashboard", Roles: []entity.Role{admin}},
		Route{Path: "/admin/users", View: "admin-users", Roles: []entity.Role{admin}},
		Route{Path: "/admin/*", View: ViewNotFound, Roles: []entity.Role{admin}},
	)
}
