package entity

// Role is the closed set of account roles.
type Role string

const (
	RoleCreator Role = "creator"
	RoleBrand   Role = "brand"
	RoleAgency  Role = "agency"
	RoleAdmin   Role = "admin"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleCreator, RoleBrand, RoleAgency, RoleAdmin}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleCreator, RoleBrand, RoleAgency, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
