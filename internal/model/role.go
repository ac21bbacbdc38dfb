package model

import "fmt"

// Role is the closed set of account roles. The stored and serialized values
// are the canonical labels below; deployments may map their own external
// identifiers onto them via RoleMapping.
type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSeller:
		return true
	}
	return false
}

// In reports whether r is a member of the given set. Membership only: admin
// is not implicitly included and must be listed wherever it is allowed.
func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}

// RoleMapping binds environment-specific role identifiers to the canonical
// roles. All three labels must be set and distinct.
type RoleMapping struct {
	User   string
	Admin  string
	Seller string
}

func (m RoleMapping) Validate() error {
	labels := map[string]string{m.User: "user", m.Admin: "admin", m.Seller: "seller"}
	if m.User == "" || m.Admin == "" || m.Seller == "" {
		return fmt.Errorf("role labels must be non-empty")
	}
	if len(labels) != 3 {
		return fmt.Errorf("role labels must be distinct: user=%q admin=%q seller=%q", m.User, m.Admin, m.Seller)
	}
	return nil
}

// Parse resolves an external or canonical label to a Role.
func (m RoleMapping) Parse(label string) (Role, bool) {
	switch label {
	case m.User, string(RoleUser):
		return RoleUser, true
	case m.Admin, string(RoleAdmin):
		return RoleAdmin, true
	case m.Seller, string(RoleSeller):
		return RoleSeller, true
	}
	return "", false
}

// Label returns the external identifier configured for r.
func (m RoleMapping) Label(r Role) string {
	switch r {
	case RoleAdmin:
		return m.Admin
	case RoleSeller:
		return m.Seller
	default:
		return m.User
	}
}
