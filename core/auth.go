package core

import "crypto/subtle"

// Role is a capability level granted by knowing the matching secret.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTechLead Role = "techlead"
)

var Roles = []Role{RoleAdmin, RoleTechLead}

func (r Role) IsValid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleSecrets maps each role to its configured secret.
// An empty secret disables the role entirely.
func (conf *Config) RoleSecrets() map[Role]string {
	return map[Role]string{
		RoleAdmin:    conf.AdminSecret,
		RoleTechLead: conf.TechLeadSecret,
	}
}

// Authorize reports whether `supplied` is the configured secret for `role`.
// Admin is a superset: the admin secret also grants any other role.
// Comparison is plain string equality (constant-time); there is no
// user database and no hashing.
func Authorize(secrets map[Role]string, role Role, supplied string) bool {
	secret, ok := secrets[role]
	if ok && secretEqual(secret, supplied) {
		return true
	}
	if role != RoleAdmin {
		if admin, ok := secrets[RoleAdmin]; ok && secretEqual(admin, supplied) {
			return true
		}
	}
	return false
}

func secretEqual(secret, supplied string) bool {
	if secret == "" { // never authorize against an unset secret
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(supplied)) == 1
}
