package domain

import (
	"strings"
	"time"
)

// MembershipRole is the role an identity holds on a resource.
type MembershipRole string

const (
	RoleAdministrator MembershipRole = "ADMINISTRATOR"
	RoleMember        MembershipRole = "MEMBER"
)

// ParseMembershipRole accepts a role name in any case.
func ParseMembershipRole(s string) (MembershipRole, bool) {
	switch r := MembershipRole(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdministrator, RoleMember:
		return r, true
	default:
		return "", false
	}
}

// Membership links an identity to a resource with a role.
type Membership struct {
	IdentityID int64
	ResourceID int64
	Role       MembershipRole
	CreatedAt  time.Time
}
