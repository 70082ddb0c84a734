package service

import "github.com/aussiebroadwan/emailauth/internal/auth/domain"

// RequireSelfOrAdmin allows admins, and callers acting on their own identity.
func RequireSelfOrAdmin(ac domain.AuthContext, identityID int64) error {
	if ac.IsAdmin || ac.IdentityID == identityID {
		return nil
	}
	return ErrForbidden
}

// RequireAdministersOrAdmin allows admins, and callers holding the
// administrator role on the resource.
func RequireAdministersOrAdmin(ac domain.AuthContext, resourceID int64) error {
	if ac.IsAdmin || ac.Administers(resourceID) {
		return nil
	}
	return ErrForbidden
}
