package domain

import "slices"

// AuthContext is the authorization state attached to an authenticated request.
// It is derived from persisted state on every request and never cached.
type AuthContext struct {
	TokenID                 int64
	IdentityID              int64
	IsAdmin                 bool
	AdministeredResourceIDs []int64
}

// Administers reports whether the caller holds the administrator role on the
// given resource. It does not consider the global admin flag.
func (a AuthContext) Administers(resourceID int64) bool {
	return slices.Contains(a.AdministeredResourceIDs, resourceID)
}
