// Package authz holds the ownership rule shared by every owned-resource mutation.
package authz

import "paroquia_connect/internal/model"

// Owned is implemented by resources that record their creator
type Owned interface {
	Owner() *int
}

// CanMutate reports whether actor may update or delete res: admins may touch
// anything, managers only what they created. Ownerless rows are admin-only.
func CanMutate(actor model.Actor, res Owned) bool {
	if actor.IsAdmin {
		return true
	}
	owner := res.Owner()
	return owner != nil && *owner == actor.ID
}
