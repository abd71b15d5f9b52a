// Package policy decides note access for an authenticated identity: list
// scope, create-time ownership, and per-note authorization. Decisions are
// pure functions of the identity and the note; no state is held here.
package policy

import (
	"notekeeper/internal/note/domain"
	"notekeeper/internal/platform/apperr"
	userdomain "notekeeper/internal/user/domain"
)

// RequireIdentity returns an Unauthenticated error when identity is nil.
// Every policy entry point starts here, before any store access.
func RequireIdentity(identity *userdomain.User) error {
	if identity == nil {
		return apperr.Unauthenticated("not authenticated")
	}
	return nil
}

// ListScope returns the owner filter for listing notes: empty (all notes) for
// admins, the caller's own id otherwise. The scope is meant to be pushed down
// as a query filter, never applied by post-filtering an unbounded fetch.
func ListScope(identity *userdomain.User) string {
	if identity.IsAdmin() {
		return ""
	}
	return identity.ID
}

// ResolveOwner returns the owner id for a new note. The caller owns the note
// unless they are an admin supplying an explicit target owner id. The target
// id is not checked for existence at this layer.
func ResolveOwner(identity *userdomain.User, targetOwnerID string) string {
	if identity.IsAdmin() && targetOwnerID != "" {
		return targetOwnerID
	}
	return identity.ID
}

// AuthorizeNote checks read/update/delete access to note. A missing note is
// NotFound; a note owned by someone else is Forbidden unless the caller is an
// admin.
func AuthorizeNote(identity *userdomain.User, note *domain.Note) error {
	if note == nil {
		return apperr.NotFound("note not found")
	}
	if !identity.IsAdmin() && note.OwnerID != identity.ID {
		return apperr.Forbidden("you are not allowed to access this note")
	}
	return nil
}
