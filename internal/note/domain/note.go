package domain

import (
	"time"

	userdomain "notekeeper/internal/user/domain"
)

// Note is a note owned by exactly one user. Ownership is fixed at creation and
// never changed by updates.
type Note struct {
	ID          string
	Title       string
	Description string
	OwnerID     string
	// Owner is the projected owning user (no credentials), populated on reads.
	Owner     *userdomain.User
	CreatedAt time.Time
	UpdatedAt time.Time
}
