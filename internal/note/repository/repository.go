package repository

import (
	"context"

	"notekeeper/internal/note/domain"
)

// Repository defines persistence for notes.
type Repository interface {
	// GetByID returns the note for id with its projected owner, or nil if not found.
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	// List returns notes with their projected owners, newest first. An empty
	// ownerID returns every note; otherwise only notes owned by ownerID.
	List(ctx context.Context, ownerID string) ([]*domain.Note, error)
	Create(ctx context.Context, n *domain.Note) error
	// Update replaces title, description, and updated_at for the note's id.
	// Reports false when no row matched (note deleted concurrently).
	Update(ctx context.Context, n *domain.Note) (bool, error)
	// Delete removes the note. Reports false when no row matched.
	Delete(ctx context.Context, id string) (bool, error)
}
