package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"notekeeper/internal/note/domain"
	"notekeeper/internal/platform/apperr"
	"notekeeper/internal/platform/policy"
	userdomain "notekeeper/internal/user/domain"
)

// NoteRepo is the minimal note repository needed by the note service.
type NoteRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Note, error)
	List(ctx context.Context, ownerID string) ([]*domain.Note, error)
	Create(ctx context.Context, n *domain.Note) error
	Update(ctx context.Context, n *domain.Note) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Service authorizes and orchestrates note operations against the note
// repository. Every operation requires a resolved identity before any store
// access; update and delete read the note first for the ownership check, so
// they take two store round-trips and are not atomic with respect to a
// concurrent delete (the loser surfaces NotFound).
type Service struct {
	notes NoteRepo
}

// New returns a note Service backed by notes.
func New(notes NoteRepo) *Service {
	return &Service{notes: notes}
}

// CreateInput carries the fields for a new note. TargetOwnerID is honored only
// for admins; other callers always own the notes they create.
type CreateInput struct {
	Title         string
	Description   string
	TargetOwnerID string
}

// UpdateInput carries a partial note update. An empty field (after trimming)
// means "leave unchanged", not "clear".
type UpdateInput struct {
	Title       string
	Description string
}

// List returns the notes visible to identity, newest first: all notes for
// admins, only owned notes otherwise.
func (s *Service) List(ctx context.Context, identity *userdomain.User) ([]*domain.Note, error) {
	if err := policy.RequireIdentity(identity); err != nil {
		return nil, err
	}
	return s.notes.List(ctx, policy.ListScope(identity))
}

// Create validates and persists a new note owned by the resolved target owner.
func (s *Service) Create(ctx context.Context, identity *userdomain.User, in CreateInput) (*domain.Note, error) {
	if err := policy.RequireIdentity(identity); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, apperr.Validation("title and description are required")
	}

	now := time.Now().UTC()
	note := &domain.Note{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		OwnerID:     policy.ResolveOwner(identity, strings.TrimSpace(in.TargetOwnerID)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Get returns the note for id if identity may access it.
func (s *Service) Get(ctx context.Context, identity *userdomain.User, id string) (*domain.Note, error) {
	if err := policy.RequireIdentity(identity); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, apperr.Validation("note id is required")
	}
	note, err := s.notes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.AuthorizeNote(identity, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update applies a partial update to the note for id. Ownership never changes;
// only supplied non-empty fields are replaced.
func (s *Service) Update(ctx context.Context, identity *userdomain.User, id string, in UpdateInput) (*domain.Note, error) {
	note, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		note.Title = title
	}
	if description := strings.TrimSpace(in.Description); description != "" {
		note.Description = description
	}
	note.UpdatedAt = time.Now().UTC()

	updated, err := s.notes.Update(ctx, note)
	if err != nil {
		return nil, err
	}
	if !updated {
		// Lost the race with a concurrent delete.
		return nil, apperr.NotFound("note not found")
	}
	return note, nil
}

// Delete removes the note for id. A second delete of the same id reports
// NotFound.
func (s *Service) Delete(ctx context.Context, identity *userdomain.User, id string) error {
	if _, err := s.Get(ctx, identity, id); err != nil {
		return err
	}
	deleted, err := s.notes.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("note not found")
	}
	return nil
}
