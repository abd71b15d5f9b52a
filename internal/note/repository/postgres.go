package repository

import (
	"context"
	"database/sql"
	"errors"

	"notekeeper/internal/note/domain"
	userdomain "notekeeper/internal/user/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a note repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const noteColumns = `
	n.id, n.title, n.description, n.owner_id, n.created_at, n.updated_at,
	u.id, u.name, u.email, u.role`

// GetByID returns the note for id with its projected owner, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	q := `
		SELECT` + noteColumns + `
		FROM notes n
		JOIN users u ON u.id = n.owner_id
		WHERE n.id = $1`
	n, err := scanNote(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return n, nil
}

// List returns notes with their projected owners, ordered by created_at
// descending. Equal timestamps tiebreak on id descending so the order is
// stable. An empty ownerID lists every note; otherwise the owner filter is
// part of the query, not applied after the fetch.
func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	q := `
		SELECT` + noteColumns + `
		FROM notes n
		JOIN users u ON u.id = n.owner_id`
	args := []any{}
	if ownerID != "" {
		q += `
		WHERE n.owner_id = $1`
		args = append(args, ownerID)
	}
	q += `
		ORDER BY n.created_at DESC, n.id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// Create persists the note, then hydrates its projected owner. The note must
// have ID, OwnerID, and timestamps set; they are not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, n *domain.Note) error {
	const q = `
		INSERT INTO notes (id, title, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, q,
		n.ID, n.Title, n.Description, n.OwnerID, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return err
	}

	const ownerQ = `SELECT id, name, email, role FROM users WHERE id = $1`
	var owner userdomain.User
	err = r.db.QueryRowContext(ctx, ownerQ, n.OwnerID).Scan(
		&owner.ID, &owner.Name, &owner.Email, &owner.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}
	n.Owner = &owner
	return nil
}

// Update replaces title, description, and updated_at for the note's id.
// Reports false when no row matched.
func (r *PostgresRepository) Update(ctx context.Context, n *domain.Note) (bool, error) {
	const q = `
		UPDATE notes
		SET title = $2, description = $3, updated_at = $4
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, n.ID, n.Title, n.Description, n.UpdatedAt)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Delete removes the note. Reports false when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	const q = `DELETE FROM notes WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// scanNote scans a joined note+owner row into a domain note.
func scanNote(row interface{ Scan(...any) error }) (*domain.Note, error) {
	var n domain.Note
	var owner userdomain.User
	err := row.Scan(
		&n.ID, &n.Title, &n.Description, &n.OwnerID, &n.CreatedAt, &n.UpdatedAt,
		&owner.ID, &owner.Name, &owner.Email, &owner.Role,
	)
	if err != nil {
		return nil, err
	}
	n.Owner = &owner
	return &n, nil
}
