package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"notekeeper/internal/note/domain"
	"notekeeper/internal/platform/apperr"
	userdomain "notekeeper/internal/user/domain"
)

type memNoteRepo struct {
	mu    sync.Mutex
	notes map[string]*domain.Note
	calls int
}

func newMemNoteRepo() *memNoteRepo {
	return &memNoteRepo{notes: map[string]*domain.Note{}}
}

func (r *memNoteRepo) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if n, ok := r.notes[id]; ok {
		n2 := *n
		return &n2, nil
	}
	return nil, nil
}

func (r *memNoteRepo) List(ctx context.Context, ownerID string) ([]*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	out := []*domain.Note{}
	for _, n := range r.notes {
		if ownerID == "" || n.OwnerID == ownerID {
			n2 := *n
			out = append(out, &n2)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *memNoteRepo) Create(ctx context.Context, n *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	n2 := *n
	r.notes[n.ID] = &n2
	return nil
}

func (r *memNoteRepo) Update(ctx context.Context, n *domain.Note) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	cur, ok := r.notes[n.ID]
	if !ok {
		return false, nil
	}
	cur.Title = n.Title
	cur.Description = n.Description
	cur.UpdatedAt = n.UpdatedAt
	return true, nil
}

func (r *memNoteRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if _, ok := r.notes[id]; !ok {
		return false, nil
	}
	delete(r.notes, id)
	return true, nil
}

func user(id string, role userdomain.Role) *userdomain.User {
	return &userdomain.User{ID: id, Role: role}
}

func seedNote(r *memNoteRepo, id, ownerID string, createdAt time.Time) {
	r.notes[id] = &domain.Note{
		ID:          id,
		Title:       "title " + id,
		Description: "description " + id,
		OwnerID:     ownerID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestList_Scope(t *testing.T) {
	repo := newMemNoteRepo()
	now := time.Now().UTC()
	seedNote(repo, "n1", "u1", now.Add(-3*time.Minute))
	seedNote(repo, "n2", "u1", now.Add(-2*time.Minute))
	seedNote(repo, "n3", "u2", now.Add(-1*time.Minute))
	svc := New(repo)
	ctx := context.Background()

	own, err := svc.List(ctx, user("u1", userdomain.RoleUser))
	if err != nil {
		t.Fatalf("List as user: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("user list length = %d, want 2", len(own))
	}
	for _, n := range own {
		if n.OwnerID != "u1" {
			t.Errorf("user list leaked note %s owned by %s", n.ID, n.OwnerID)
		}
	}

	all, err := svc.List(ctx, user("a1", userdomain.RoleAdmin))
	if err != nil {
		t.Fatalf("List as admin: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("admin list length = %d, want 3", len(all))
	}
	// Newest first.
	if all[0].ID != "n3" || all[1].ID != "n2" || all[2].ID != "n1" {
		t.Errorf("admin list order = %s,%s,%s, want n3,n2,n1", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestList_TimestampTiebreak(t *testing.T) {
	repo := newMemNoteRepo()
	at := time.Now().UTC()
	seedNote(repo, "a", "u1", at)
	seedNote(repo, "b", "u1", at)
	svc := New(repo)

	notes, err := svc.List(context.Background(), user("u1", userdomain.RoleUser))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "b" || notes[1].ID != "a" {
		t.Errorf("equal timestamps should tiebreak on id descending")
	}
}

func TestCreate(t *testing.T) {
	repo := newMemNoteRepo()
	svc := New(repo)
	ctx := context.Background()

	note, err := svc.Create(ctx, user("u1", userdomain.RoleUser), CreateInput{
		Title:       "  Groceries  ",
		Description: " milk, eggs ",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.Title != "Groceries" || note.Description != "milk, eggs" {
		t.Errorf("fields not trimmed: %q / %q", note.Title, note.Description)
	}
	if note.OwnerID != "u1" {
		t.Errorf("OwnerID = %q, want caller", note.OwnerID)
	}
	if note.ID == "" {
		t.Error("ID should be assigned")
	}
	if repo.notes[note.ID] == nil {
		t.Error("note not persisted")
	}
}

func TestCreate_UserIgnoresTargetOwner(t *testing.T) {
	svc := New(newMemNoteRepo())
	note, err := svc.Create(context.Background(), user("u1", userdomain.RoleUser), CreateInput{
		Title:         "t",
		Description:   "d",
		TargetOwnerID: "u2",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.OwnerID != "u1" {
		t.Errorf("OwnerID = %q, non-admin target owner must be ignored", note.OwnerID)
	}
}

func TestCreate_AdminAssignsTargetOwner(t *testing.T) {
	svc := New(newMemNoteRepo())
	note, err := svc.Create(context.Background(), user("a1", userdomain.RoleAdmin), CreateInput{
		Title:         "t",
		Description:   "d",
		TargetOwnerID: "u2",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.OwnerID != "u2" {
		t.Errorf("OwnerID = %q, want admin-assigned u2", note.OwnerID)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := New(newMemNoteRepo())
	ctx := context.Background()

	testCases := []struct {
		name, title, description string
	}{
		{"empty title", "", "d"},
		{"empty description", "t", ""},
		{"whitespace title", "   ", "d"},
		{"whitespace description", "t", "   "},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, user("u1", userdomain.RoleUser), CreateInput{
				Title:       tc.title,
				Description: tc.description,
			})
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Errorf("want Validation error, got %v", err)
			}
		})
	}
}

func TestGet(t *testing.T) {
	repo := newMemNoteRepo()
	seedNote(repo, "n1", "u1", time.Now().UTC())
	svc := New(repo)
	ctx := context.Background()

	if _, err := svc.Get(ctx, user("u1", userdomain.RoleUser), "n1"); err != nil {
		t.Errorf("owner get: %v", err)
	}
	if _, err := svc.Get(ctx, user("a1", userdomain.RoleAdmin), "n1"); err != nil {
		t.Errorf("admin get: %v", err)
	}
	if _, err := svc.Get(ctx, user("u2", userdomain.RoleUser), "n1"); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("non-owner get: want Forbidden, got %v", err)
	}
	if _, err := svc.Get(ctx, user("u1", userdomain.RoleUser), "ghost"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing note as user: want NotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, user("a1", userdomain.RoleAdmin), "ghost"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing note as admin: want NotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, user("u1", userdomain.RoleUser), ""); !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("empty id: want Validation, got %v", err)
	}
}

func TestUpdate_Partial(t *testing.T) {
	repo := newMemNoteRepo()
	seedNote(repo, "n1", "u1", time.Now().UTC())
	svc := New(repo)
	ctx := context.Background()
	caller := user("u1", userdomain.RoleUser)

	// Title only: description retained.
	note, err := svc.Update(ctx, caller, "n1", UpdateInput{Title: "new title"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if note.Title != "new title" {
		t.Errorf("Title = %q, want %q", note.Title, "new title")
	}
	if note.Description != "description n1" {
		t.Errorf("Description = %q, want unchanged", note.Description)
	}

	// Neither field: both retained.
	note, err = svc.Update(ctx, caller, "n1", UpdateInput{})
	if err != nil {
		t.Fatalf("Update with empty patch: %v", err)
	}
	if note.Title != "new title" || note.Description != "description n1" {
		t.Error("empty patch must leave both fields unchanged")
	}

	// Ownership never changes on update.
	if note.OwnerID != "u1" {
		t.Errorf("OwnerID = %q, want u1", note.OwnerID)
	}
}

func TestUpdate_Authorization(t *testing.T) {
	repo := newMemNoteRepo()
	seedNote(repo, "n1", "u1", time.Now().UTC())
	svc := New(repo)
	ctx := context.Background()

	if _, err := svc.Update(ctx, user("u2", userdomain.RoleUser), "n1", UpdateInput{Title: "x"}); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("non-owner update: want Forbidden, got %v", err)
	}
	if _, err := svc.Update(ctx, user("a1", userdomain.RoleAdmin), "n1", UpdateInput{Title: "x"}); err != nil {
		t.Errorf("admin update: %v", err)
	}
	if _, err := svc.Update(ctx, user("u1", userdomain.RoleUser), "ghost", UpdateInput{Title: "x"}); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("missing note update: want NotFound, got %v", err)
	}
}

// raceNoteRepo simulates a concurrent delete landing between the ownership
// read and the mutation.
type raceNoteRepo struct {
	*memNoteRepo
}

func (r *raceNoteRepo) Update(ctx context.Context, n *domain.Note) (bool, error) {
	_, _ = r.memNoteRepo.Delete(ctx, n.ID)
	return r.memNoteRepo.Update(ctx, n)
}

func TestUpdate_ConcurrentDelete(t *testing.T) {
	repo := newMemNoteRepo()
	seedNote(repo, "n1", "u1", time.Now().UTC())
	svc := New(&raceNoteRepo{repo})

	_, err := svc.Update(context.Background(), user("u1", userdomain.RoleUser), "n1", UpdateInput{Title: "x"})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("update losing a delete race: want NotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newMemNoteRepo()
	seedNote(repo, "n1", "u1", time.Now().UTC())
	svc := New(repo)
	ctx := context.Background()

	if err := svc.Delete(ctx, user("u2", userdomain.RoleUser), "n1"); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("non-owner delete: want Forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, user("u1", userdomain.RoleUser), "n1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	// Second delete of the same id.
	if err := svc.Delete(ctx, user("u1", userdomain.RoleUser), "n1"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("second delete: want NotFound, got %v", err)
	}
}

func TestUnauthenticated_NoStoreAccess(t *testing.T) {
	repo := newMemNoteRepo()
	seedNote(repo, "n1", "u1", time.Now().UTC())
	svc := New(repo)
	ctx := context.Background()
	before := repo.calls

	if _, err := svc.List(ctx, nil); !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Errorf("List: want Unauthenticated, got %v", err)
	}
	if _, err := svc.Create(ctx, nil, CreateInput{Title: "t", Description: "d"}); !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Errorf("Create: want Unauthenticated, got %v", err)
	}
	if _, err := svc.Get(ctx, nil, "n1"); !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Errorf("Get: want Unauthenticated, got %v", err)
	}
	if _, err := svc.Update(ctx, nil, "n1", UpdateInput{Title: "x"}); !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Errorf("Update: want Unauthenticated, got %v", err)
	}
	if err := svc.Delete(ctx, nil, "n1"); !apperr.IsKind(err, apperr.KindUnauthenticated) {
		t.Errorf("Delete: want Unauthenticated, got %v", err)
	}

	if repo.calls != before {
		t.Errorf("store calls = %d, want none for unauthenticated operations", repo.calls-before)
	}
}
