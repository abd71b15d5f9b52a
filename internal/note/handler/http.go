// Package handler serves the note CRUD endpoints.
package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"notekeeper/internal/auth"
	"notekeeper/internal/note/domain"
	"notekeeper/internal/note/service"
	"notekeeper/internal/platform/apperr"
)

// Handler binds HTTP requests to the note service. Authentication is resolved
// by the session middleware; the service enforces it per operation.
type Handler struct {
	notes *service.Service
}

// New returns a note Handler.
func New(notes *service.Service) *Handler {
	return &Handler{notes: notes}
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// UserID is an optional target owner; honored for admins only.
	UserID string `json:"userId"`
}

type updateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ownerPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type notePayload struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	UserID      string        `json:"userId"`
	User        *ownerPayload `json:"user,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type noteResponse struct {
	Note notePayload `json:"note"`
}

type listResponse struct {
	Notes []notePayload `json:"notes"`
}

// List returns the notes visible to the caller.
func (h *Handler) List(c echo.Context) error {
	notes, err := h.notes.List(c.Request().Context(), auth.Identity(c))
	if err != nil {
		return err
	}
	payload := make([]notePayload, len(notes))
	for i, n := range notes {
		payload[i] = toNotePayload(n)
	}
	return c.JSON(http.StatusOK, listResponse{Notes: payload})
}

// Create creates a note for the caller, or for an explicit owner when the
// caller is an admin.
func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	note, err := h.notes.Create(c.Request().Context(), auth.Identity(c), service.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		TargetOwnerID: req.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, noteResponse{Note: toNotePayload(note)})
}

// Get returns a single note.
func (h *Handler) Get(c echo.Context) error {
	note, err := h.notes.Get(c.Request().Context(), auth.Identity(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, noteResponse{Note: toNotePayload(note)})
}

// Update applies a partial update; omitted fields are left unchanged.
func (h *Handler) Update(c echo.Context) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return apperr.Validation("invalid request body")
	}
	note, err := h.notes.Update(c.Request().Context(), auth.Identity(c), c.Param("id"), service.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, noteResponse{Note: toNotePayload(note)})
}

// Delete removes a note.
func (h *Handler) Delete(c echo.Context) error {
	if err := h.notes.Delete(c.Request().Context(), auth.Identity(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func toNotePayload(n *domain.Note) notePayload {
	p := notePayload{
		ID:          n.ID,
		Title:       n.Title,
		Description: n.Description,
		UserID:      n.OwnerID,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
	if n.Owner != nil {
		p.User = &ownerPayload{
			ID:    n.Owner.ID,
			Name:  n.Owner.Name,
			Email: n.Owner.Email,
			Role:  string(n.Owner.Role),
		}
	}
	return p
}
