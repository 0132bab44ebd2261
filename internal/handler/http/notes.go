package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/notulensi/notulensi-pro/internal/logger"
	"github.com/notulensi/notulensi-pro/internal/service"
	"github.com/notulensi/notulensi-pro/internal/store"
	"github.com/notulensi/notulensi-pro/internal/utils"
	"github.com/notulensi/notulensi-pro/models"
)

// listNotes handles GET /api/notes.
//
// Authentication is optional: an authenticated caller gets their own notes
// merged across the configured backends, an anonymous caller gets only
// legacy untagged file records. Read failures degrade to an empty list so
// the client always renders.
func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	var userID string
	if claims, ok := utils.GetClaimsFromContext(ctx); ok {
		userID = claims.UserID
	}

	notes, err := h.services.NoteService.List(ctx, userID)
	if err != nil {
		log.Err(err).Msg("listing notes failed, returning empty list")
		notes = nil
	}
	if notes == nil {
		notes = []models.Note{}
	}

	if _, err := utils.WriteJSON(w, models.NotesResponse{Notes: notes}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing notes response failed")
	}
}

// createNote handles POST /api/notes. Requires authentication.
func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		writeError(w, r, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var note models.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		log.Err(err).Msg("decoding note failed")
		writeError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.services.NoteService.Create(ctx, claims.UserID, note)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			writeError(w, r, "Title is required", http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("note creation failed")
		writeError(w, r, "Failed to save note", http.StatusInternalServerError)
		return
	}

	if _, err := utils.WriteJSON(w, models.NoteResponse{Success: true, Note: created}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing created note response failed")
	}
}

// updateNote handles PUT /api/notes. Requires authentication; only fields
// present in the body are changed, the note id selects the record.
func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		writeError(w, r, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var update models.NoteUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("decoding note update failed")
		writeError(w, r, "Invalid request body", http.StatusBadRequest)
		return
	}
	if update.ID == "" {
		writeError(w, r, "Note ID is required", http.StatusBadRequest)
		return
	}

	updated, err := h.services.NoteService.Update(ctx, claims.UserID, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			writeError(w, r, "Invalid note data", http.StatusBadRequest)
		case errors.Is(err, store.ErrNoteNotFound):
			writeError(w, r, "Note not found", http.StatusNotFound)
		default:
			log.Err(err).Msg("note update failed")
			writeError(w, r, "Failed to update note", http.StatusInternalServerError)
		}
		return
	}

	if _, err := utils.WriteJSON(w, models.NoteResponse{Success: true, Note: updated}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing updated note response failed")
	}
}

// deleteNote handles DELETE /api/notes?id=<noteID>. Requires authentication.
func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	claims, ok := utils.GetClaimsFromContext(ctx)
	if !ok {
		writeError(w, r, "Not authenticated", http.StatusUnauthorized)
		return
	}

	noteID := r.URL.Query().Get("id")
	if noteID == "" {
		writeError(w, r, "Note ID is required", http.StatusBadRequest)
		return
	}

	if err := h.services.NoteService.Delete(ctx, claims.UserID, noteID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			writeError(w, r, "Note ID is required", http.StatusBadRequest)
		case errors.Is(err, store.ErrNoteNotFound):
			writeError(w, r, "Note not found", http.StatusNotFound)
		default:
			log.Err(err).Msg("note deletion failed")
			writeError(w, r, "Failed to delete note", http.StatusInternalServerError)
		}
		return
	}

	if _, err := utils.WriteJSON(w, models.DeleteResponse{Success: true}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing delete response failed")
	}
}
