package models

import "time"

// Note represents one meeting-notes document.
//
// The same shape travels over the HTTP API and is persisted into the
// per-day JSON files, so the json tags define the wire format exactly.
type Note struct {
	// ID is an opaque unique identifier: a MongoDB ObjectID hex string
	// when the document store minted it, or a client-minted UUID when the
	// note was written to file storage only.
	ID string `json:"id"`

	// UserID is the identifier of the owning user. Legacy single-user
	// records carry no owner tag, hence omitempty.
	UserID string `json:"userId,omitempty"`

	// Title is the display title of the note. Never empty for valid notes.
	Title string `json:"title"`

	// Group is a free-text category label. It is not a foreign key; the
	// client tracks its own list of known labels.
	Group string `json:"group"`

	// Content is the rich-text (HTML) body. Opaque to storage.
	Content string `json:"content"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteUpdate carries a partial update for an existing note. Nil fields are
// left untouched by the storage layer.
type NoteUpdate struct {
	ID      string  `json:"id"`
	Title   *string `json:"title,omitempty"`
	Group   *string `json:"group,omitempty"`
	Content *string `json:"content,omitempty"`
}

// ApplyTo merges the non-nil fields of the update into note and stamps the
// modification time.
func (u NoteUpdate) ApplyTo(note *Note, now time.Time) {
	if u.Title != nil {
		note.Title = *u.Title
	}
	if u.Group != nil {
		note.Group = *u.Group
	}
	if u.Content != nil {
		note.Content = *u.Content
	}
	note.UpdatedAt = now
}
