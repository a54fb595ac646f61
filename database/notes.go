package database

import (
	"database/sql"
	"noteboard/models"
)

// ==================== NOTES ====================

// CreateNote inserts a note. A nil parentID creates a top-level note,
// otherwise a reply to that note.
func (r *Repository) CreateNote(authorID int64, parentID *int64, content string) (int64, error) {
	res, err := r.db.Exec(`
		INSERT INTO notes (author_id, parent_note_id, content)
		VALUES (?, ?, ?)
	`, authorID, parentID, content)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repository) GetNoteByID(noteID int64) (*models.Note, error) {
	var note models.Note
	var parentID sql.NullInt64

	err := r.db.QueryRow(`
		SELECT id, author_id, parent_note_id, content, created_at
		FROM notes WHERE id = ?
	`, noteID).Scan(&note.ID, &note.AuthorID, &parentID, &note.Content, &note.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		note.ParentNoteID = &parentID.Int64
	}
	return &note, nil
}

// ListTopLevelNotes returns every top-level note with its author resolved,
// newest first. The id tie-break keeps ordering deterministic when two notes
// share a timestamp.
func (r *Repository) ListTopLevelNotes() ([]models.FeedNote, error) {
	rows, err := r.db.Query(`
		SELECT n.id, n.author_id, n.content, n.created_at, u.username
		FROM notes n
		JOIN users u ON n.author_id = u.id
		WHERE n.parent_note_id IS NULL
		ORDER BY n.created_at DESC, n.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.FeedNote, 0)
	for rows.Next() {
		var note models.FeedNote
		if err := rows.Scan(&note.ID, &note.AuthorID, &note.Content, &note.CreatedAt, &note.Username); err != nil {
			return nil, err
		}
		note.Replies = make([]models.ReplyView, 0)
		note.Reactions = make([]models.ReactionSummary, 0)
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// ListReplies returns every reply with its author resolved, oldest first,
// for the caller to group by parent note.
func (r *Repository) ListReplies() ([]models.ReplyView, error) {
	rows, err := r.db.Query(`
		SELECT n.id, n.author_id, n.parent_note_id, n.content, n.created_at, u.username
		FROM notes n
		JOIN users u ON n.author_id = u.id
		WHERE n.parent_note_id IS NOT NULL
		ORDER BY n.created_at ASC, n.id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	replies := make([]models.ReplyView, 0)
	for rows.Next() {
		var reply models.ReplyView
		var parentID int64
		if err := rows.Scan(&reply.ID, &reply.AuthorID, &parentID, &reply.Content, &reply.CreatedAt, &reply.Username); err != nil {
			return nil, err
		}
		reply.ParentNoteID = &parentID
		reply.Reactions = make([]models.ReactionSummary, 0)
		replies = append(replies, reply)
	}

	return replies, rows.Err()
}

// ListRecentNotes returns the latest top-level notes for the public home
// preview.
func (r *Repository) ListRecentNotes(limit int) ([]models.NotePreview, error) {
	rows, err := r.db.Query(`
		SELECT n.id, n.author_id, n.content, n.created_at, u.username
		FROM notes n
		JOIN users u ON n.author_id = u.id
		WHERE n.parent_note_id IS NULL
		ORDER BY n.created_at DESC, n.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.NotePreview, 0)
	for rows.Next() {
		var note models.NotePreview
		if err := rows.Scan(&note.ID, &note.AuthorID, &note.Content, &note.CreatedAt, &note.Username); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}
