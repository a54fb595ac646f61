package database

import (
	"errors"
	"noteboard/models"

	"github.com/mattn/go-sqlite3"
)

// Toggle outcomes.
const (
	ToggleAdded   = "added"
	ToggleRemoved = "removed"
)

// ToggleReaction removes the (note, user, emoji) reaction if it exists,
// otherwise inserts it. The whole sequence runs in one transaction; if a
// concurrent request wins the insert race, the UNIQUE(note_id, user_id,
// emoji) constraint fires and the row already being there is treated as the
// toggle having succeeded, not as an error.
func (r *Repository) ToggleReaction(noteID, userID int64, emoji string) (string, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		DELETE FROM reactions
		WHERE note_id = ? AND user_id = ? AND emoji = ?
	`, noteID, userID, emoji)
	if err != nil {
		return "", err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return "", err
	}

	if affected > 0 {
		return ToggleRemoved, tx.Commit()
	}

	_, err = tx.Exec(`
		INSERT INTO reactions (note_id, user_id, emoji)
		VALUES (?, ?, ?)
	`, noteID, userID, emoji)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race against an identical toggle; the reaction exists.
			tx.Rollback()
			return ToggleAdded, nil
		}
		return "", err
	}

	return ToggleAdded, tx.Commit()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// ListReactionSummaries aggregates all reactions grouped by note and emoji.
// viewer_reacted flags emojis the given viewer used. Groups are ordered by
// count descending with emoji as tie-break so responses are stable.
func (r *Repository) ListReactionSummaries(viewerID int64) (map[int64][]models.ReactionSummary, error) {
	rows, err := r.db.Query(`
		SELECT note_id, emoji, COUNT(*) AS count,
		       MAX(CASE WHEN user_id = ? THEN 1 ELSE 0 END) AS viewer_reacted
		FROM reactions
		GROUP BY note_id, emoji
		ORDER BY note_id, count DESC, emoji ASC
	`, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make(map[int64][]models.ReactionSummary)
	for rows.Next() {
		var noteID int64
		var summary models.ReactionSummary
		var viewerReacted int
		if err := rows.Scan(&noteID, &summary.Emoji, &summary.Count, &viewerReacted); err != nil {
			return nil, err
		}
		summary.ViewerReacted = viewerReacted == 1
		summaries[noteID] = append(summaries[noteID], summary)
	}

	return summaries, rows.Err()
}

// CountReactions reports the number of reaction rows for a single triple.
// Not on the request path; the feed uses ListReactionSummaries.
func (r *Repository) CountReactions(noteID, userID int64, emoji string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM reactions
		WHERE note_id = ? AND user_id = ? AND emoji = ?
	`, noteID, userID, emoji).Scan(&count)
	return count, err
}
