package models

import "time"

// PresetEmojis is the reaction palette offered by the UI. The data layer
// accepts any emoji of 1-10 runes; this list is advisory only.
var PresetEmojis = []string{"👍", "❤️", "😂", "🎉", "😮", "😢", "🔥", "👏", "🤔", "⭐"}

type Note struct {
	ID           int64     `json:"id"`
	AuthorID     int64     `json:"author_id"`
	ParentNoteID *int64    `json:"parent_note_id,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

type Reaction struct {
	ID        int64     `json:"id"`
	NoteID    int64     `json:"note_id"`
	UserID    int64     `json:"user_id"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}

// ReactionSummary is one emoji group on a note: how many users reacted with
// it and whether the current viewer is among them. Emojis nobody used are
// never included.
type ReactionSummary struct {
	Emoji         string `json:"emoji"`
	Count         int    `json:"count"`
	ViewerReacted bool   `json:"viewer_reacted"`
}

// ReplyView is a reply with its author and reaction groups resolved.
type ReplyView struct {
	Note
	Username  string            `json:"username"`
	Reactions []ReactionSummary `json:"reactions"`
}

// FeedNote is one top-level note as rendered in the feed: the note itself,
// its author, its replies oldest-first and its reaction groups.
type FeedNote struct {
	Note
	Username  string            `json:"username"`
	Replies   []ReplyView       `json:"replies"`
	Reactions []ReactionSummary `json:"reactions"`
}

// NotePreview is the trimmed shape used on the public home feed.
type NotePreview struct {
	Note
	Username string `json:"username"`
}

type CreateNoteRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

type CreateReplyRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

type ReactRequest struct {
	Emoji string `json:"emoji" validate:"required,emoji"`
}
