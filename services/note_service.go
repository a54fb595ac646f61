package services

import (
	"noteboard/models"
	"unicode/utf8"
)

const (
	maxContentLen = 500
	maxEmojiLen   = 10

	defaultPreviewLimit = 5
	maxPreviewLimit     = 20
)

// NoteService handles business logic for the notes feed: posting, replying,
// reacting and assembling the feed view.
type NoteService struct {
	repo NoteRepository
}

func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// Create posts a top-level note. The length bound is re-checked here even
// though handlers validate it, so the constraint holds for every caller.
func (ns *NoteService) Create(authorID int64, content string) (*models.Note, error) {
	if !validContent(content) {
		return nil, ErrContentLength
	}

	noteID, err := ns.repo.CreateNote(authorID, nil, content)
	if err != nil {
		return nil, err
	}

	return ns.repo.GetNoteByID(noteID)
}

// Reply posts a reply to an existing top-level note. Replying to a reply is
// rejected so threads never exceed two levels.
func (ns *NoteService) Reply(authorID, parentID int64, content string) (*models.Note, error) {
	if !validContent(content) {
		return nil, ErrContentLength
	}

	parent, err := ns.repo.GetNoteByID(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrNoteNotFound
	}
	if parent.ParentNoteID != nil {
		return nil, ErrNestedReply
	}

	noteID, err := ns.repo.CreateNote(authorID, &parentID, content)
	if err != nil {
		return nil, err
	}

	return ns.repo.GetNoteByID(noteID)
}

// Feed materializes the full feed for a viewer: top-level notes newest
// first, each with its replies oldest first and per-emoji reaction groups
// flagged for the viewer.
func (ns *NoteService) Feed(viewerID int64) ([]models.FeedNote, error) {
	notes, err := ns.repo.ListTopLevelNotes()
	if err != nil {
		return nil, err
	}

	replies, err := ns.repo.ListReplies()
	if err != nil {
		return nil, err
	}

	summaries, err := ns.repo.ListReactionSummaries(viewerID)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(notes))
	for i := range notes {
		index[notes[i].ID] = i
		if s, ok := summaries[notes[i].ID]; ok {
			notes[i].Reactions = s
		}
	}

	for _, reply := range replies {
		if s, ok := summaries[reply.ID]; ok {
			reply.Reactions = s
		}
		// Replies orphaned by a data-level race are skipped rather than
		// failing the whole feed.
		if i, ok := index[*reply.ParentNoteID]; ok {
			notes[i].Replies = append(notes[i].Replies, reply)
		}
	}

	return notes, nil
}

// React toggles the (note, user, emoji) reaction and reports whether it was
// added or removed.
func (ns *NoteService) React(noteID, userID int64, emoji string) (string, error) {
	if !validEmoji(emoji) {
		return "", ErrEmojiLength
	}

	note, err := ns.repo.GetNoteByID(noteID)
	if err != nil {
		return "", err
	}
	if note == nil {
		return "", ErrNoteNotFound
	}

	return ns.repo.ToggleReaction(noteID, userID, emoji)
}

// Preview returns the latest top-level notes for the public home feed.
func (ns *NoteService) Preview(limit int) ([]models.NotePreview, error) {
	if limit < 1 || limit > maxPreviewLimit {
		limit = defaultPreviewLimit
	}
	return ns.repo.ListRecentNotes(limit)
}

func validContent(content string) bool {
	n := utf8.RuneCountInString(content)
	return n >= 1 && n <= maxContentLen
}

func validEmoji(emoji string) bool {
	n := utf8.RuneCountInString(emoji)
	return n >= 1 && n <= maxEmojiLen
}
