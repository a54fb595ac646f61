package services

import (
	"errors"
	"noteboard/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==================== MOCKS ====================

// MockNoteRepository is a mock implementation of NoteRepository interface
type MockNoteRepository struct {
	mock.Mock
}

var _ NoteRepository = (*MockNoteRepository)(nil)

func (m *MockNoteRepository) CreateNote(authorID int64, parentID *int64, content string) (int64, error) {
	args := m.Called(authorID, parentID, content)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNoteRepository) GetNoteByID(noteID int64) (*models.Note, error) {
	args := m.Called(noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *MockNoteRepository) ListTopLevelNotes() ([]models.FeedNote, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeedNote), args.Error(1)
}

func (m *MockNoteRepository) ListReplies() ([]models.ReplyView, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReplyView), args.Error(1)
}

func (m *MockNoteRepository) ListRecentNotes(limit int) ([]models.NotePreview, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.NotePreview), args.Error(1)
}

func (m *MockNoteRepository) ToggleReaction(noteID, userID int64, emoji string) (string, error) {
	args := m.Called(noteID, userID, emoji)
	return args.String(0), args.Error(1)
}

func (m *MockNoteRepository) ListReactionSummaries(viewerID int64) (map[int64][]models.ReactionSummary, error) {
	args := m.Called(viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64][]models.ReactionSummary), args.Error(1)
}

// ==================== TESTS ====================

func TestNoteService_Create(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		mockSetup     func(*MockNoteRepository)
		expectedError error
	}{
		{
			name:    "Success - Valid content",
			content: "hello world",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("CreateNote", int64(1), (*int64)(nil), "hello world").Return(int64(10), nil)
				repo.On("GetNoteByID", int64(10)).Return(&models.Note{ID: 10, AuthorID: 1, Content: "hello world"}, nil)
			},
		},
		{
			name:    "Success - Content at max length",
			content: strings.Repeat("a", 500),
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("CreateNote", int64(1), (*int64)(nil), strings.Repeat("a", 500)).Return(int64(11), nil)
				repo.On("GetNoteByID", int64(11)).Return(&models.Note{ID: 11, AuthorID: 1}, nil)
			},
		},
		{
			name:          "Error - Empty content",
			content:       "",
			expectedError: ErrContentLength,
		},
		{
			name:          "Error - Content too long",
			content:       strings.Repeat("a", 501),
			expectedError: ErrContentLength,
		},
		{
			name:    "Error - Repository failure",
			content: "hello",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("CreateNote", int64(1), (*int64)(nil), "hello").Return(int64(0), errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockNoteRepository)
			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}

			service := NewNoteService(mockRepo)
			note, err := service.Create(1, tt.content)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				assert.Nil(t, note)
			} else {
				require.NoError(t, err)
				require.NotNil(t, note)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Create_MultibyteContentCountsRunes(t *testing.T) {
	// 500 multibyte runes are within bounds even though the byte length
	// is far above 500
	content := strings.Repeat("日", 500)

	mockRepo := new(MockNoteRepository)
	mockRepo.On("CreateNote", int64(1), (*int64)(nil), content).Return(int64(1), nil)
	mockRepo.On("GetNoteByID", int64(1)).Return(&models.Note{ID: 1}, nil)

	_, err := NewNoteService(mockRepo).Create(1, content)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestNoteService_Reply(t *testing.T) {
	parentID := int64(5)
	grandparentID := int64(3)

	tests := []struct {
		name          string
		mockSetup     func(*MockNoteRepository)
		expectedError error
	}{
		{
			name: "Success - Reply to top-level note",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("GetNoteByID", parentID).Return(&models.Note{ID: parentID, AuthorID: 2}, nil).Once()
				repo.On("CreateNote", int64(1), &parentID, "hi").Return(int64(20), nil)
				repo.On("GetNoteByID", int64(20)).Return(&models.Note{ID: 20, AuthorID: 1, ParentNoteID: &parentID}, nil).Once()
			},
		},
		{
			name: "Error - Parent does not exist",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("GetNoteByID", parentID).Return(nil, nil)
			},
			expectedError: ErrNoteNotFound,
		},
		{
			name: "Error - Parent is itself a reply",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("GetNoteByID", parentID).Return(&models.Note{ID: parentID, ParentNoteID: &grandparentID}, nil)
			},
			expectedError: ErrNestedReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockNoteRepository)
			tt.mockSetup(mockRepo)

			service := NewNoteService(mockRepo)
			note, err := service.Reply(1, parentID, "hi")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, note)
				mockRepo.AssertNotCalled(t, "CreateNote", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				require.NotNil(t, note)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Reply_InvalidContentSkipsLookup(t *testing.T) {
	mockRepo := new(MockNoteRepository)

	_, err := NewNoteService(mockRepo).Reply(1, 5, "")
	assert.ErrorIs(t, err, ErrContentLength)

	mockRepo.AssertNotCalled(t, "GetNoteByID", mock.Anything)
	mockRepo.AssertNotCalled(t, "CreateNote", mock.Anything, mock.Anything, mock.Anything)
}

func TestNoteService_React(t *testing.T) {
	tests := []struct {
		name           string
		emoji          string
		mockSetup      func(*MockNoteRepository)
		expectedAction string
		expectedError  error
	}{
		{
			name:  "Success - Added",
			emoji: "👍",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("GetNoteByID", int64(5)).Return(&models.Note{ID: 5}, nil)
				repo.On("ToggleReaction", int64(5), int64(1), "👍").Return("added", nil)
			},
			expectedAction: "added",
		},
		{
			name:  "Success - Removed",
			emoji: "👍",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("GetNoteByID", int64(5)).Return(&models.Note{ID: 5}, nil)
				repo.On("ToggleReaction", int64(5), int64(1), "👍").Return("removed", nil)
			},
			expectedAction: "removed",
		},
		{
			name:          "Error - Empty emoji",
			emoji:         "",
			expectedError: ErrEmojiLength,
		},
		{
			name:          "Error - Emoji too long",
			emoji:         strings.Repeat("👍", 11),
			expectedError: ErrEmojiLength,
		},
		{
			name:  "Error - Note not found",
			emoji: "👍",
			mockSetup: func(repo *MockNoteRepository) {
				repo.On("GetNoteByID", int64(5)).Return(nil, nil)
			},
			expectedError: ErrNoteNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockNoteRepository)
			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}

			service := NewNoteService(mockRepo)
			action, err := service.React(5, 1, tt.emoji)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedAction, action)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestNoteService_Feed_AssemblesRepliesAndReactions(t *testing.T) {
	parentID := int64(1)

	mockRepo := new(MockNoteRepository)
	mockRepo.On("ListTopLevelNotes").Return([]models.FeedNote{
		{Note: models.Note{ID: 2}, Username: "bob", Replies: []models.ReplyView{}, Reactions: []models.ReactionSummary{}},
		{Note: models.Note{ID: 1}, Username: "alice", Replies: []models.ReplyView{}, Reactions: []models.ReactionSummary{}},
	}, nil)
	mockRepo.On("ListReplies").Return([]models.ReplyView{
		{Note: models.Note{ID: 3, ParentNoteID: &parentID}, Username: "bob", Reactions: []models.ReactionSummary{}},
	}, nil)
	mockRepo.On("ListReactionSummaries", int64(9)).Return(map[int64][]models.ReactionSummary{
		1: {{Emoji: "👍", Count: 2, ViewerReacted: true}},
		3: {{Emoji: "❤️", Count: 1, ViewerReacted: false}},
	}, nil)

	feed, err := NewNoteService(mockRepo).Feed(9)
	require.NoError(t, err)
	require.Len(t, feed, 2)

	// Note 2 has nothing attached
	assert.Empty(t, feed[0].Replies)
	assert.Empty(t, feed[0].Reactions)

	// Note 1 carries its reply and its reaction group
	require.Len(t, feed[1].Replies, 1)
	assert.Equal(t, int64(3), feed[1].Replies[0].ID)
	require.Len(t, feed[1].Replies[0].Reactions, 1)
	assert.Equal(t, "❤️", feed[1].Replies[0].Reactions[0].Emoji)
	require.Len(t, feed[1].Reactions, 1)
	assert.Equal(t, 2, feed[1].Reactions[0].Count)
	assert.True(t, feed[1].Reactions[0].ViewerReacted)

	mockRepo.AssertExpectations(t)
}

func TestNoteService_Preview_ClampsLimit(t *testing.T) {
	tests := []struct {
		name          string
		limit         int
		expectedLimit int
	}{
		{"Zero falls back to default", 0, 5},
		{"Negative falls back to default", -1, 5},
		{"Above max falls back to default", 50, 5},
		{"In range passes through", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockNoteRepository)
			mockRepo.On("ListRecentNotes", tt.expectedLimit).Return([]models.NotePreview{}, nil)

			_, err := NewNoteService(mockRepo).Preview(tt.limit)
			require.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}
