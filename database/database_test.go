package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type DatabaseTestSuite struct {
	suite.Suite
	client *Client
	ctx    context.Context
}

func (s *DatabaseTestSuite) SetupTest() {
	// A file-backed database, ":memory:" is per-connection in sqlite.
	client, err := New(filepath.Join(s.T().TempDir(), "test.db"))
	s.Require().NoError(err)
	s.client = client
	s.ctx = context.Background()
}

func (s *DatabaseTestSuite) TearDownTest() {
	if s.client != nil {
		_ = s.client.Close()
	}
}

func (s *DatabaseTestSuite) newUser(username, email string) *User {
	return &User{
		Username:  username,
		Password:  "$2a$10$notarealhashbutlongenoughtolooklikeone",
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
	}
}

func (s *DatabaseTestSuite) TestCreateAndGetUser() {
	err := s.client.CreateUser(s.ctx, s.newUser("alice", "alice@example.com"))
	s.Require().NoError(err)

	user, err := s.client.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)
	s.Equal("alice@example.com", user.Email)
	s.Equal("Test", user.FirstName)
}

func (s *DatabaseTestSuite) TestGetUserNotFound() {
	_, err := s.client.GetUserByUsername(s.ctx, "ghost")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *DatabaseTestSuite) TestDuplicateUsername() {
	s.Require().NoError(s.client.CreateUser(s.ctx, s.newUser("alice", "alice@example.com")))

	err := s.client.CreateUser(s.ctx, s.newUser("alice", "other@example.com"))
	s.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (s *DatabaseTestSuite) TestDuplicateEmail() {
	s.Require().NoError(s.client.CreateUser(s.ctx, s.newUser("alice", "alice@example.com")))

	err := s.client.CreateUser(s.ctx, s.newUser("bob", "alice@example.com"))
	s.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (s *DatabaseTestSuite) TestDeleteUserCascadesFeedback() {
	s.Require().NoError(s.client.CreateUser(s.ctx, s.newUser("alice", "alice@example.com")))
	s.Require().NoError(s.client.CreateFeedback(s.ctx, &Feedback{Title: "Hi", Content: "Hello", Username: "alice"}))
	s.Require().NoError(s.client.CreateFeedback(s.ctx, &Feedback{Title: "Bye", Content: "Later", Username: "alice"}))

	s.Require().NoError(s.client.DeleteUser(s.ctx, "alice"))

	_, err := s.client.GetUserByUsername(s.ctx, "alice")
	s.ErrorIs(err, gorm.ErrRecordNotFound)

	feedbacks, err := s.client.ListFeedbackByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(feedbacks)
}

func (s *DatabaseTestSuite) TestCreateAndListFeedback() {
	s.Require().NoError(s.client.CreateUser(s.ctx, s.newUser("alice", "alice@example.com")))

	first := &Feedback{Title: "First", Content: "One", Username: "alice"}
	second := &Feedback{Title: "Second", Content: "Two", Username: "alice"}
	s.Require().NoError(s.client.CreateFeedback(s.ctx, first))
	s.Require().NoError(s.client.CreateFeedback(s.ctx, second))
	s.NotZero(first.ID)
	s.NotZero(second.ID)

	feedbacks, err := s.client.ListFeedbackByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Require().Len(feedbacks, 2)
	// Newest first.
	s.Equal("Second", feedbacks[0].Title)
	s.Equal("First", feedbacks[1].Title)
}

func (s *DatabaseTestSuite) TestListFeedbackOnlyOwn() {
	s.Require().NoError(s.client.CreateUser(s.ctx, s.newUser("alice", "alice@example.com")))
	s.Require().NoError(s.client.CreateUser(s.ctx, s.newUser("bob", "bob@example.com")))
	s.Require().NoError(s.client.CreateFeedback(s.ctx, &Feedback{Title: "Hi", Content: "Hello", Username: "alice"}))

	feedbacks, err := s.client.ListFeedbackByUsername(s.ctx, "bob")
	s.Require().NoError(err)
	s.Empty(feedbacks)
}

func (s *DatabaseTestSuite) TestUpdateFeedback() {
	s.Require().NoError(s.client.CreateUser(s.ctx, s.newUser("alice", "alice@example.com")))
	feedback := &Feedback{Title: "Hi", Content: "Hello", Username: "alice"}
	s.Require().NoError(s.client.CreateFeedback(s.ctx, feedback))

	s.Require().NoError(s.client.UpdateFeedback(s.ctx, feedback.ID, "New title", "New content"))

	updated, err := s.client.GetFeedbackByID(s.ctx, feedback.ID)
	s.Require().NoError(err)
	s.Equal("New title", updated.Title)
	s.Equal("New content", updated.Content)
	// Ownership never changes.
	s.Equal("alice", updated.Username)
}

func (s *DatabaseTestSuite) TestUpdateFeedbackNotFound() {
	err := s.client.UpdateFeedback(s.ctx, 42, "Title", "Content")
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *DatabaseTestSuite) TestDeleteFeedbackTwice() {
	s.Require().NoError(s.client.CreateUser(s.ctx, s.newUser("alice", "alice@example.com")))
	feedback := &Feedback{Title: "Hi", Content: "Hello", Username: "alice"}
	s.Require().NoError(s.client.CreateFeedback(s.ctx, feedback))

	s.Require().NoError(s.client.DeleteFeedback(s.ctx, feedback.ID))
	// Second delete is a no-op.
	s.Require().NoError(s.client.DeleteFeedback(s.ctx, feedback.ID))

	_, err := s.client.GetFeedbackByID(s.ctx, feedback.ID)
	s.ErrorIs(err, gorm.ErrRecordNotFound)
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}
