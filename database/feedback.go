package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Feedback represents a single feedback note owned by a user.
// Username references users.username and never changes after creation.
type Feedback struct {
	ID       uint   `gorm:"primaryKey"`
	Title    string `gorm:"size:100;not null"`
	Content  string `gorm:"type:text;not null"`
	Username string `gorm:"size:20;not null;index"`
	User     User   `gorm:"foreignKey:Username;references:Username"`
}

// CreateFeedback inserts a new feedback row owned by feedback.Username.
func (c *Client) CreateFeedback(ctx context.Context, feedback *Feedback) error {
	if err := c.db.WithContext(ctx).Create(feedback).Error; err != nil {
		log.Error("failed to create feedback", "error", err)
		return err
	}
	return nil
}

// GetFeedbackByID returns the feedback with the given id, or
// gorm.ErrRecordNotFound if no such row exists.
func (c *Client) GetFeedbackByID(ctx context.Context, id uint) (*Feedback, error) {
	var feedback Feedback
	if err := c.db.WithContext(ctx).First(&feedback, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get feedback by id", "error", err)
		}
		return nil, err
	}
	return &feedback, nil
}

// ListFeedbackByUsername returns all feedback owned by the given user,
// newest first.
func (c *Client) ListFeedbackByUsername(ctx context.Context, username string) ([]Feedback, error) {
	var feedbacks []Feedback
	if err := c.db.WithContext(ctx).Where("username = ?", username).Order("id DESC").Find(&feedbacks).Error; err != nil {
		log.Error("failed to list feedback", "username", username, "error", err)
		return nil, err
	}
	return feedbacks, nil
}

// UpdateFeedback updates title and content of a feedback row. Ownership is
// immutable and stays untouched.
func (c *Client) UpdateFeedback(ctx context.Context, id uint, title, content string) error {
	result := c.db.WithContext(ctx).Model(&Feedback{}).Where("id = ?", id).Updates(map[string]any{
		"title":   title,
		"content": content,
	})
	if result.Error != nil {
		log.Error("failed to update feedback", "id", id, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteFeedback removes a feedback row. Deleting a row that no longer
// exists is a no-op.
func (c *Client) DeleteFeedback(ctx context.Context, id uint) error {
	if err := c.db.WithContext(ctx).Delete(&Feedback{}, id).Error; err != nil {
		log.Error("failed to delete feedback", "id", id, "error", err)
		return err
	}
	return nil
}
