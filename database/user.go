package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// User represents a registered account.
// Password always holds the bcrypt hash, never the plaintext.
// The logged-in state is not tracked here, it lives in the session only.
type User struct {
	Username  string `gorm:"primaryKey;size:20"`
	Password  string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;size:50;not null"`
	FirstName string `gorm:"size:30;not null"`
	LastName  string `gorm:"size:30;not null"`
}

// CreateUser inserts a new user. A username or email collision surfaces as
// gorm.ErrDuplicatedKey, which is the authoritative duplicate signal.
func (c *Client) CreateUser(ctx context.Context, user *User) error {
	if err := c.db.WithContext(ctx).Create(user).Error; err != nil {
		if err != gorm.ErrDuplicatedKey {
			log.Error("failed to create user", "error", err)
		}
		return err
	}
	return nil
}

// GetUserByUsername returns the user with the given username, or
// gorm.ErrRecordNotFound if no such user exists.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Error("failed to get user by username", "error", err)
		}
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user and all feedback they own in a single
// transaction.
func (c *Client) DeleteUser(ctx context.Context, username string) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&Feedback{}).Error; err != nil {
			return err
		}
		return tx.Where("username = ?", username).Delete(&User{}).Error
	})
	if err != nil {
		log.Error("failed to delete user", "username", username, "error", err)
	}
	return err
}
