package models

import (
	"time"
)

// User represents a registered account. Password stores the bcrypt hash and
// never serializes.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `json:"name"`
	Provider  string    `gorm:"not null;default:local" json:"provider"`
	Profile   *Profile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile holds the optional public profile attached to a user.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorSummary is the embedded author shape returned on posts and comments.
type AuthorSummary struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Summary reduces a user to the fields exposed alongside their content.
func (u *User) Summary() AuthorSummary {
	s := AuthorSummary{ID: u.ID, Username: u.Username, Name: u.Name}
	if u.Profile != nil {
		s.AvatarURL = u.Profile.AvatarURL
	}
	return s
}
