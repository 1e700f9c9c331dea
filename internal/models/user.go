package models

import (
	"net/url"
	"unicode/utf8"
)

const placeholderProfilePicFormat = "https://placehold.co/192x192/EFEFEF/3A3A3A?text="

// User represents an internal user model for the application/database.
// Password, Question and Answer never leave the service, use Sanitize for responses.
type User struct {
	ID         string `bson:"-" mapstructure:"id" db:"id"`
	Username   string `bson:"username" mapstructure:"username" db:"username"`
	Password   string `bson:"password" mapstructure:"password" db:"password"`
	Question   string `bson:"question" mapstructure:"question" db:"question"`
	Answer     string `bson:"answer" mapstructure:"answer" db:"answer"`
	ProfilePic string `bson:"profile_pic" mapstructure:"profile_pic" db:"profile_pic"`
}

// SanitizedUser is the user as returned by login, recovery and rename.
type SanitizedUser struct {
	Username   string `json:"username"`
	ProfilePic string `json:"profilePic"`
}

// NewUser creates a new User with the generated placeholder profile picture.
// Note: No validation is performed here.
func NewUser(username, password, question, answer string) *User {
	return &User{
		Username:   username,
		Password:   password,
		Question:   question,
		Answer:     answer,
		ProfilePic: PlaceholderProfilePic(username),
	}
}

// Sanitize strips the credentials and recovery fields.
func (u *User) Sanitize() SanitizedUser {
	return SanitizedUser{
		Username:   u.Username,
		ProfilePic: u.ProfilePic,
	}
}

// PlaceholderProfilePic returns the default avatar URL keyed by the first character of the username.
func PlaceholderProfilePic(username string) string {
	first, _ := utf8.DecodeRuneInString(username)
	if first == utf8.RuneError {
		return placeholderProfilePicFormat
	}
	return placeholderProfilePicFormat + url.QueryEscape(string(first))
}
