package domain

import "time"

// User models a registered identity.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	Date         time.Time `json:"date"`
}

// PublicUser is the projection of a User that is safe to show to other
// callers: no email, no password hash.
type PublicUser struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Avatar    string    `json:"avatar"`
	Date      time.Time `json:"date"`
}

// UserSummary is the author/owner reference embedded in post and profile responses.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Avatar    string `json:"avatar"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
		Date:      u.Date,
	}
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Avatar:    u.Avatar,
	}
}

// DisplayName is the name captured on comments at creation time.
func (u *User) DisplayName() string {
	return u.FirstName + " " + u.LastName
}
